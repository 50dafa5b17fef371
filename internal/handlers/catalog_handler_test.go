package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking/internal/config"
)

// Each case fails request binding, so no database is needed.
func TestCatalogAndAuthRejectInvalidPayloads(t *testing.T) {
	r := gin.New()

	auth := NewAuthHandler(nil, &config.Config{JWTSecret: testSecret}, nil)
	r.POST("/auth/register", auth.Register)
	r.POST("/auth/login", auth.Login)

	r.POST("/barbershops", NewBarbershopHandler(nil).Create)
	r.POST("/barbers", NewBarberHandler(nil).Create)

	services := NewServiceHandler(nil)
	r.POST("/services", services.Create)
	r.PATCH("/services/:id", services.Update)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"register without email", http.MethodPost, "/auth/register", gin.H{"name": "Ana", "password": "123456"}},
		{"register short password", http.MethodPost, "/auth/register", gin.H{"name": "Ana", "email": "ana@example.com", "password": "123"}},
		{"login bad email", http.MethodPost, "/auth/login", gin.H{"email": "ana", "password": "123456"}},
		{"barbershop without slug", http.MethodPost, "/barbershops", gin.H{"name": "Navalha"}},
		{"barber without shop", http.MethodPost, "/barbers", gin.H{"name": "João"}},
		{"service zero duration", http.MethodPost, "/services", gin.H{"barbershopId": 1, "name": "Corte", "durationMinutes": 0}},
		{"service negative price", http.MethodPost, "/services", gin.H{"barbershopId": 1, "name": "Corte", "durationMinutes": 30, "price": -1}},
		{"service patch bad duration", http.MethodPatch, "/services/1", gin.H{"durationMinutes": 2000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, r, tt.method, tt.path, nil, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, "invalid_request", errorCode(t, w))
		})
	}
}

func TestServiceUpdateRejectsBadID(t *testing.T) {
	r := gin.New()
	r.PATCH("/services/:id", NewServiceHandler(nil).Update)

	w := serve(t, r, http.MethodPatch, "/services/0", nil, gin.H{"name": "Corte"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
