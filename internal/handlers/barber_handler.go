package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BarberHandler struct {
	db *gorm.DB
}

func NewBarberHandler(db *gorm.DB) *BarberHandler {
	return &BarberHandler{db: db}
}

type CreateBarberRequest struct {
	BarbershopID uint   `json:"barbershopId" binding:"required"`
	Name         string `json:"name" binding:"required,max=100"`
	Bio          string `json:"bio" binding:"max=255"`
}

// List accepts ?barbershopId= and lists only active barbers unless ?all=true.
func (h *BarberHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())

	if shopID, ok := queryID(c, "barbershopId"); ok {
		q = q.Where("barbershop_id = ?", shopID)
	}
	if c.Query("all") != "true" {
		q = q.Where("active = ?", true)
	}

	var barbers []models.Barber
	if err := q.Order("name ASC").Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	httpresp.List(c, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var shop models.Barbershop
	if err := h.db.First(&shop, req.BarbershopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	barber := models.Barber{
		BarbershopID: shop.ID,
		Name:         req.Name,
		Bio:          req.Bio,
		Active:       true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Erro ao criar barbeiro.")
		return
	}

	c.JSON(http.StatusCreated, barber)
}
