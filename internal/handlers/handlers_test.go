package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

const testSecret = "test-secret"

var (
	brt = time.FixedZone("BRT", -3*60*60)

	customer = identity.Caller{ID: 100, Role: identity.RoleCustomer}
	stranger = identity.Caller{ID: 101, Role: identity.RoleCustomer}
	admin    = identity.Caller{ID: 1, Role: identity.RoleAdmin}
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	repo   *testutil.MemoryRepo
	router *gin.Engine
}

// newTestEnv wires the appointment handlers over an in-memory store. Barber 1
// works 09:00-21:00 Monday to Saturday; service 10 takes 30 minutes. "Now"
// is Monday 2024-06-10 08:00.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := testutil.NewMemoryRepo()
	repo.AddBarber(models.Barber{ID: 1, BarbershopID: 1, Name: "João", Active: true})
	repo.AddService(models.Service{ID: 10, BarbershopID: 1, Name: "Corte", DurationMinutes: 30, Active: true})

	rows := []models.WorkingHours{}
	for wd := time.Monday; wd <= time.Saturday; wd++ {
		rows = append(rows, models.WorkingHours{
			BarberID:  1,
			Weekday:   int(wd),
			StartTime: wallclock.MustClock("09:00"),
			EndTime:   wallclock.MustClock("21:00"),
			IsWorking: true,
		})
	}
	repo.SetWorkingHours(1, rows...)

	now := time.Date(2024, time.June, 10, 8, 0, 0, 0, brt)
	deps := ucAppointment.Deps{
		Repo: repo,
		Rules: ucAppointment.Rules{
			Location: brt,
			Now:      func() time.Time { return now },
		},
		Log: zerolog.Nop(),
	}

	appointments := NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(deps),
		ucAppointment.NewUpdateAppointment(deps),
		ucAppointment.NewConfirmAppointment(deps),
		ucAppointment.NewCancelAppointment(deps),
		ucAppointment.NewCompleteAppointment(deps),
		ucAppointment.NewDeleteAppointment(deps),
		ucAppointment.NewListAppointmentsByDate(repo),
		ucAppointment.NewListAppointmentsByMonth(repo),
		ucAppointment.NewListMyAppointments(repo),
	)
	availability := NewAvailabilityHandler(ucAppointment.NewGetAvailability(deps))

	r := gin.New()
	r.GET("/barbers/:id/available-slots", availability.AvailableSlots)

	secured := r.Group("/", middleware.AuthMiddleware(testSecret))
	secured.GET("/me/appointments", appointments.ListMine)
	secured.POST("/appointments", appointments.Create)
	secured.PUT("/appointments/:id", appointments.Update)
	secured.DELETE("/appointments/:id", appointments.Delete)
	secured.PATCH("/appointments/:id/confirm", appointments.Confirm)
	secured.PATCH("/appointments/:id/cancel", appointments.Cancel)
	secured.PATCH("/appointments/:id/complete", appointments.Complete)

	adminOnly := secured.Group("/", middleware.RequireAdmin())
	adminOnly.GET("/barbers/:id/appointments", appointments.ListByDate)
	adminOnly.GET("/barbers/:id/appointments/month", appointments.ListByMonth)

	return &testEnv{repo: repo, router: r}
}

func (e *testEnv) do(t *testing.T, method, path string, caller *identity.Caller, body any) *httptest.ResponseRecorder {
	t.Helper()
	return serve(t, e.router, method, path, caller, body)
}

func serve(t *testing.T, r http.Handler, method, path string, caller *identity.Caller, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		token, err := middleware.IssueToken(testSecret, *caller, time.Now())
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	code, _ := decode(t, w)["error_code"].(string)
	return code
}

func (e *testEnv) book(t *testing.T, caller identity.Caller, date, at string) uint {
	t.Helper()
	w := e.do(t, http.MethodPost, "/appointments", &caller, gin.H{
		"barberId": 1, "serviceId": 10, "date": date, "time": at,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return uint(decode(t, w)["id"].(float64))
}
