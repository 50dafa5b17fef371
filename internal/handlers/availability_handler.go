package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

type AvailabilityHandler struct {
	availability *ucAppointment.GetAvailability
}

func NewAvailabilityHandler(availability *ucAppointment.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// AvailableSlots answers GET /barbers/:id/available-slots?serviceId&date
// with the day's free windows as {start, end} pairs.
func (h *AvailabilityHandler) AvailableSlots(c *gin.Context) {
	barberID, ok := idParam(c, "id")
	if !ok {
		return
	}

	serviceID, ok := queryID(c, "serviceId")
	if !ok {
		httperr.BadRequest(c, "invalid_request", "Serviço é obrigatório.")
		return
	}

	date, err := wallclock.ParseDate(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID:  barberID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, slots)
}
