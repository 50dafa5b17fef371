package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create    *ucAppointment.CreateAppointment
	update    *ucAppointment.UpdateAppointment
	confirm   *ucAppointment.ConfirmAppointment
	cancel    *ucAppointment.CancelAppointment
	complete  *ucAppointment.CompleteAppointment
	remove    *ucAppointment.DeleteAppointment
	listDay   *ucAppointment.ListAppointmentsByDate
	listMonth *ucAppointment.ListAppointmentsByMonth
	listMine  *ucAppointment.ListMyAppointments
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	confirm *ucAppointment.ConfirmAppointment,
	cancel *ucAppointment.CancelAppointment,
	complete *ucAppointment.CompleteAppointment,
	remove *ucAppointment.DeleteAppointment,
	listDay *ucAppointment.ListAppointmentsByDate,
	listMonth *ucAppointment.ListAppointmentsByMonth,
	listMine *ucAppointment.ListMyAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:    create,
		update:    update,
		confirm:   confirm,
		cancel:    cancel,
		complete:  complete,
		remove:    remove,
		listDay:   listDay,
		listMonth: listMonth,
		listMine:  listMine,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceID uint   `json:"serviceId" binding:"required"`
	BarberID  uint   `json:"barberId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes" binding:"max=255"`
}

type UpdateAppointmentRequest struct {
	BarberID  *uint   `json:"barberId"`
	ServiceID *uint   `json:"serviceId"`
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes" binding:"omitempty,max=255"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Autenticação necessária.")
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), caller, ucAppointment.CreateAppointmentInput{
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// UPDATE (partial)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Autenticação necessária.")
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), caller, id, ucAppointment.UpdateAppointmentPatch{
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    req.Status,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.changeStatus(c, h.confirm.Execute)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.cancel.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.changeStatus(c, h.complete.Execute)
}

func (h *AppointmentHandler) changeStatus(
	c *gin.Context,
	run func(ctx context.Context, caller identity.Caller, id uint) (*models.Appointment, error),
) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Autenticação necessária.")
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := run(c.Request.Context(), caller, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Autenticação necessária.")
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), caller, id); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// LISTS
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthorized", "Autenticação necessária.")
		return
	}

	out, err := h.listMine.Execute(c.Request.Context(), caller)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, ok := idParam(c, "id")
	if !ok {
		return
	}

	date, err := wallclock.ParseDate(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.listDay.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID, ok := idParam(c, "id")
	if !ok {
		return
	}

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_date", "Ano e mês são obrigatórios.")
		return
	}

	out, err := h.listMonth.Execute(c.Request.Context(), barberID, year, month)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}
