package dto

import (
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

type AppointmentListDTO struct {
	ID           uint            `json:"id"`
	Date         wallclock.Date  `json:"date"`
	StartTime    wallclock.Clock `json:"startTime"`
	EndTime      wallclock.Clock `json:"endTime"`
	Status       string          `json:"status"`
	BarberID     uint            `json:"barberId"`
	BarberName   string          `json:"barberName,omitempty"`
	CustomerID   uint            `json:"customerId"`
	CustomerName string          `json:"customerName,omitempty"`
	ServiceID    uint            `json:"serviceId"`
	ServiceName  string          `json:"serviceName,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// AppointmentList flattens appointments with whatever relations were preloaded.
func AppointmentList(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, AppointmentListDTO{
			ID:           ap.ID,
			Date:         ap.Date,
			StartTime:    ap.StartTime,
			EndTime:      ap.EndTime,
			Status:       ap.Status,
			BarberID:     ap.BarberID,
			BarberName:   ap.Barber.Name,
			CustomerID:   ap.UserID,
			CustomerName: ap.User.Name,
			ServiceID:    ap.ServiceID,
			ServiceName:  ap.Service.Name,
			Notes:        ap.Notes,
		})
	}
	return out
}
