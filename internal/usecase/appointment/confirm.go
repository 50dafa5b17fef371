package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ConfirmAppointment struct {
	Deps
}

func NewConfirmAppointment(d Deps) *ConfirmAppointment {
	return &ConfirmAppointment{Deps: d}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	caller identity.Caller,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.changeStatus(ctx, caller, appointmentID, domain.StatusConfirmed)
}
