package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CancelAppointment struct {
	Deps
}

func NewCancelAppointment(d Deps) *CancelAppointment {
	return &CancelAppointment{Deps: d}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	caller identity.Caller,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.changeStatus(ctx, caller, appointmentID, domain.StatusCanceled)
}
