package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CompleteAppointment struct {
	Deps
}

func NewCompleteAppointment(d Deps) *CompleteAppointment {
	return &CompleteAppointment{Deps: d}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	caller identity.Caller,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.changeStatus(ctx, caller, appointmentID, domain.StatusDone)
}
