package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
)

type ListMyAppointments struct {
	repo appointment.Repository
}

func NewListMyAppointments(repo appointment.Repository) *ListMyAppointments {
	return &ListMyAppointments{repo: repo}
}

func (uc *ListMyAppointments) Execute(
	ctx context.Context,
	caller identity.Caller,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	return dto.AppointmentList(appointments), nil
}
