package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lists every appointment of the barber on date, canceled included.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barberID uint,
	date wallclock.Date,
) ([]dto.AppointmentListDTO, error) {

	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		barberID,
		date,
		date.AddDays(1),
	)
	if err != nil {
		return nil, err
	}

	return dto.AppointmentList(appointments), nil
}
