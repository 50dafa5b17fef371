package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// GetAvailability resolves the bookable slots of a barber for one service
// on one day. Slots step by the service duration from the start of the
// working window.
type GetAvailability struct {
	Deps
}

func NewGetAvailability(d Deps) *GetAvailability {
	return &GetAvailability{Deps: d}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	if in.Date.IsZero() {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	notBefore, err := uc.Rules.EarliestStart(in.Date)
	if err != nil {
		return nil, err
	}

	_, service, err := uc.loadBookable(ctx, in.BarberID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	day, err := uc.daySlots(ctx, in, service)
	if err != nil {
		return nil, err
	}

	return domain.StartingFrom(day, notBefore), nil
}

// daySlots returns every free slot of the day, through the cache when one
// is configured. Cache failures fall back to the store.
func (uc *GetAvailability) daySlots(
	ctx context.Context,
	in domain.AvailabilityInput,
	service *models.Service,
) ([]domain.TimeSlot, error) {

	if uc.Cache == nil {
		metrics.IncSlotQuery("off")
		return uc.compute(ctx, in, service)
	}

	key := domain.SlotCacheKey{
		BarberID:        in.BarberID,
		ServiceID:       service.ID,
		DurationMinutes: service.DurationMinutes,
		Date:            in.Date,
	}

	cached, version, hit, err := uc.Cache.Get(ctx, key)
	if err != nil {
		uc.Log.Warn().Err(err).Msg("slot cache read failed")
		metrics.IncSlotQuery("off")
		return uc.compute(ctx, in, service)
	}
	if hit {
		metrics.IncSlotQuery("hit")
		return cached, nil
	}

	metrics.IncSlotQuery("miss")
	slots, err := uc.compute(ctx, in, service)
	if err != nil {
		return nil, err
	}

	if err := uc.Cache.Set(ctx, key, version, slots); err != nil {
		uc.Log.Warn().Err(err).Msg("slot cache write failed")
	}
	return slots, nil
}

func (uc *GetAvailability) compute(
	ctx context.Context,
	in domain.AvailabilityInput,
	service *models.Service,
) ([]domain.TimeSlot, error) {

	schedule, err := uc.Repo.GetWeeklySchedule(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	hours, ok := schedule.For(in.Date.Weekday())
	if !ok {
		return []domain.TimeSlot{}, nil
	}

	booked, err := uc.Repo.ListActiveAppointmentsForDay(ctx, in.BarberID, in.Date)
	if err != nil {
		return nil, err
	}

	return domain.FreeSlots(hours, service.DurationMinutes, booked, 0), nil
}
