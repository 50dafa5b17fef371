package appointment

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

// Auditor receives appointment events. *audit.Dispatcher implements it.
type Auditor interface {
	Dispatch(ev audit.Event)
}

// Deps is shared by every appointment use case. Cache and Audit are optional.
type Deps struct {
	Repo  domain.Repository
	Cache domain.SlotCache
	Audit Auditor
	Rules Rules
	Log   zerolog.Logger
}

// ======================================================
// RULES
// ======================================================

// Rules decides what "now" is for booking purposes. Stored dates and
// times are wall-clock values; Location only fixes today's date.
type Rules struct {
	Location          *time.Location
	MinAdvanceMinutes int
	Now               func() time.Time
}

func (r Rules) now() time.Time {
	loc := r.Location
	if loc == nil {
		loc = timezone.Location(timezone.DefaultTimezone)
	}
	if r.Now != nil {
		return r.Now().In(loc)
	}
	return time.Now().In(loc)
}

// EarliestStart returns the first start time still bookable on date.
// A date before today fails with past_date; a value past MinutesPerDay
// means nothing on that date is bookable anymore.
func (r Rules) EarliestStart(date wallclock.Date) (wallclock.Clock, error) {
	now := r.now()
	today := wallclock.DateOf(now)
	if date.Before(today) {
		return 0, httperr.ErrBusiness("past_date")
	}

	cutoff := now.Add(time.Duration(r.MinAdvanceMinutes) * time.Minute)
	if cutoff.Second() > 0 || cutoff.Nanosecond() > 0 {
		cutoff = cutoff.Truncate(time.Minute).Add(time.Minute)
	}

	cutoffDate, cutoffClock := timezone.WallClock(cutoff, now.Location())
	switch {
	case date.Before(cutoffDate):
		return wallclock.Clock(wallclock.MinutesPerDay + 1), nil
	case date.Equal(cutoffDate):
		return cutoffClock, nil
	default:
		return 0, nil
	}
}

// ======================================================
// SHARED STEPS
// ======================================================

// loadBookable returns the barber and service only when both are active
// and belong to the same barbershop.
func (d Deps) loadBookable(
	ctx context.Context,
	barberID uint,
	serviceID uint,
) (*models.Barber, *models.Service, error) {

	barber, err := d.Repo.GetBarber(ctx, barberID)
	if err != nil {
		return nil, nil, err
	}
	if !barber.Active {
		return nil, nil, httperr.ErrNotFound("barber_not_found")
	}

	service, err := d.Repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, nil, err
	}
	if !service.Active || service.DurationMinutes <= 0 || service.BarbershopID != barber.BarbershopID {
		return nil, nil, httperr.ErrNotFound("service_not_found")
	}

	return barber, service, nil
}

// checkWorkingHours rejects a slot outside the barber's window for date.
func (d Deps) checkWorkingHours(
	ctx context.Context,
	barberID uint,
	date wallclock.Date,
	slot domain.TimeSlot,
) error {

	schedule, err := d.Repo.GetWeeklySchedule(ctx, barberID)
	if err != nil {
		return err
	}

	hours, ok := schedule.For(date.Weekday())
	if !ok || !hours.Fits(slot) {
		return httperr.ErrBusiness("outside_working_hours")
	}
	return nil
}

// barberDay names one barber's calendar day, the unit of write locking.
type barberDay struct {
	barberID uint
	date     wallclock.Date
}

func dayOf(ap models.Appointment) barberDay {
	return barberDay{barberID: ap.BarberID, date: ap.Date}
}

// lockDays locks each distinct day once, ordered by barber then date, so
// writers needing the same two days always queue in the same order.
func lockDays(ctx context.Context, tx domain.Repository, days ...barberDay) error {
	sort.Slice(days, func(i, j int) bool {
		if days[i].barberID != days[j].barberID {
			return days[i].barberID < days[j].barberID
		}
		return days[i].date.Before(days[j].date)
	})

	for i, day := range days {
		if i > 0 && days[i-1].barberID == day.barberID && days[i-1].date.Equal(day.date) {
			continue
		}
		if err := tx.LockBarberDay(ctx, day.barberID, day.date); err != nil {
			return err
		}
	}
	return nil
}

// reservation is one guarded write of an appointment window.
type reservation struct {
	day       barberDay
	slot      domain.TimeSlot
	excludeID uint
	// alsoLock holds extra days to lock, such as the day a moved
	// appointment leaves.
	alsoLock []barberDay
	// load, when set, runs under the locks before the overlap check.
	load  func(ctx context.Context, tx domain.Repository) error
	write func(ctx context.Context, tx domain.Repository) error
}

// reserve locks the days, re-checks the window and writes, all in one
// transaction. conflictSource reports "check" or "constraint" when a
// conflict is returned.
func (d Deps) reserve(ctx context.Context, res reservation) (conflictSource string, err error) {
	err = d.Repo.RunInTx(ctx, func(ctx context.Context, tx domain.Repository) error {
		days := append([]barberDay{res.day}, res.alsoLock...)
		if err := lockDays(ctx, tx, days...); err != nil {
			return err
		}

		if res.load != nil {
			if err := res.load(ctx, tx); err != nil {
				return err
			}
		}

		existing, err := tx.ListActiveAppointmentsForDay(ctx, res.day.barberID, res.day.date)
		if err != nil {
			return err
		}

		if _, taken := domain.FindConflict(res.slot, existing, res.excludeID); taken {
			conflictSource = "check"
			return httperr.ErrConflict("time_conflict")
		}

		return res.write(ctx, tx)
	})

	if err != nil && conflictSource == "" && httperr.CodeOf(err) == "time_conflict" {
		conflictSource = "constraint"
	}
	return conflictSource, err
}

// reload re-reads an appointment under the day lock and fails with
// appointment_changed when it left the locked day meanwhile.
func reload(ctx context.Context, tx domain.Repository, id uint, locked barberDay) (*models.Appointment, error) {
	fresh, err := tx.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if fresh.BarberID != locked.barberID || !fresh.Date.Equal(locked.date) {
		return nil, httperr.ErrConflict("appointment_changed")
	}
	return fresh, nil
}

func (d Deps) invalidateDays(ctx context.Context, barberID uint, dates ...wallclock.Date) {
	if d.Cache == nil {
		return
	}
	for _, date := range dates {
		if err := d.Cache.InvalidateDay(ctx, barberID, date); err != nil {
			d.Log.Error().Err(err).
				Uint("barber_id", barberID).
				Str("date", date.String()).
				Msg("slot cache invalidation failed")
		}
	}
}

func (d Deps) dispatch(ev audit.Event) {
	if d.Audit == nil {
		return
	}
	d.Audit.Dispatch(ev)
}

func uintPtr(v uint) *uint {
	return &v
}
