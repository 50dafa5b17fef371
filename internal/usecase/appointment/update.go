package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

// UpdateAppointmentPatch holds the fields to change; nil means untouched.
type UpdateAppointmentPatch struct {
	BarberID  *uint
	ServiceID *uint
	Date      *string
	Time      *string
	Status    *string
	Notes     *string
}

type UpdateAppointment struct {
	Deps
}

func NewUpdateAppointment(d Deps) *UpdateAppointment {
	return &UpdateAppointment{Deps: d}
}

// Execute validates the patch against a first read, then re-reads the row
// under the day locks and applies the patch to that fresh copy. Only the
// columns the patch touches are written.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	caller identity.Caller,
	appointmentID uint,
	patch UpdateAppointmentPatch,
) (*models.Appointment, error) {

	current, err := uc.Repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if !caller.CanManage(current.UserID) {
		return nil, httperr.ErrForbidden("not_owner")
	}

	target := *current
	moved, err := applyPlacement(&target, patch)
	if err != nil {
		return nil, err
	}

	var status domain.Status
	if patch.Status != nil {
		if status, err = domain.ParseStatus(*patch.Status); err != nil {
			return nil, httperr.ErrBusiness("invalid_status")
		}
		if err := requireStatusPermission(caller, status); err != nil {
			return nil, err
		}
	}

	if moved {
		if err := domain.CanReschedule(domain.Status(current.Status)); err != nil {
			return nil, err
		}
		if err := uc.checkNotPast(target.Date, target.StartTime); err != nil {
			return nil, err
		}

		_, service, err := uc.loadBookable(ctx, target.BarberID, target.ServiceID)
		if err != nil {
			return nil, err
		}

		slot := domain.NewTimeSlot(target.StartTime, service.DurationMinutes)
		target.EndTime = slot.End

		if err := uc.checkWorkingHours(ctx, target.BarberID, target.Date, slot); err != nil {
			return nil, err
		}
	}

	columns := patchColumns(moved, patch)

	var (
		updated        models.Appointment
		previousStatus string
	)
	load := func(ctx context.Context, tx domain.Repository) error {
		fresh, err := reload(ctx, tx, appointmentID, dayOf(*current))
		if err != nil {
			return err
		}
		if moved && !samePlacement(*fresh, *current) {
			return httperr.ErrConflict("appointment_changed")
		}
		previousStatus = fresh.Status

		if moved {
			if err := domain.CanReschedule(domain.Status(fresh.Status)); err != nil {
				return err
			}
			fresh.BarberID = target.BarberID
			fresh.ServiceID = target.ServiceID
			fresh.Date = target.Date
			fresh.StartTime = target.StartTime
			fresh.EndTime = target.EndTime
		}
		if patch.Status != nil {
			if err := domain.Transition(fresh, status, uc.Rules.now()); err != nil {
				return err
			}
		}
		if patch.Notes != nil {
			fresh.Notes = *patch.Notes
		}

		updated = *fresh
		return nil
	}
	write := func(ctx context.Context, tx domain.Repository) error {
		if len(columns) == 0 {
			return nil
		}
		return tx.UpdateAppointment(ctx, &updated, columns)
	}

	if moved {
		source, err := uc.reserve(ctx, reservation{
			day:       dayOf(target),
			slot:      domain.SlotOf(target),
			excludeID: appointmentID,
			alsoLock:  []barberDay{dayOf(*current)},
			load:      load,
			write:     write,
		})
		if err != nil {
			if source != "" {
				metrics.IncBookingConflict(source)
			}
			return nil, err
		}
	} else {
		err := uc.Repo.RunInTx(ctx, func(ctx context.Context, tx domain.Repository) error {
			day := dayOf(*current)
			if err := tx.LockBarberDay(ctx, day.barberID, day.date); err != nil {
				return err
			}
			if err := load(ctx, tx); err != nil {
				return err
			}
			return write(ctx, tx)
		})
		if err != nil {
			return nil, err
		}
	}

	uc.invalidateDays(ctx, current.BarberID, current.Date)
	if moved && (updated.BarberID != current.BarberID || !updated.Date.Equal(current.Date)) {
		uc.invalidateDays(ctx, updated.BarberID, updated.Date)
	}

	if updated.Status != previousStatus {
		metrics.IncStatusChange(updated.Status)
	}

	uc.dispatch(audit.Event{
		UserID:   uintPtr(caller.ID),
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &updated.ID,
		Metadata: map[string]any{
			"rescheduled": moved,
			"status":      updated.Status,
		},
	})

	return &updated, nil
}

func patchColumns(moved bool, patch UpdateAppointmentPatch) []string {
	var columns []string
	if moved {
		columns = append(columns, domain.PlacementColumns...)
	}
	if patch.Status != nil {
		columns = append(columns, domain.StatusColumns...)
	}
	if patch.Notes != nil {
		columns = append(columns, domain.NotesColumns...)
	}
	return columns
}

func samePlacement(a, b models.Appointment) bool {
	return a.BarberID == b.BarberID &&
		a.ServiceID == b.ServiceID &&
		a.Date.Equal(b.Date) &&
		a.StartTime == b.StartTime &&
		a.EndTime == b.EndTime
}

// applyPlacement copies barber, service, date and time from patch and
// reports whether any of them actually changed.
func applyPlacement(ap *models.Appointment, patch UpdateAppointmentPatch) (bool, error) {
	moved := false

	if patch.BarberID != nil && *patch.BarberID != ap.BarberID {
		ap.BarberID = *patch.BarberID
		moved = true
	}

	if patch.ServiceID != nil && *patch.ServiceID != ap.ServiceID {
		ap.ServiceID = *patch.ServiceID
		moved = true
	}

	if patch.Date != nil {
		date, err := wallclock.ParseDate(*patch.Date)
		if err != nil {
			return false, httperr.ErrBusiness("invalid_date")
		}
		if !date.Equal(ap.Date) {
			ap.Date = date
			moved = true
		}
	}

	if patch.Time != nil {
		start, err := wallclock.ParseClock(*patch.Time)
		if err != nil || start >= wallclock.MinutesPerDay {
			return false, httperr.ErrBusiness("invalid_time")
		}
		if start != ap.StartTime {
			ap.StartTime = start
			moved = true
		}
	}

	return moved, nil
}
