package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var statusActions = map[domain.Status]string{
	domain.StatusConfirmed: "appointment_confirmed",
	domain.StatusCanceled:  "appointment_cancelled",
	domain.StatusDone:      "appointment_completed",
}

// requireStatusPermission lets owners cancel; confirming and completing
// are done by the shop.
func requireStatusPermission(caller identity.Caller, target domain.Status) error {
	switch target {
	case domain.StatusConfirmed, domain.StatusDone:
		if !caller.IsAdmin() {
			return httperr.ErrForbidden("admin_only")
		}
	}
	return nil
}

// changeStatus re-reads the appointment under its day lock, applies target
// and writes only the status columns, so a concurrent move is never undone.
func (d Deps) changeStatus(
	ctx context.Context,
	caller identity.Caller,
	appointmentID uint,
	target domain.Status,
) (*models.Appointment, error) {

	ap, err := d.Repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if !caller.CanManage(ap.UserID) {
		return nil, httperr.ErrForbidden("not_owner")
	}
	if err := requireStatusPermission(caller, target); err != nil {
		return nil, err
	}

	var (
		updated models.Appointment
		changed bool
	)
	err = d.Repo.RunInTx(ctx, func(ctx context.Context, tx domain.Repository) error {
		day := dayOf(*ap)
		if err := tx.LockBarberDay(ctx, day.barberID, day.date); err != nil {
			return err
		}

		fresh, err := reload(ctx, tx, appointmentID, day)
		if err != nil {
			return err
		}

		previous := fresh.Status
		if err := domain.Transition(fresh, target, d.Rules.now()); err != nil {
			return err
		}
		updated = *fresh
		if fresh.Status == previous {
			return nil
		}

		changed = true
		return tx.UpdateAppointment(ctx, fresh, domain.StatusColumns)
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return &updated, nil
	}

	// only a cancellation changes what is free
	if target == domain.StatusCanceled {
		d.invalidateDays(ctx, updated.BarberID, updated.Date)
	}

	metrics.IncStatusChange(updated.Status)

	d.dispatch(audit.Event{
		UserID:   uintPtr(caller.ID),
		Action:   statusActions[domain.Status(updated.Status)],
		Entity:   "appointment",
		EntityID: &updated.ID,
	})

	return &updated, nil
}
