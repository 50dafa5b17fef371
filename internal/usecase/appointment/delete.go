package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// DeleteAppointment removes the record for good. Cancelling is the
// status change; this is for owners and admins cleaning up.
type DeleteAppointment struct {
	Deps
}

func NewDeleteAppointment(d Deps) *DeleteAppointment {
	return &DeleteAppointment{Deps: d}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	caller identity.Caller,
	appointmentID uint,
) error {

	ap, err := uc.Repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	if !caller.CanManage(ap.UserID) {
		return httperr.ErrForbidden("not_owner")
	}

	if err := uc.Repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.invalidateDays(ctx, ap.BarberID, ap.Date)

	uc.dispatch(audit.Event{
		UserID:   uintPtr(caller.ID),
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: uintPtr(ap.ID),
		Metadata: map[string]any{
			"barberId": ap.BarberID,
			"date":     ap.Date.String(),
			"start":    ap.StartTime.String(),
		},
	})

	return nil
}
