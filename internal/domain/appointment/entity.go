package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCanceled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusDone)
	ap.CompletedAt = &now
	return nil
}

// Transition moves ap to next through the matching action.
// Setting the current status again is a no-op.
func Transition(ap *models.Appointment, next Status, now time.Time) error {
	if Status(ap.Status) == next {
		return nil
	}

	switch next {
	case StatusConfirmed:
		return Confirm(ap, now)
	case StatusCanceled:
		return Cancel(ap, now)
	case StatusDone:
		return Complete(ap, now)
	default:
		return httperr.ErrBusiness("invalid_state")
	}
}
