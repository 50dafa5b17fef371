package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusNew       Status = "NEW"
	StatusConfirmed Status = "CONFIRMED"
	StatusDone      Status = "DONE"
	StatusCanceled  Status = "CANCELED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusConfirmed, StatusDone, StatusCanceled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
}

// Occupies reports whether an appointment in this status blocks its time window.
func (s Status) Occupies() bool {
	return s != StatusCanceled
}

func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusCanceled
}

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusNew {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current.Terminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current.Terminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanReschedule guards changes to barber, service, date or time.
func CanReschedule(current Status) error {
	if current.Terminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusNew
}
