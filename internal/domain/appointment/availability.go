package appointment

import (
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

type AvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	Date      wallclock.Date
}

// TimeSlot is a half-open [Start, End) window on one day.
type TimeSlot struct {
	Start wallclock.Clock `json:"start"`
	End   wallclock.Clock `json:"end"`
}

func NewTimeSlot(start wallclock.Clock, durationMinutes int) TimeSlot {
	return TimeSlot{Start: start, End: start.Add(durationMinutes)}
}

// Overlaps uses half-open intervals, so back-to-back windows do not overlap.
func (s TimeSlot) Overlaps(o TimeSlot) bool {
	return s.Start < o.End && o.Start < s.End
}

func (s TimeSlot) Minutes() int {
	return s.End.Minutes() - s.Start.Minutes()
}

// SlotOf returns the window an appointment occupies.
func SlotOf(ap models.Appointment) TimeSlot {
	return TimeSlot{Start: ap.StartTime, End: ap.EndTime}
}

// FindConflict returns the first appointment that still occupies its window
// and overlaps candidate. The appointment with id excludeID is ignored.
func FindConflict(candidate TimeSlot, existing []models.Appointment, excludeID uint) (*models.Appointment, bool) {
	for i := range existing {
		ap := existing[i]
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}
		if !Status(ap.Status).Occupies() {
			continue
		}
		if candidate.Overlaps(SlotOf(ap)) {
			return &existing[i], true
		}
	}
	return nil, false
}

// FreeSlots steps through the working window by the service duration and
// keeps every candidate that avoids the break and existing appointments.
// Candidates starting before notBefore are dropped.
func FreeSlots(
	hours DayHours,
	durationMinutes int,
	booked []models.Appointment,
	notBefore wallclock.Clock,
) []TimeSlot {

	if !hours.IsWorking || durationMinutes <= 0 {
		return []TimeSlot{}
	}

	slots := []TimeSlot{}
	for cur := hours.Start; cur.Add(durationMinutes) <= hours.End; cur = cur.Add(durationMinutes) {
		slot := NewTimeSlot(cur, durationMinutes)

		if slot.Start < notBefore {
			continue
		}

		// pausa
		if hours.OverlapsBreak(slot) {
			continue
		}

		if _, taken := FindConflict(slot, booked, 0); taken {
			continue
		}

		slots = append(slots, slot)
	}

	return slots
}

// StartingFrom keeps the slots that start at or after notBefore.
func StartingFrom(slots []TimeSlot, notBefore wallclock.Clock) []TimeSlot {
	out := make([]TimeSlot, 0, len(slots))
	for _, s := range slots {
		if s.Start >= notBefore {
			out = append(out, s)
		}
	}
	return out
}
