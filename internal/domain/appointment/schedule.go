package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

// DayHours is the working window of one weekday, with an optional break.
type DayHours struct {
	IsWorking  bool
	Start      wallclock.Clock
	End        wallclock.Clock
	BreakStart *wallclock.Clock
	BreakEnd   *wallclock.Clock
}

func (h DayHours) HasBreak() bool {
	return h.BreakStart != nil && h.BreakEnd != nil
}

func (h DayHours) OverlapsBreak(slot TimeSlot) bool {
	if !h.HasBreak() {
		return false
	}
	return slot.Overlaps(TimeSlot{Start: *h.BreakStart, End: *h.BreakEnd})
}

// Fits reports whether slot lies inside the working window and outside the break.
func (h DayHours) Fits(slot TimeSlot) bool {
	if !h.IsWorking {
		return false
	}
	if slot.Start < h.Start || slot.End > h.End {
		return false
	}
	return !h.OverlapsBreak(slot)
}

func (h DayHours) Validate() error {
	if !h.IsWorking {
		return nil
	}
	if !h.Start.Valid() || !h.End.Valid() || h.Start >= h.End {
		return fmt.Errorf("working window %s-%s is empty or out of range", h.Start, h.End)
	}
	if (h.BreakStart == nil) != (h.BreakEnd == nil) {
		return fmt.Errorf("break needs both start and end")
	}
	if h.HasBreak() {
		if *h.BreakStart >= *h.BreakEnd || *h.BreakStart < h.Start || *h.BreakEnd > h.End {
			return fmt.Errorf("break %s-%s outside working window", *h.BreakStart, *h.BreakEnd)
		}
	}
	return nil
}

func DayHoursFromModel(wh models.WorkingHours) DayHours {
	return DayHours{
		IsWorking:  wh.IsWorking,
		Start:      wh.StartTime,
		End:        wh.EndTime,
		BreakStart: wh.BreakStart,
		BreakEnd:   wh.BreakEnd,
	}
}

// WeeklySchedule is a barber's recurring availability keyed by weekday.
// A missing weekday and a non-working weekday both yield no slots.
type WeeklySchedule map[time.Weekday]DayHours

func ScheduleFromModels(rows []models.WorkingHours) WeeklySchedule {
	s := make(WeeklySchedule, len(rows))
	for _, wh := range rows {
		s[time.Weekday(wh.Weekday)] = DayHoursFromModel(wh)
	}
	return s
}

// For returns the hours of day; ok is false when nothing is bookable.
func (s WeeklySchedule) For(day time.Weekday) (DayHours, bool) {
	h, found := s[day]
	if !found || !h.IsWorking {
		return DayHours{}, false
	}
	return h, true
}
