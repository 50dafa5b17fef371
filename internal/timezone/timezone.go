package timezone

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone, then UTC when tzdata is missing.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// WallClock splits t into the calendar day and time of day seen in loc.
func WallClock(t time.Time, loc *time.Location) (wallclock.Date, wallclock.Clock) {
	local := t.In(loc)
	return wallclock.DateOf(local), wallclock.ClockOf(local)
}
