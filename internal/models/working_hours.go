package models

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

// WorkingHours is one weekday of a barber's recurring schedule.
// Weekday follows time.Weekday (0 = Sunday).
type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex:idx_working_hours_barber_weekday;not null" json:"barberId"`

	Weekday int `gorm:"uniqueIndex:idx_working_hours_barber_weekday;not null" json:"weekday"`

	StartTime  wallclock.Clock  `gorm:"column:start_minute" json:"startTime"`
	EndTime    wallclock.Clock  `gorm:"column:end_minute" json:"endTime"`
	BreakStart *wallclock.Clock `gorm:"column:break_start_minute" json:"breakStart,omitempty"`
	BreakEnd   *wallclock.Clock `gorm:"column:break_end_minute" json:"breakEnd,omitempty"`
	IsWorking  bool             `json:"isWorking"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
