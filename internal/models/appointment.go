package models

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BarberID uint   `gorm:"index:idx_appointments_barber_day;not null" json:"barberId"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ServiceID uint    `gorm:"not null" json:"serviceId"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Date      wallclock.Date  `gorm:"index:idx_appointments_barber_day;not null" json:"date"`
	StartTime wallclock.Clock `gorm:"column:start_minute;not null" json:"startTime"`
	EndTime   wallclock.Clock `gorm:"column:end_minute;not null" json:"endTime"`

	Status string `gorm:"size:20;default:'NEW';index" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	ConfirmedAt *time.Time `json:"confirmedAt"`
	CancelledAt *time.Time `json:"cancelledAt"`
	CompletedAt *time.Time `json:"completedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
