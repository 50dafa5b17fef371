package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestWeeklySchedule(t *testing.T) {
	rows := []models.WorkingHours{
		{Weekday: int(time.Monday), StartTime: clk("09:00"), EndTime: clk("18:00"), IsWorking: true},
		{Weekday: int(time.Sunday), StartTime: clk("09:00"), EndTime: clk("18:00"), IsWorking: false},
	}

	s := ScheduleFromModels(rows)

	h, ok := s.For(time.Monday)
	assert.True(t, ok)
	assert.Equal(t, clk("09:00"), h.Start)

	_, ok = s.For(time.Sunday)
	assert.False(t, ok, "not working")

	_, ok = s.For(time.Tuesday)
	assert.False(t, ok, "no record")
}

func TestDayHoursFits(t *testing.T) {
	h := DayHours{
		IsWorking: true, Start: clk("09:00"), End: clk("18:00"),
		BreakStart: clkPtr("12:00"), BreakEnd: clkPtr("13:00"),
	}

	assert.True(t, h.Fits(NewTimeSlot(clk("09:00"), 30)))
	assert.True(t, h.Fits(NewTimeSlot(clk("17:30"), 30)))
	assert.True(t, h.Fits(NewTimeSlot(clk("11:30"), 30)))
	assert.False(t, h.Fits(NewTimeSlot(clk("08:30"), 30)))
	assert.False(t, h.Fits(NewTimeSlot(clk("17:45"), 30)))
	assert.False(t, h.Fits(NewTimeSlot(clk("11:45"), 30)))
	assert.False(t, DayHours{}.Fits(NewTimeSlot(clk("10:00"), 30)))
}

func TestDayHoursValidate(t *testing.T) {
	assert.NoError(t, DayHours{}.Validate())
	assert.NoError(t, DayHours{IsWorking: true, Start: clk("09:00"), End: clk("24:00")}.Validate())
	assert.Error(t, DayHours{IsWorking: true, Start: clk("18:00"), End: clk("09:00")}.Validate())
	assert.Error(t, DayHours{IsWorking: true, Start: clk("09:00"), End: clk("18:00"), BreakStart: clkPtr("12:00")}.Validate())
	assert.Error(t, DayHours{
		IsWorking: true, Start: clk("09:00"), End: clk("18:00"),
		BreakStart: clkPtr("08:00"), BreakEnd: clkPtr("10:00"),
	}.Validate())
}
