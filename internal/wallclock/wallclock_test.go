package wallclock

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:30", want: 570},
		{in: "23:59", want: 1439},
		{in: "24:00", want: MinutesPerDay},
		{in: "9:30", wantErr: true},
		{in: "25:00", wantErr: true},
		{in: "10:61", wantErr: true},
		{in: "10:00:00", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClockStringAndAdd(t *testing.T) {
	c := MustClock("10:00")
	assert.Equal(t, "10:30", c.Add(30).String())
	assert.Equal(t, "24:00", MustClock("23:30").Add(30).String())
	assert.Equal(t, "00:05", Clock(5).String())
}

func TestClockJSON(t *testing.T) {
	type payload struct {
		Start Clock `json:"start"`
	}

	data, err := json.Marshal(payload{Start: MustClock("14:00")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"14:00"}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"start":"08:15"}`), &p))
	assert.Equal(t, MustClock("08:15"), p.Start)

	assert.Error(t, json.Unmarshal([]byte(`{"start":"8h"}`), &p))
}

func TestClockScan(t *testing.T) {
	var c Clock
	require.NoError(t, c.Scan(int64(600)))
	assert.Equal(t, "10:00", c.String())

	require.NoError(t, c.Scan([]byte("630")))
	assert.Equal(t, "10:30", c.String())

	assert.Error(t, c.Scan(1.5))
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2024-06-10")
	require.NoError(t, err)

	assert.Equal(t, time.Monday, d.Weekday())
	assert.Equal(t, "2024-06-11", d.AddDays(1).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.Equal(NewDate(2024, time.June, 10)))

	_, err = ParseDate("10/06/2024")
	assert.Error(t, err)
}

func TestDateOfUsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	instant := time.Date(2024, 6, 11, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-06-10", DateOf(instant.In(loc)).String())
	assert.Equal(t, "2024-06-11", DateOf(instant).String())
}

func TestDateAt(t *testing.T) {
	d := NewDate(2024, time.June, 10)
	at := d.At(MustClock("14:30"), time.UTC)
	assert.Equal(t, time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC), at)
}

func TestDateJSONAndScan(t *testing.T) {
	data, err := json.Marshal(NewDate(2024, time.June, 10))
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-10"`, string(data))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-12-31"`), &d))
	assert.Equal(t, "2024-12-31", d.String())

	require.NoError(t, d.Scan(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01-02", d.String())

	require.NoError(t, d.Scan("2025-03-04T00:00:00Z"))
	assert.Equal(t, "2025-03-04", d.String())
}
