package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

func TestDayLockKey(t *testing.T) {
	d := wallclock.NewDate(2024, time.June, 10)
	assert.Equal(t, "appointments:7:2024-06-10", DayLockKey(7, d))
	assert.NotEqual(t, DayLockKey(7, d), DayLockKey(7, d.AddDays(1)))
	assert.NotEqual(t, DayLockKey(7, d), DayLockKey(8, d))
}

func TestNotFoundMapping(t *testing.T) {
	err := notFound(fmt.Errorf("first: %w", gorm.ErrRecordNotFound), "barber_not_found")
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))

	boom := errors.New("connection reset")
	assert.Same(t, boom, notFound(boom, "barber_not_found"))
}

func TestWriteErrMapsOverlapToConflict(t *testing.T) {
	assert.NoError(t, writeErr(nil))

	exclusion := &pgconn.PgError{Code: "23P01", ConstraintName: "appointments_no_overlap"}
	err := writeErr(fmt.Errorf("insert: %w", exclusion))
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	other := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, httperr.KindInternal, httperr.KindOf(writeErr(other)))
}
