package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

func update(f *fixture, caller identity.Caller, id uint, patch UpdateAppointmentPatch) (*models.Appointment, error) {
	return NewUpdateAppointment(f.deps).Execute(context.Background(), caller, id, patch)
}

func TestUpdateAppointment_StatusOnlySkipsConflictCheck(t *testing.T) {
	f := newFixture(t)
	f.repo.EnforceOverlap = false
	// two overlapping rows that predate any protection
	target := f.seed(0, customer.ID, monday, "10:00", "10:30", domain.StatusNew)
	f.seed(0, stranger.ID, monday, "10:00", "10:30", domain.StatusNew)

	ap, err := update(f, admin, target.ID, UpdateAppointmentPatch{Status: ptr("CONFIRMED")})
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", ap.Status)
	assert.NotNil(t, ap.ConfirmedAt)
}

func TestUpdateAppointment_Reschedule(t *testing.T) {
	f := newFixture(t)
	cache := testutil.NewMemoryCache()
	f.deps.Cache = cache
	target := f.seed(0, customer.ID, monday, "10:00", "10:30", domain.StatusNew)

	ap, err := update(f, customer, target.ID, UpdateAppointmentPatch{
		Date: ptr(tuesday),
		Time: ptr("15:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, tuesday, ap.Date.String())
	assert.Equal(t, "15:00", ap.StartTime.String())
	assert.Equal(t, "15:30", ap.EndTime.String())
	assert.Equal(t, []string{"1:2024-06-10", "1:2024-06-11"}, cache.DayInvalidations)

	slots, err := availability(f, joao, haircut, monday)
	require.NoError(t, err)
	assert.Contains(t, slotStarts(slots), "10:00")
}

func TestUpdateAppointment_ShiftOverOwnWindow(t *testing.T) {
	f := newFixture(t)
	target := f.seed(0, customer.ID, monday, "10:00", "10:30", domain.StatusNew)

	ap, err := update(f, customer, target.ID, UpdateAppointmentPatch{Time: ptr("10:15")})
	require.NoError(t, err)
	assert.Equal(t, "10:45", ap.EndTime.String())
}

func TestUpdateAppointment_ServiceChangeRecomputesEnd(t *testing.T) {
	f := newFixture(t)
	target := f.seed(0, customer.ID, monday, "10:00", "10:30", domain.StatusNew)
	f.seed(0, stranger.ID, monday, "10:30", "11:00", domain.StatusNew)

	_, err := update(f, customer, target.ID, UpdateAppointmentPatch{ServiceID: ptr(fullService)})
	assertKind(t, err, httperr.KindConflict, "time_conflict")

	f.seed(0, stranger.ID, monday, "16:00", "16:30", domain.StatusCanceled)
	ap, err := update(f, customer, target.ID, UpdateAppointmentPatch{
		ServiceID: ptr(fullService),
		Time:      ptr("16:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "17:00", ap.EndTime.String())
	assert.Equal(t, fullService, ap.ServiceID)
}

func TestUpdateAppointment_ChangeBarber(t *testing.T) {
	f := newFixture(t)
	target := f.seed(0, customer.ID, monday, "17:30", "18:00", domain.StatusNew)

	ap, err := update(f, customer, target.ID, UpdateAppointmentPatch{BarberID: ptr(pedro)})
	require.NoError(t, err)
	assert.Equal(t, pedro, ap.BarberID)

	_, err = update(f, customer, target.ID, UpdateAppointmentPatch{Time: ptr("18:00")})
	assertKind(t, err, httperr.KindInvalidArgument, "outside_working_hours")
}

func TestUpdateAppointment_FailuresLeaveStoreUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		caller identity.Caller
		id     uint
		patch  UpdateAppointmentPatch
		kind   httperr.Kind
		code   string
	}{
		{"missing", customer, 999, UpdateAppointmentPatch{Notes: ptr("x")}, httperr.KindNotFound, "appointment_not_found"},
		{"not owner", stranger, 0, UpdateAppointmentPatch{Notes: ptr("x")}, httperr.KindForbidden, "not_owner"},
		{"past date", customer, 0, UpdateAppointmentPatch{Date: ptr(yesterday)}, httperr.KindInvalidArgument, "past_date"},
		{"bad date", customer, 0, UpdateAppointmentPatch{Date: ptr("2024-13-01")}, httperr.KindInvalidArgument, "invalid_date"},
		{"bad time", customer, 0, UpdateAppointmentPatch{Time: ptr("25:00")}, httperr.KindInvalidArgument, "invalid_time"},
		{"bad status", customer, 0, UpdateAppointmentPatch{Status: ptr("LOST")}, httperr.KindInvalidArgument, "invalid_status"},
		{"customer confirms", customer, 0, UpdateAppointmentPatch{Status: ptr("CONFIRMED")}, httperr.KindForbidden, "admin_only"},
		{"back to new", admin, 0, UpdateAppointmentPatch{Status: ptr("NEW"), Notes: ptr("x")}, httperr.KindInvalidArgument, "invalid_state"},
		{"collides", customer, 0, UpdateAppointmentPatch{Time: ptr("11:00")}, httperr.KindConflict, "time_conflict"},
		{"unknown barber", customer, 0, UpdateAppointmentPatch{BarberID: ptr(uint(99))}, httperr.KindNotFound, "barber_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			target := f.seed(0, customer.ID, monday, "10:00", "10:30", domain.StatusNew)
			f.seed(0, stranger.ID, monday, "11:00", "11:30", domain.StatusNew)
			before := f.repo.Appointments()

			id := tt.id
			if id == 0 {
				id = target.ID
			}
			// admins with a status patch go through a confirmed row
			if tt.caller.IsAdmin() {
				_, err := update(f, admin, id, UpdateAppointmentPatch{Status: ptr("CONFIRMED")})
				require.NoError(t, err)
				before = f.repo.Appointments()
			}

			_, err := update(f, tt.caller, id, tt.patch)
			assertKind(t, err, tt.kind, tt.code)
			assert.Equal(t, before, f.repo.Appointments())
		})
	}
}

func TestUpdateAppointment_TerminalCannotMove(t *testing.T) {
	f := newFixture(t)
	target := f.seed(0, customer.ID, monday, "10:00", "10:30", domain.StatusDone)

	_, err := update(f, admin, target.ID, UpdateAppointmentPatch{Time: ptr("15:00")})
	assertKind(t, err, httperr.KindInvalidArgument, "invalid_state")

	ap, err := update(f, admin, target.ID, UpdateAppointmentPatch{Notes: ptr("pagou em dinheiro")})
	require.NoError(t, err)
	assert.Equal(t, "pagou em dinheiro", ap.Notes)
}

func TestUpdateAppointment_AdminMovesAnyone(t *testing.T) {
	f := newFixture(t)
	target := f.seed(0, customer.ID, monday, "10:00", "10:30", domain.StatusConfirmed)

	ap, err := update(f, admin, target.ID, UpdateAppointmentPatch{Time: ptr("12:00")})
	require.NoError(t, err)
	assert.Equal(t, "12:00", ap.StartTime.String())
	assert.Equal(t, customer.ID, ap.UserID)
	assert.Equal(t, []string{"appointment_updated"}, f.audit.actions())
}
