package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

func TestCancelFreesTheSlot(t *testing.T) {
	f := newFixture(t)
	cache := testutil.NewMemoryCache()
	f.deps.Cache = cache
	f.seed(42, customer.ID, monday, "10:00", "10:30", domain.StatusNew)

	slots, err := availability(f, joao, haircut, monday)
	require.NoError(t, err)
	require.NotContains(t, slotStarts(slots), "10:00")

	ap, err := NewCancelAppointment(f.deps).Execute(context.Background(), customer, 42)
	require.NoError(t, err)
	assert.Equal(t, "CANCELED", ap.Status)
	assert.NotNil(t, ap.CancelledAt)

	slots, err = availability(f, joao, haircut, monday)
	require.NoError(t, err)
	assert.Contains(t, slotStarts(slots), "10:00")

	again, err := book(f, joao, haircut, monday, "10:00")
	require.NoError(t, err)
	assert.NotEqual(t, uint(42), again.ID)
}

func TestCancelIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.seed(42, customer.ID, monday, "10:00", "10:30", domain.StatusNew)

	uc := NewCancelAppointment(f.deps)
	_, err := uc.Execute(context.Background(), customer, 42)
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), customer, 42)
	require.NoError(t, err)

	assert.Equal(t, []string{"appointment_cancelled"}, f.audit.actions())
}

func TestCancelByStrangerForbidden(t *testing.T) {
	f := newFixture(t)
	f.seed(42, customer.ID, monday, "10:00", "10:30", domain.StatusNew)

	_, err := NewCancelAppointment(f.deps).Execute(context.Background(), stranger, 42)
	assertKind(t, err, httperr.KindForbidden, "not_owner")

	ap, err := NewCancelAppointment(f.deps).Execute(context.Background(), admin, 42)
	require.NoError(t, err)
	assert.Equal(t, "CANCELED", ap.Status)
}

func TestConfirmAndComplete(t *testing.T) {
	f := newFixture(t)
	f.seed(7, customer.ID, monday, "10:00", "10:30", domain.StatusNew)
	ctx := context.Background()

	_, err := NewConfirmAppointment(f.deps).Execute(ctx, customer, 7)
	assertKind(t, err, httperr.KindForbidden, "admin_only")

	ap, err := NewConfirmAppointment(f.deps).Execute(ctx, admin, 7)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", ap.Status)

	ap, err = NewCompleteAppointment(f.deps).Execute(ctx, admin, 7)
	require.NoError(t, err)
	assert.Equal(t, "DONE", ap.Status)
	assert.NotNil(t, ap.CompletedAt)

	_, err = NewCancelAppointment(f.deps).Execute(ctx, admin, 7)
	assertKind(t, err, httperr.KindInvalidArgument, "invalid_state")

	assert.Equal(t, []string{"appointment_confirmed", "appointment_completed"}, f.audit.actions())
}

func TestConfirmAfterCancelRejected(t *testing.T) {
	f := newFixture(t)
	f.seed(7, customer.ID, monday, "10:00", "10:30", domain.StatusCanceled)

	_, err := NewConfirmAppointment(f.deps).Execute(context.Background(), admin, 7)
	assertKind(t, err, httperr.KindInvalidArgument, "invalid_state")
}

func TestStatusChangeMissingAppointment(t *testing.T) {
	f := newFixture(t)

	_, err := NewCompleteAppointment(f.deps).Execute(context.Background(), admin, 404)
	assertKind(t, err, httperr.KindNotFound, "appointment_not_found")
}
