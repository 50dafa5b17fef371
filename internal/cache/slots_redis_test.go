package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

func newTestCache(t *testing.T) (*RedisSlotCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisSlotCache(rdb, time.Minute), mr
}

var (
	day   = wallclock.NewDate(2024, time.June, 10)
	key   = domain.SlotCacheKey{BarberID: 1, ServiceID: 2, DurationMinutes: 30, Date: day}
	slots = []domain.TimeSlot{
		domain.NewTimeSlot(wallclock.MustClock("09:00"), 30),
		domain.NewTimeSlot(wallclock.MustClock("09:30"), 30),
	}
)

func TestSlotCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, version, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, key, version, slots))

	got, _, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, slots, got)
}

func TestSlotCacheEmptyDayIsCached(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, version, _, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, key, version, nil))

	got, _, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestSlotCacheInvalidateDay(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, version, _, _ := c.Get(ctx, key)
	require.NoError(t, c.Set(ctx, key, version, slots))

	other := key
	other.Date = day.AddDays(1)
	_, otherVersion, _, _ := c.Get(ctx, other)
	require.NoError(t, c.Set(ctx, other, otherVersion, slots))

	require.NoError(t, c.InvalidateDay(ctx, key.BarberID, day))

	_, _, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit, "invalidated day must miss")

	_, _, hit, err = c.Get(ctx, other)
	require.NoError(t, err)
	assert.True(t, hit, "other days stay cached")
}

func TestSlotCacheInvalidateBarber(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, version, _, _ := c.Get(ctx, key)
	require.NoError(t, c.Set(ctx, key, version, slots))

	require.NoError(t, c.InvalidateBarber(ctx, key.BarberID))

	_, _, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestSlotCacheStaleWriteIsUnreachable(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	// a reader computes slots, a booking lands, then the reader stores them
	_, staleVersion, _, _ := c.Get(ctx, key)
	require.NoError(t, c.InvalidateDay(ctx, key.BarberID, day))
	require.NoError(t, c.Set(ctx, key, staleVersion, slots))

	_, _, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestSlotCacheEntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, version, _, _ := c.Get(ctx, key)
	require.NoError(t, c.Set(ctx, key, version, slots))

	mr.FastForward(2 * time.Minute)

	_, _, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestSlotCacheRedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	_, _, _, err := c.Get(context.Background(), key)
	assert.Error(t, err)
}
