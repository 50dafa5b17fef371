package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

const keyPrefix = "slots"

// RedisSlotCache keeps computed day slots under versioned keys. Every
// write to a barber's day bumps that day's generation, so stale entries
// are never read again and simply expire.
type RedisSlotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSlotCache(rdb *redis.Client, ttl time.Duration) *RedisSlotCache {
	return &RedisSlotCache{rdb: rdb, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func (c *RedisSlotCache) Get(
	ctx context.Context,
	key domain.SlotCacheKey,
) ([]domain.TimeSlot, string, bool, error) {

	version, err := c.version(ctx, key.BarberID, key.Date)
	if err != nil {
		return nil, "", false, err
	}

	data, err := c.rdb.Get(ctx, entryKey(key, version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, "", false, err
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, version, false, nil
	}
	return slots, version, true, nil
}

func (c *RedisSlotCache) Set(
	ctx context.Context,
	key domain.SlotCacheKey,
	version string,
	slots []domain.TimeSlot,
) error {

	if slots == nil {
		slots = []domain.TimeSlot{}
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, entryKey(key, version), data, c.ttl).Err()
}

func (c *RedisSlotCache) InvalidateDay(ctx context.Context, barberID uint, date wallclock.Date) error {
	return c.rdb.Incr(ctx, dayGenKey(barberID, date)).Err()
}

func (c *RedisSlotCache) InvalidateBarber(ctx context.Context, barberID uint) error {
	return c.rdb.Incr(ctx, barberGenKey(barberID)).Err()
}

func (c *RedisSlotCache) version(ctx context.Context, barberID uint, date wallclock.Date) (string, error) {
	vals, err := c.rdb.MGet(ctx, barberGenKey(barberID), dayGenKey(barberID, date)).Result()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s.%s", genOf(vals[0]), genOf(vals[1])), nil
}

func genOf(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return "0"
}

func barberGenKey(barberID uint) string {
	return fmt.Sprintf("%s:gen:%d", keyPrefix, barberID)
}

func dayGenKey(barberID uint, date wallclock.Date) string {
	return fmt.Sprintf("%s:gen:%d:%s", keyPrefix, barberID, date)
}

func entryKey(key domain.SlotCacheKey, version string) string {
	return fmt.Sprintf(
		"%s:%d:%s:%d:%d:v%s",
		keyPrefix, key.BarberID, key.Date, key.ServiceID, key.DurationMinutes, version,
	)
}

var _ domain.SlotCache = (*RedisSlotCache)(nil)
