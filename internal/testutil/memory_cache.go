package testutil

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

// MemoryCache is a generation-keyed domain.SlotCache that also counts
// invalidations so tests can assert on them.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string][]domain.TimeSlot
	dayGen  map[string]int
	barGen  map[uint]int

	DayInvalidations    []string
	BarberInvalidations []uint
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: map[string][]domain.TimeSlot{},
		dayGen:  map[string]int{},
		barGen:  map[uint]int{},
	}
}

func (c *MemoryCache) Get(_ context.Context, key domain.SlotCacheKey) ([]domain.TimeSlot, string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	version := c.versionLocked(key.BarberID, key.Date)
	slots, ok := c.entries[entry(key, version)]
	if !ok {
		return nil, version, false, nil
	}
	return append([]domain.TimeSlot{}, slots...), version, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key domain.SlotCacheKey, version string, slots []domain.TimeSlot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry(key, version)] = append([]domain.TimeSlot{}, slots...)
	return nil
}

func (c *MemoryCache) InvalidateDay(_ context.Context, barberID uint, date wallclock.Date) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := dayKey(barberID, date)
	c.dayGen[k]++
	c.DayInvalidations = append(c.DayInvalidations, k)
	return nil
}

func (c *MemoryCache) InvalidateBarber(_ context.Context, barberID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.barGen[barberID]++
	c.BarberInvalidations = append(c.BarberInvalidations, barberID)
	return nil
}

func (c *MemoryCache) versionLocked(barberID uint, date wallclock.Date) string {
	return fmt.Sprintf("%d.%d", c.barGen[barberID], c.dayGen[dayKey(barberID, date)])
}

func dayKey(barberID uint, date wallclock.Date) string {
	return fmt.Sprintf("%d:%s", barberID, date)
}

func entry(key domain.SlotCacheKey, version string) string {
	return fmt.Sprintf("%d:%s:%d:%d:%s", key.BarberID, key.Date, key.ServiceID, key.DurationMinutes, version)
}

var _ domain.SlotCache = (*MemoryCache)(nil)
