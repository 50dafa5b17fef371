// Package testutil holds in-memory doubles for the appointment store.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

// MemoryRepo implements domain.Repository on maps. RunInTx is serialized
// and rolls back on error, which is enough to model the per-day lock.
type MemoryRepo struct {
	mu   sync.Mutex
	txMu sync.Mutex

	barbers      map[uint]models.Barber
	services     map[uint]models.Service
	hours        map[uint][]models.WorkingHours
	appointments map[uint]models.Appointment
	nextID       uint

	// EnforceOverlap makes writes fail like the database constraint would.
	EnforceOverlap bool
	// BeforeWrite, when set, runs before every appointment write.
	BeforeWrite func()
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		barbers:      map[uint]models.Barber{},
		services:     map[uint]models.Service{},
		hours:        map[uint][]models.WorkingHours{},
		appointments: map[uint]models.Appointment{},
		nextID:       1,
	}
}

// ===============================
// Seeding
// ===============================

func (r *MemoryRepo) AddBarber(b models.Barber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.barbers[b.ID] = b
}

func (r *MemoryRepo) AddService(s models.Service) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[s.ID] = s
}

func (r *MemoryRepo) SetWorkingHours(barberID uint, rows ...models.WorkingHours) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hours[barberID] = append([]models.WorkingHours(nil), rows...)
}

// AddAppointment stores ap as-is, bypassing every check.
func (r *MemoryRepo) AddAppointment(ap models.Appointment) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap.ID == 0 {
		ap.ID = r.nextID
	}
	if ap.ID >= r.nextID {
		r.nextID = ap.ID + 1
	}
	r.appointments[ap.ID] = ap
	return ap
}

// Appointments returns every stored appointment ordered by id.
func (r *MemoryRepo) Appointments() []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Appointment, 0, len(r.appointments))
	for _, ap := range r.appointments {
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ===============================
// domain.Repository
// ===============================

func (r *MemoryRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.barbers[id]
	if !ok {
		return nil, httperr.ErrNotFound("barber_not_found")
	}
	return &b, nil
}

func (r *MemoryRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok {
		return nil, httperr.ErrNotFound("service_not_found")
	}
	return &s, nil
}

func (r *MemoryRepo) GetWeeklySchedule(_ context.Context, barberID uint) (domain.WeeklySchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.ScheduleFromModels(r.hours[barberID]), nil
}

func (r *MemoryRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	return &ap, nil
}

func (r *MemoryRepo) ListActiveAppointmentsForDay(
	_ context.Context,
	barberID uint,
	date wallclock.Date,
) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool {
		return ap.BarberID == barberID && ap.Date.Equal(date) &&
			domain.Status(ap.Status).Occupies()
	}), nil
}

func (r *MemoryRepo) ListAppointmentsForPeriod(
	_ context.Context,
	barberID uint,
	from wallclock.Date,
	to wallclock.Date,
) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool {
		return ap.BarberID == barberID && !ap.Date.Before(from) && ap.Date.Before(to)
	}), nil
}

func (r *MemoryRepo) ListAppointmentsForUser(_ context.Context, userID uint) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool {
		return ap.UserID == userID
	}), nil
}

func (r *MemoryRepo) RunInTx(
	ctx context.Context,
	fn func(ctx context.Context, tx domain.Repository) error,
) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	snapshot := r.snapshot()
	if err := fn(ctx, r); err != nil {
		r.restore(snapshot)
		return err
	}
	return nil
}

// LockBarberDay is a no-op: RunInTx already serializes writers.
func (r *MemoryRepo) LockBarberDay(_ context.Context, barberID uint, _ wallclock.Date) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.barbers[barberID]; !ok {
		return httperr.ErrNotFound("barber_not_found")
	}
	return nil
}

func (r *MemoryRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.BeforeWrite != nil {
		r.BeforeWrite()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.overlapsLocked(*ap) {
		return httperr.ErrConflict("time_conflict")
	}

	ap.ID = r.nextID
	r.nextID++
	now := time.Now()
	ap.CreatedAt, ap.UpdatedAt = now, now
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *MemoryRepo) UpdateAppointment(_ context.Context, ap *models.Appointment, columns []string) error {
	if r.BeforeWrite != nil {
		r.BeforeWrite()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.appointments[ap.ID]
	if !ok {
		return httperr.ErrNotFound("appointment_not_found")
	}
	for _, col := range columns {
		if err := copyColumn(&stored, *ap, col); err != nil {
			return err
		}
	}
	if r.overlapsLocked(stored) {
		return httperr.ErrConflict("time_conflict")
	}

	stored.UpdatedAt = time.Now()
	ap.UpdatedAt = stored.UpdatedAt
	r.appointments[ap.ID] = stored
	return nil
}

func (r *MemoryRepo) DeleteAppointment(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[id]; !ok {
		return httperr.ErrNotFound("appointment_not_found")
	}
	delete(r.appointments, id)
	return nil
}

// ===============================
// Internals
// ===============================

func (r *MemoryRepo) filter(keep func(models.Appointment) bool) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if keep(ap) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *MemoryRepo) overlapsLocked(ap models.Appointment) bool {
	if !r.EnforceOverlap || !domain.Status(ap.Status).Occupies() {
		return false
	}
	for _, other := range r.appointments {
		if other.ID == ap.ID || other.BarberID != ap.BarberID || !other.Date.Equal(ap.Date) {
			continue
		}
		if !domain.Status(other.Status).Occupies() {
			continue
		}
		if domain.SlotOf(ap).Overlaps(domain.SlotOf(other)) {
			return true
		}
	}
	return false
}

// copyColumn mirrors a column-restricted update on the stored row.
func copyColumn(dst *models.Appointment, src models.Appointment, column string) error {
	switch column {
	case "barber_id":
		dst.BarberID = src.BarberID
	case "service_id":
		dst.ServiceID = src.ServiceID
	case "date":
		dst.Date = src.Date
	case "start_minute":
		dst.StartTime = src.StartTime
	case "end_minute":
		dst.EndTime = src.EndTime
	case "status":
		dst.Status = src.Status
	case "confirmed_at":
		dst.ConfirmedAt = src.ConfirmedAt
	case "cancelled_at":
		dst.CancelledAt = src.CancelledAt
	case "completed_at":
		dst.CompletedAt = src.CompletedAt
	case "notes":
		dst.Notes = src.Notes
	default:
		return fmt.Errorf("testutil: unknown appointment column %q", column)
	}
	return nil
}

func (r *MemoryRepo) snapshot() map[uint]models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make(map[uint]models.Appointment, len(r.appointments))
	for id, ap := range r.appointments {
		cp[id] = ap
	}
	return cp
}

func (r *MemoryRepo) restore(snapshot map[uint]models.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments = snapshot
}

var _ domain.Repository = (*MemoryRepo)(nil)
