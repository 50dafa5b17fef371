package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

// Repository is the persistence contract of the scheduling core.
// Lookups of missing records return a NotFound business error.
type Repository interface {
	// -------- Catalog --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Working hours --------
	GetWeeklySchedule(
		ctx context.Context,
		barberID uint,
	) (WeeklySchedule, error)

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// ListActiveAppointmentsForDay excludes canceled appointments and
	// orders by start time.
	ListActiveAppointmentsForDay(
		ctx context.Context,
		barberID uint,
		date wallclock.Date,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		from wallclock.Date,
		to wallclock.Date,
	) ([]models.Appointment, error)

	ListAppointmentsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	// -------- Appointment (write) --------

	// RunInTx runs fn in one transaction; fn must use the Repository it
	// receives. Any error rolls back every write made through it.
	RunInTx(
		ctx context.Context,
		fn func(ctx context.Context, tx Repository) error,
	) error

	// LockBarberDay serializes writers of one barber's day until the
	// surrounding transaction ends.
	LockBarberDay(
		ctx context.Context,
		barberID uint,
		date wallclock.Date,
	) error

	// CreateAppointment and UpdateAppointment report an overlap rejected
	// by the store as a Conflict business error.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// UpdateAppointment writes only the given columns of ap; every other
	// column keeps its stored value. A missing row is NotFound.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		columns []string,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error
}

// Column groups accepted by Repository.UpdateAppointment.
var (
	PlacementColumns = []string{"barber_id", "service_id", "date", "start_minute", "end_minute"}
	StatusColumns    = []string{"status", "confirmed_at", "cancelled_at", "completed_at"}
	NotesColumns     = []string{"notes"}
)

// SlotCache stores computed day slots. Implementations must make every
// entry written before an Invalidate* call unreachable after it.
type SlotCache interface {
	// Get returns the cached slots and the version to pass to Set on a miss.
	Get(
		ctx context.Context,
		key SlotCacheKey,
	) (slots []TimeSlot, version string, hit bool, err error)

	Set(
		ctx context.Context,
		key SlotCacheKey,
		version string,
		slots []TimeSlot,
	) error

	InvalidateDay(ctx context.Context, barberID uint, date wallclock.Date) error
	InvalidateBarber(ctx context.Context, barberID uint) error
}

type SlotCacheKey struct {
	BarberID        uint
	ServiceID       uint
	DurationMinutes int
	Date            wallclock.Date
}
