package appointment

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

const (
	joao    uint = 1
	pedro   uint = 2
	lucas   uint = 3 // no working hours
	retired uint = 5

	haircut     uint = 10 // 30 min
	fullService uint = 11 // 60 min
	retiredCut  uint = 12
	foreignCut  uint = 13 // another barbershop
)

var (
	loc = time.FixedZone("BRT", -3*60*60)

	// Monday 2024-06-10 08:00 local
	fixedNow = time.Date(2024, time.June, 10, 8, 0, 0, 0, loc)

	monday    = "2024-06-10"
	tuesday   = "2024-06-11"
	sunday    = "2024-06-16"
	yesterday = "2024-06-09"

	customer = identity.Caller{ID: 100, Role: identity.RoleCustomer}
	stranger = identity.Caller{ID: 101, Role: identity.RoleCustomer}
	admin    = identity.Caller{ID: 1, Role: identity.RoleAdmin}
)

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAuditor) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

type fixture struct {
	repo  *testutil.MemoryRepo
	audit *recordingAuditor
	deps  Deps
	now   time.Time
}

func weekdayHours(barber uint, start, end string) []models.WorkingHours {
	rows := []models.WorkingHours{}
	for wd := time.Monday; wd <= time.Saturday; wd++ {
		rows = append(rows, models.WorkingHours{
			BarberID:  barber,
			Weekday:   int(wd),
			StartTime: wallclock.MustClock(start),
			EndTime:   wallclock.MustClock(end),
			IsWorking: true,
		})
	}
	rows = append(rows, models.WorkingHours{BarberID: barber, Weekday: int(time.Sunday)})
	return rows
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := testutil.NewMemoryRepo()
	repo.AddBarber(models.Barber{ID: joao, BarbershopID: 1, Name: "João", Active: true})
	repo.AddBarber(models.Barber{ID: pedro, BarbershopID: 1, Name: "Pedro", Active: true})
	repo.AddBarber(models.Barber{ID: lucas, BarbershopID: 1, Name: "Lucas", Active: true})
	repo.AddBarber(models.Barber{ID: retired, BarbershopID: 1, Name: "Ex", Active: false})

	repo.AddService(models.Service{ID: haircut, BarbershopID: 1, Name: "Corte", DurationMinutes: 30, Active: true})
	repo.AddService(models.Service{ID: fullService, BarbershopID: 1, Name: "Corte + Barba", DurationMinutes: 60, Active: true})
	repo.AddService(models.Service{ID: retiredCut, BarbershopID: 1, Name: "Antigo", DurationMinutes: 30, Active: false})
	repo.AddService(models.Service{ID: foreignCut, BarbershopID: 2, Name: "Outro", DurationMinutes: 30, Active: true})

	repo.SetWorkingHours(joao, weekdayHours(joao, "09:00", "21:00")...)
	repo.SetWorkingHours(pedro, weekdayHours(pedro, "09:00", "18:00")...)

	f := &fixture{
		repo:  repo,
		audit: &recordingAuditor{},
		now:   fixedNow,
	}
	f.deps = Deps{
		Repo:  repo,
		Audit: f.audit,
		Rules: Rules{
			Location: loc,
			Now:      func() time.Time { return f.now },
		},
		Log: zerolog.New(io.Discard),
	}
	return f
}

func (f *fixture) seed(id uint, user uint, day, start, end string, status domain.Status) models.Appointment {
	d, _ := wallclock.ParseDate(day)
	return f.repo.AddAppointment(models.Appointment{
		ID:        id,
		UserID:    user,
		BarberID:  joao,
		ServiceID: haircut,
		Date:      d,
		StartTime: wallclock.MustClock(start),
		EndTime:   wallclock.MustClock(end),
		Status:    string(status),
	})
}

func mustDate(s string) wallclock.Date {
	d, err := wallclock.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func slotStarts(slots []domain.TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start.String())
	}
	return out
}

func assertKind(t *testing.T, err error, kind httperr.Kind, code string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Equal(t, kind, httperr.KindOf(err), "kind of %v", err)
		assert.Equal(t, code, httperr.CodeOf(err))
	}
}

func ptr[T any](v T) *T {
	return &v
}

// assertNoOverlaps checks that no two occupying appointments of a barber
// share any minute of the same day.
func assertNoOverlaps(t *testing.T, apps []models.Appointment) {
	t.Helper()
	for i := range apps {
		for j := i + 1; j < len(apps); j++ {
			a, b := apps[i], apps[j]
			if a.BarberID != b.BarberID || !a.Date.Equal(b.Date) {
				continue
			}
			if !domain.Status(a.Status).Occupies() || !domain.Status(b.Status).Occupies() {
				continue
			}
			assert.False(t, domain.SlotOf(a).Overlaps(domain.SlotOf(b)),
				"appointments %d and %d overlap", a.ID, b.ID)
		}
	}
}
