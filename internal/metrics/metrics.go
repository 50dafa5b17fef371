package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "barber_booking"

var (
	once sync.Once

	appointmentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_created_total",
			Help:      "Appointments successfully booked.",
		},
	)

	bookingConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Bookings rejected because the window was taken, by detection path.",
		},
		[]string{"source"},
	)

	statusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_status_changes_total",
			Help:      "Appointment status transitions by target status.",
		},
		[]string{"status"},
	)

	slotQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_queries_total",
			Help:      "Availability queries by slot cache result.",
		},
		[]string{"cache"},
	)
)

// Register registers metrics (idempotent).
func Register(reg prometheus.Registerer) {
	once.Do(func() {
		reg.MustRegister(appointmentsCreated, bookingConflicts, statusChanges, slotQueries)
	})
}

func IncAppointmentCreated() {
	appointmentsCreated.Inc()
}

// IncBookingConflict: source is "check" for the pre-write overlap test and
// "constraint" when the store rejected the write.
func IncBookingConflict(source string) {
	bookingConflicts.WithLabelValues(source).Inc()
}

func IncStatusChange(status string) {
	statusChanges.WithLabelValues(status).Inc()
}

// IncSlotQuery: result is "hit", "miss" or "off".
func IncSlotQuery(result string) {
	slotQueries.WithLabelValues(result).Inc()
}
