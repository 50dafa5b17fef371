package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarberID  uint
	ServiceID uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

// CreateAppointment books a slot. It never trusts an earlier slot query:
// the window is re-checked under the barber-day lock before the insert.
type CreateAppointment struct {
	Deps
}

func NewCreateAppointment(d Deps) *CreateAppointment {
	return &CreateAppointment{Deps: d}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	caller identity.Caller,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Data / hora
	// --------------------------------------------------
	date, start, err := parseDateTime(in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Passado / antecedência mínima
	// --------------------------------------------------
	if err := uc.checkNotPast(date, start); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Barbeiro + serviço
	// --------------------------------------------------
	_, service, err := uc.loadBookable(ctx, in.BarberID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	slot := domain.NewTimeSlot(start, service.DurationMinutes)

	// --------------------------------------------------
	// 4. Horário de atendimento + pausa
	// --------------------------------------------------
	if err := uc.checkWorkingHours(ctx, in.BarberID, date, slot); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Conflito + criação na mesma transação
	// --------------------------------------------------
	ap := &models.Appointment{
		UserID:    caller.ID,
		BarberID:  in.BarberID,
		ServiceID: service.ID,
		Date:      date,
		StartTime: slot.Start,
		EndTime:   slot.End,
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
	}

	source, err := uc.reserve(ctx, reservation{
		day:  dayOf(*ap),
		slot: slot,
		write: func(ctx context.Context, tx domain.Repository) error {
			return tx.CreateAppointment(ctx, ap)
		},
	})
	if err != nil {
		if source != "" {
			uc.recordConflict(caller, in, source)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 6. Cache, métricas e auditoria
	// --------------------------------------------------
	uc.invalidateDays(ctx, ap.BarberID, ap.Date)
	metrics.IncAppointmentCreated()

	uc.dispatch(audit.Event{
		UserID:   uintPtr(caller.ID),
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"barberId": ap.BarberID,
			"date":     ap.Date.String(),
			"start":    ap.StartTime.String(),
			"end":      ap.EndTime.String(),
		},
	})

	return ap, nil
}

func (uc *CreateAppointment) recordConflict(caller identity.Caller, in CreateAppointmentInput, source string) {
	metrics.IncBookingConflict(source)

	uc.Log.Info().
		Uint("barber_id", in.BarberID).
		Str("date", in.Date).
		Str("time", in.Time).
		Str("source", source).
		Msg("booking rejected, slot taken")

	uc.dispatch(audit.Event{
		UserID: uintPtr(caller.ID),
		Action: "appointment_conflict",
		Entity: "appointment",
		Metadata: map[string]any{
			"barberId": in.BarberID,
			"date":     in.Date,
			"time":     in.Time,
			"source":   source,
		},
	})
}

// ======================================================
// HELPERS
// ======================================================

func parseDateTime(rawDate, rawTime string) (wallclock.Date, wallclock.Clock, error) {
	date, err := wallclock.ParseDate(rawDate)
	if err != nil {
		return wallclock.Date{}, 0, httperr.ErrBusiness("invalid_date")
	}

	start, err := wallclock.ParseClock(rawTime)
	if err != nil || start >= wallclock.MinutesPerDay {
		return wallclock.Date{}, 0, httperr.ErrBusiness("invalid_time")
	}

	return date, start, nil
}

// checkNotPast rejects past days with past_date and same-day starts
// before the advance cut-off with too_soon.
func (d Deps) checkNotPast(date wallclock.Date, start wallclock.Clock) error {
	notBefore, err := d.Rules.EarliestStart(date)
	if err != nil {
		return err
	}
	if start < notBefore {
		return httperr.ErrBusiness("too_soon")
	}
	return nil
}
