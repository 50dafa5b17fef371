package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/wallclock"
)

type WorkingHoursHandler struct {
	db    *gorm.DB
	cache domain.SlotCache
	log   zerolog.Logger
}

// NewWorkingHoursHandler takes an optional slot cache to invalidate on writes.
func NewWorkingHoursHandler(db *gorm.DB, cache domain.SlotCache, log zerolog.Logger) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, cache: cache, log: log}
}

type WorkingDayConfig struct {
	Weekday    *int             `json:"weekday" binding:"required,min=0,max=6"`
	IsWorking  bool             `json:"isWorking"`
	StartTime  wallclock.Clock  `json:"startTime"`
	EndTime    wallclock.Clock  `json:"endTime"`
	BreakStart *wallclock.Clock `json:"breakStart"`
	BreakEnd   *wallclock.Clock `json:"breakEnd"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,max=7,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var hours []models.WorkingHours
	if err := h.db.WithContext(c.Request.Context()).
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao buscar horários.")
		return
	}

	httpresp.List(c, hours)
}

// Update replaces the whole weekly schedule. Weekdays left out become
// days off.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barberID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	rows, err := scheduleRows(barberID, req.Days)
	if err != nil {
		httperr.BadRequest(c, "invalid_working_hours", "Horário de trabalho inválido: "+err.Error())
		return
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var barber models.Barber
		if err := tx.First(&barber, barberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("barber_not_found")
			}
			return err
		}

		if err := tx.Where("barber_id = ?", barberID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if h.cache != nil {
		if err := h.cache.InvalidateBarber(c.Request.Context(), barberID); err != nil {
			h.log.Error().Err(err).Uint("barber_id", barberID).Msg("slot cache invalidation failed")
		}
	}

	httpresp.List(c, rows)
}

// scheduleRows validates each day and rejects duplicated weekdays.
func scheduleRows(barberID uint, days []WorkingDayConfig) ([]models.WorkingHours, error) {
	seen := map[int]bool{}
	rows := make([]models.WorkingHours, 0, len(days))

	for _, d := range days {
		weekday := *d.Weekday
		if seen[weekday] {
			return nil, fmt.Errorf("dia da semana %d repetido", weekday)
		}
		seen[weekday] = true

		hours := domain.DayHours{
			IsWorking:  d.IsWorking,
			Start:      d.StartTime,
			End:        d.EndTime,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
		}
		if err := hours.Validate(); err != nil {
			return nil, fmt.Errorf("dia %d: %w", weekday, err)
		}

		rows = append(rows, models.WorkingHours{
			BarberID:   barberID,
			Weekday:    weekday,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
			IsWorking:  d.IsWorking,
		})
	}

	return rows, nil
}
