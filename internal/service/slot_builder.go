package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/dto"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

// Institution defaults for a working day.
const (
	defaultStartTime      = "09:00"
	defaultSlotDuration   = 60
	defaultSlotsPerDay    = 6
	defaultBreakAfterSlot = 3
	defaultBreakDuration  = 15
)

// SlotSettings describes a working day in minutes.
type SlotSettings struct {
	StartMinute    int
	SlotDuration   int
	SlotsPerDay    int
	BreakAfterSlot int
	BreakDuration  int
}

// BuildSlotLabels renders consecutive slot labels such as "9:00AM-10:00AM".
// A break of BreakDuration minutes follows slot number BreakAfterSlot.
func BuildSlotLabels(settings SlotSettings) []string {
	labels := make([]string, 0, settings.SlotsPerDay)
	current := settings.StartMinute
	for i := 1; i <= settings.SlotsPerDay; i++ {
		start := current
		current += settings.SlotDuration
		labels = append(labels, fmt.Sprintf("%s-%s", clockLabel(start), clockLabel(current)))
		if i == settings.BreakAfterSlot {
			current += settings.BreakDuration
		}
	}
	return labels
}

// clockLabel formats minutes since midnight on a 12-hour clock. Times past
// midnight wrap around.
func clockLabel(minutes int) string {
	minutes %= 24 * 60
	h, m := minutes/60, minutes%60
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	display := h
	switch {
	case h > 12:
		display = h - 12
	case h == 0:
		display = 12
	}
	return fmt.Sprintf("%d:%02d%s", display, m, period)
}

// SlotService validates institution settings and builds slot labels.
type SlotService struct {
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSlotService constructs a SlotService.
func NewSlotService(validate *validator.Validate, logger *zap.Logger) *SlotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotService{validator: validate, logger: logger}
}

// Build validates the request, applies defaults and returns the slot labels.
func (s *SlotService) Build(ctx context.Context, req dto.SlotSettingsRequest) ([]string, error) {
	if err := s.validator.StructCtx(ctx, req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot settings")
	}
	settings, err := settingsFromRequest(req)
	if err != nil {
		return nil, err
	}
	labels := BuildSlotLabels(settings)
	s.logger.Debug("slot labels built", zap.Int("slots", len(labels)), zap.Strings("labels", labels))
	return labels, nil
}

func settingsFromRequest(req dto.SlotSettingsRequest) (SlotSettings, error) {
	startRaw := req.StartTime
	if startRaw == "" {
		startRaw = defaultStartTime
	}
	start, err := time.Parse("15:04", startRaw)
	if err != nil {
		return SlotSettings{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "startTime must be HH:MM")
	}

	settings := SlotSettings{
		StartMinute:    start.Hour()*60 + start.Minute(),
		SlotDuration:   req.SlotDuration,
		SlotsPerDay:    req.SlotsPerDay,
		BreakAfterSlot: defaultBreakAfterSlot,
		BreakDuration:  defaultBreakDuration,
	}
	if settings.SlotDuration == 0 {
		settings.SlotDuration = defaultSlotDuration
	}
	if settings.SlotsPerDay == 0 {
		settings.SlotsPerDay = defaultSlotsPerDay
	}
	if req.BreakAfterSlot != nil {
		settings.BreakAfterSlot = *req.BreakAfterSlot
	}
	if req.BreakDuration != nil {
		settings.BreakDuration = *req.BreakDuration
	}
	return settings, nil
}
