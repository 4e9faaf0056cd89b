package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

// TimetableServiceConfig governs request defaulting.
type TimetableServiceConfig struct {
	DefaultDays  []string
	DefaultSlots []string
	MaxSubjects  int
	// Seeder returns the seed of each run's random source. Defaults to a
	// draw from the global source.
	Seeder func() int64
}

// TimetableResult is a generated timetable together with its run id.
type TimetableResult struct {
	GenerationID string
	Lectures     []models.ScheduledLecture
}

// TimetableService turns generate requests into generator runs.
type TimetableService struct {
	generator *TimetableGenerator
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       TimetableServiceConfig
}

// NewTimetableService wires the generator with logging and metrics.
func NewTimetableService(generator *TimetableGenerator, metrics *MetricsService, logger *zap.Logger, cfg TimetableServiceConfig) *TimetableService {
	if generator == nil {
		generator = NewTimetableGenerator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(cfg.DefaultDays) == 0 {
		cfg.DefaultDays = models.DefaultDays
	}
	if len(cfg.DefaultSlots) == 0 {
		cfg.DefaultSlots = models.DefaultSlots
	}
	if cfg.MaxSubjects <= 0 {
		cfg.MaxSubjects = 128
	}
	if cfg.Seeder == nil {
		cfg.Seeder = rand.Int63
	}
	return &TimetableService{
		generator: generator,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
	}
}

// Generate defaults the request and runs the generator. Under-scheduled
// subjects are not an error; they are only logged and counted.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*TimetableResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "request cancelled")
	}
	if len(req.Subjects) > s.cfg.MaxSubjects {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("subjects exceeds supported limit of %d", s.cfg.MaxSubjects))
	}

	subjects := toSubjectDemands(req.Subjects)
	days := req.Days
	if days == nil {
		days = s.cfg.DefaultDays
	}
	slots := req.Slots
	if slots == nil {
		slots = s.cfg.DefaultSlots
	}

	generationID := uuid.NewString()
	start := time.Now()
	report := s.generator.Generate(subjects, days, slots, rand.New(rand.NewSource(s.cfg.Seeder())))
	duration := time.Since(start)
	s.metrics.ObserveGeneration(report, duration)
	s.logReport(generationID, report, len(days), len(slots), duration)

	return &TimetableResult{GenerationID: generationID, Lectures: report.Lectures}, nil
}

func (s *TimetableService) logReport(generationID string, report models.GenerationReport, days, slots int, duration time.Duration) {
	requested, placed, unmet := report.Totals()
	s.logger.Info("timetable generated",
		zap.String("generation_id", generationID),
		zap.Int("subjects", len(report.Subjects)),
		zap.Int("days", days),
		zap.Int("slots", slots),
		zap.Int("requested", requested),
		zap.Int("placed", placed),
		zap.Int("unmet", unmet),
		zap.Duration("duration", duration),
	)
	if unmet == 0 {
		return
	}
	for _, subject := range report.Subjects {
		if subject.Unmet() == 0 {
			continue
		}
		s.logger.Warn("subject under-scheduled",
			zap.String("generation_id", generationID),
			zap.String("subject", subject.SubjectName),
			zap.String("faculty", subject.FacultyName),
			zap.Int("requested", subject.Requested),
			zap.Int("placed", subject.Placed),
			zap.Int("attempts", subject.AttemptsUsed),
		)
	}
}

func toSubjectDemands(items []dto.SubjectDemandRequest) []models.SubjectDemand {
	subjects := make([]models.SubjectDemand, 0, len(items))
	for _, item := range items {
		lectures := 1
		if item.LecturesPerWeek != nil {
			lectures = *item.LecturesPerWeek
		}
		subjects = append(subjects, models.SubjectDemand{
			SubjectName:     item.Subject,
			FacultyName:     item.Faculty,
			LecturesPerWeek: lectures,
		})
	}
	return subjects
}
