package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	"github.com/noah-isme/timetable-api/pkg/export"
)

const defaultExportTitle = "Generated Timetable"

var exportHeaders = []string{"Day", "Slot", "Room", "Subject", "Faculty"}

type timetableGenerator interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*TimetableResult, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportResult is a rendered timetable ready for download.
type ExportResult struct {
	GenerationID string
	Format       export.Format
	Filename     string
	ContentType  string
	Payload      []byte
}

// ExportService generates a timetable and renders it as CSV or PDF.
type ExportService struct {
	timetables timetableGenerator
	csv        csvRenderer
	pdf        pdfRenderer
	validator  *validator.Validate
	logger     *zap.Logger
	enabled    bool
}

// NewExportService constructs an ExportService.
func NewExportService(timetables timetableGenerator, validate *validator.Validate, logger *zap.Logger, enabled bool, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		timetables: timetables,
		csv:        csv,
		pdf:        pdf,
		validator:  validate,
		logger:     logger,
		enabled:    enabled,
	}
}

// Enabled reports whether exports are served.
func (s *ExportService) Enabled() bool {
	return s != nil && s.enabled && s.timetables != nil
}

// Export generates a timetable for req and renders it in the queried format.
func (s *ExportService) Export(ctx context.Context, query dto.ExportTimetableQuery, req dto.GenerateTimetableRequest) (*ExportResult, error) {
	if !s.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrFeatureDisabled, "timetable exports are disabled")
	}
	query.Format = strings.ToLower(strings.TrimSpace(query.Format))
	if err := s.validator.StructCtx(ctx, query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnsupportedMedia.Code, appErrors.ErrUnsupportedMedia.Status, "format must be csv or pdf")
	}

	result, err := s.timetables.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	format := export.Format(query.Format)
	dataset := buildTimetableDataset(result, query.Title)
	var payload []byte
	switch format {
	case export.FormatCSV:
		payload, err = s.csv.Render(dataset)
	case export.FormatPDF:
		payload, err = s.pdf.Render(dataset)
	default:
		err = fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render timetable export")
	}

	s.logger.Info("timetable exported",
		zap.String("generation_id", result.GenerationID),
		zap.String("format", string(format)),
		zap.Int("rows", len(dataset.Rows)),
		zap.Int("bytes", len(payload)),
	)
	return &ExportResult{
		GenerationID: result.GenerationID,
		Format:       format,
		Filename:     format.Filename("timetable-" + result.GenerationID),
		ContentType:  format.ContentType(),
		Payload:      payload,
	}, nil
}

func buildTimetableDataset(result *TimetableResult, title string) export.Dataset {
	if strings.TrimSpace(title) == "" {
		title = defaultExportTitle
	}
	rows := make([][]string, 0, len(result.Lectures))
	for _, lecture := range result.Lectures {
		rows = append(rows, lectureRow(lecture))
	}
	return export.Dataset{
		Title:    title,
		Subtitle: "Generation " + result.GenerationID,
		Headers:  exportHeaders,
		Rows:     rows,
	}
}

func lectureRow(lecture models.ScheduledLecture) []string {
	return []string{lecture.Day, lecture.Slot, lecture.Room, lecture.SubjectName, lecture.FacultyName}
}
