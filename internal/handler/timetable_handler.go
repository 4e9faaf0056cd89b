package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/service"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	"github.com/noah-isme/timetable-api/pkg/middleware/requestid"
	"github.com/noah-isme/timetable-api/pkg/response"
)

const generationHeader = "X-Generation-ID"

type timetableGenerator interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*service.TimetableResult, error)
}

type slotBuilder interface {
	Build(ctx context.Context, req dto.SlotSettingsRequest) ([]string, error)
}

type timetableExporter interface {
	Export(ctx context.Context, query dto.ExportTimetableQuery, req dto.GenerateTimetableRequest) (*service.ExportResult, error)
}

// TimetableHandler exposes timetable generation endpoints.
type TimetableHandler struct {
	timetables timetableGenerator
	slots      slotBuilder
	exports    timetableExporter
	logger     *zap.Logger
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(timetables *service.TimetableService, slots *service.SlotService, exports *service.ExportService, logger *zap.Logger) *TimetableHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableHandler{timetables: timetables, slots: slots, exports: exports, logger: logger}
}

// Generate godoc
// @Summary Generate a weekly timetable
// @Description Places each subject's weekly lectures on (day, slot, room) without faculty or room double-booking. Demand that cannot be placed is dropped silently.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Subjects and optional days/slots"
// @Success 200 {array} models.ScheduledLecture
// @Failure 500 {object} response.Failure
// @Router /generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	result, ok := h.generate(c)
	if !ok {
		return
	}
	response.Raw(c, http.StatusOK, result.Lectures)
}

// GenerateAlias godoc
// @Summary Generate a weekly timetable (proxy-compatible)
// @Description Same as /generate, wrapped the way the legacy web proxy answered.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Subjects and optional days/slots"
// @Success 200 {object} dto.GenerateTimetableAliasResponse
// @Failure 500 {object} response.Failure
// @Router /api/ai/generate [post]
func (h *TimetableHandler) GenerateAlias(c *gin.Context) {
	result, ok := h.generate(c)
	if !ok {
		return
	}
	response.Raw(c, http.StatusOK, dto.GenerateTimetableAliasResponse{
		Message:   "Timetable generated",
		Timetable: result.Lectures,
	})
}

// Slots godoc
// @Summary Build slot labels from institution settings
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.SlotSettingsRequest true "Working day settings"
// @Success 200 {object} response.Envelope
// @Router /api/v1/timetable/slots [post]
func (h *TimetableHandler) Slots(c *gin.Context) {
	var req dto.SlotSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot settings payload"))
		return
	}
	labels, err := h.slots.Build(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, labels, map[string]interface{}{"count": len(labels)})
}

// Export godoc
// @Summary Generate a timetable and download it as CSV or PDF
// @Tags Timetable
// @Accept json
// @Produce text/csv,application/pdf
// @Param format query string true "csv or pdf"
// @Param title query string false "Document title"
// @Param payload body dto.GenerateTimetableRequest true "Subjects and optional days/slots"
// @Success 200 {file} file
// @Router /api/v1/timetable/export [post]
func (h *TimetableHandler) Export(c *gin.Context) {
	var query dto.ExportTimetableQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export query"))
		return
	}
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	result, err := h.exports.Export(c.Request.Context(), query, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header(generationHeader, result.GenerationID)
	response.Attachment(c, result.ContentType, result.Filename, result.Payload)
}

func (h *TimetableHandler) generate(c *gin.Context) (*service.TimetableResult, bool) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return nil, false
	}
	result, err := h.timetables.Generate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	c.Header(generationHeader, result.GenerationID)
	return result, true
}

// fail logs the cause and answers with the generic failure body.
func (h *TimetableHandler) fail(c *gin.Context, err error) {
	h.logger.Error("timetable generation failed",
		zap.String("request_id", requestid.Value(c)),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	response.GenerationFailed(c, err)
}
