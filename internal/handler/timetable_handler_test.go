package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/service"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	"github.com/noah-isme/timetable-api/pkg/export"
)

type timetableGeneratorMock struct {
	captured dto.GenerateTimetableRequest
	result   *service.TimetableResult
	err      error
}

func (m *timetableGeneratorMock) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*service.TimetableResult, error) {
	m.captured = req
	return m.result, m.err
}

type slotBuilderMock struct {
	captured dto.SlotSettingsRequest
	err      error
}

func (m *slotBuilderMock) Build(ctx context.Context, req dto.SlotSettingsRequest) ([]string, error) {
	m.captured = req
	if m.err != nil {
		return nil, m.err
	}
	return []string{"9:00AM-10:00AM"}, nil
}

type timetableExporterMock struct {
	query dto.ExportTimetableQuery
	err   error
}

func (m *timetableExporterMock) Export(ctx context.Context, query dto.ExportTimetableQuery, req dto.GenerateTimetableRequest) (*service.ExportResult, error) {
	m.query = query
	if m.err != nil {
		return nil, m.err
	}
	return &service.ExportResult{
		GenerationID: "gen-9",
		Format:       export.FormatCSV,
		Filename:     "timetable-gen-9.csv",
		ContentType:  export.FormatCSV.ContentType(),
		Payload:      []byte("Day,Slot,Room,Subject,Faculty\n"),
	}, nil
}

func newTestContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func sampleResult() *service.TimetableResult {
	return &service.TimetableResult{
		GenerationID: "gen-1",
		Lectures: []models.ScheduledLecture{
			{SubjectName: "Maths", FacultyName: "Rao", Room: "R1", Day: "Monday", Slot: "9-10"},
		},
	}
}

func TestTimetableGenerateSuccess(t *testing.T) {
	mock := &timetableGeneratorMock{result: sampleResult()}
	h := &TimetableHandler{timetables: mock, logger: zap.NewNop()}
	c, w := newTestContext(http.MethodPost, "/generate", []byte(`{"subjects":[{"subject":"Maths","faculty":"Rao","lecturesPerWeek":2},{"subject":"Art","faculty":"Sen","lecturesPerWeek":null}],"slots":[]}`))

	h.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"subject":"Maths","faculty":"Rao","room":"R1","day":"Monday","slot":"9-10"}]`, w.Body.String())
	assert.Equal(t, "gen-1", w.Header().Get(generationHeader))

	require.Len(t, mock.captured.Subjects, 2)
	require.NotNil(t, mock.captured.Subjects[0].LecturesPerWeek)
	assert.Equal(t, 2, *mock.captured.Subjects[0].LecturesPerWeek)
	assert.Nil(t, mock.captured.Subjects[1].LecturesPerWeek)
	assert.Nil(t, mock.captured.Days)
	assert.NotNil(t, mock.captured.Slots)
	assert.Empty(t, mock.captured.Slots)
}

func TestTimetableGenerateEmptyResultIsArray(t *testing.T) {
	mock := &timetableGeneratorMock{result: &service.TimetableResult{GenerationID: "gen-2", Lectures: []models.ScheduledLecture{}}}
	h := &TimetableHandler{timetables: mock, logger: zap.NewNop()}
	c, w := newTestContext(http.MethodPost, "/generate", []byte(`{}`))

	h.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.Nil(t, mock.captured.Subjects)
}

func TestTimetableGenerateMalformedPayload(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := &TimetableHandler{timetables: &timetableGeneratorMock{}, logger: zap.New(core)}

	for _, body := range []string{`{"subjects":`, `{"subjects":[{"subject":"Maths","lecturesPerWeek":"two"}]}`, ``, `[1,2]`} {
		c, w := newTestContext(http.MethodPost, "/generate", []byte(body))
		h.Generate(c)

		require.Equal(t, http.StatusInternalServerError, w.Code, body)
		assert.JSONEq(t, `{"error":"AI generation failed"}`, w.Body.String())
	}
	assert.Equal(t, 4, logs.Len())
}

func TestTimetableGenerateServiceErrorIsHidden(t *testing.T) {
	mock := &timetableGeneratorMock{err: appErrors.Clone(appErrors.ErrValidation, "subjects exceeds supported limit of 128")}
	h := &TimetableHandler{timetables: mock, logger: zap.NewNop()}
	c, w := newTestContext(http.MethodPost, "/generate", []byte(`{"subjects":[]}`))

	h.Generate(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "limit")
}

func TestTimetableGenerateAlias(t *testing.T) {
	h := &TimetableHandler{timetables: &timetableGeneratorMock{result: sampleResult()}, logger: zap.NewNop()}
	c, w := newTestContext(http.MethodPost, "/api/ai/generate", []byte(`{"subjects":[]}`))

	h.GenerateAlias(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Timetable generated","timetable":[{"subject":"Maths","faculty":"Rao","room":"R1","day":"Monday","slot":"9-10"}]}`, w.Body.String())
}

func TestTimetableSlots(t *testing.T) {
	mock := &slotBuilderMock{}
	h := &TimetableHandler{slots: mock, logger: zap.NewNop()}
	c, w := newTestContext(http.MethodPost, "/api/v1/timetable/slots", []byte(`{"startTime":"09:00","slotsPerDay":1,"breakDuration":0}`))

	h.Slots(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":["9:00AM-10:00AM"],"meta":{"count":1}}`, w.Body.String())
	assert.Equal(t, 1, mock.captured.SlotsPerDay)
	require.NotNil(t, mock.captured.BreakDuration)
	assert.Equal(t, 0, *mock.captured.BreakDuration)
	assert.Nil(t, mock.captured.BreakAfterSlot)
}

func TestTimetableSlotsValidation(t *testing.T) {
	h := &TimetableHandler{slots: &slotBuilderMock{err: appErrors.Clone(appErrors.ErrValidation, "invalid slot settings")}, logger: zap.NewNop()}
	c, w := newTestContext(http.MethodPost, "/api/v1/timetable/slots", []byte(`{"slotsPerDay":99}`))

	h.Slots(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"VALIDATION_ERROR"`)
}

func TestTimetableExport(t *testing.T) {
	mock := &timetableExporterMock{}
	h := &TimetableHandler{exports: mock, logger: zap.NewNop()}
	c, w := newTestContext(http.MethodPost, "/api/v1/timetable/export?format=csv&title=Spring", []byte(`{"subjects":[]}`))

	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", mock.query.Format)
	assert.Equal(t, "Spring", mock.query.Title)
	assert.Equal(t, `attachment; filename="timetable-gen-9.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "gen-9", w.Header().Get(generationHeader))
	assert.Equal(t, "Day,Slot,Room,Subject,Faculty\n", w.Body.String())
}

func TestTimetableExportErrors(t *testing.T) {
	h := &TimetableHandler{exports: &timetableExporterMock{err: appErrors.Clone(appErrors.ErrFeatureDisabled, "timetable exports are disabled")}, logger: zap.NewNop()}

	c, w := newTestContext(http.MethodPost, "/api/v1/timetable/export?format=csv", []byte(`{}`))
	h.Export(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	c, w = newTestContext(http.MethodPost, "/api/v1/timetable/export?format=csv", []byte(`{"subjects":`))
	h.Export(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid export payload")
}

func TestTimetableHandlerFailLogsCause(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := &TimetableHandler{timetables: &timetableGeneratorMock{err: errors.New("random source exploded")}, logger: zap.New(core)}
	c, w := newTestContext(http.MethodPost, "/generate", []byte(`{}`))

	h.Generate(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].ContextMap()["error"], "random source exploded")
}
