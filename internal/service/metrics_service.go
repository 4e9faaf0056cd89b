package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/timetable-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for HTTP traffic and
// timetable generation runs.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	generations     *prometheus.CounterVec
	lecturesPlaced  prometheus.Counter
	lecturesUnmet   prometheus.Counter
	generationTime  prometheus.Histogram
	attemptsUsed    prometheus.Histogram
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	generations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_generations_total",
		Help: "Generation runs by outcome (complete or partial)",
	}, []string{"outcome"})

	lecturesPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_lectures_placed_total",
		Help: "Lectures placed across all runs",
	})

	lecturesUnmet := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_lectures_unmet_total",
		Help: "Requested lectures that could not be placed",
	})

	generationTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_generation_duration_seconds",
		Help:    "Duration of a generation run",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})

	attemptsUsed := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_subject_attempts",
		Help:    "Random draws spent per subject",
		Buckets: []float64{1, 5, 25, 100, 250, 500, 999, 1000},
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, generations, lecturesPlaced, lecturesUnmet, generationTime, attemptsUsed, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		generations:     generations,
		lecturesPlaced:  lecturesPlaced,
		lecturesUnmet:   lecturesUnmet,
		generationTime:  generationTime,
		attemptsUsed:    attemptsUsed,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveGeneration records the outcome of one generation run.
func (m *MetricsService) ObserveGeneration(report models.GenerationReport, duration time.Duration) {
	if m == nil {
		return
	}
	_, placed, unmet := report.Totals()
	outcome := "complete"
	if unmet > 0 {
		outcome = "partial"
	}
	m.generations.WithLabelValues(outcome).Inc()
	m.lecturesPlaced.Add(float64(placed))
	m.lecturesUnmet.Add(float64(unmet))
	m.generationTime.Observe(duration.Seconds())
	for _, subject := range report.Subjects {
		if subject.Requested > 0 {
			m.attemptsUsed.Observe(float64(subject.AttemptsUsed))
		}
	}
}
