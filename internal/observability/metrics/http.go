package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	pipelineRunsTotal     *prometheus.CounterVec
	pipelineDuration      *prometheus.HistogramVec
	pipelinePagesUsed     *prometheus.HistogramVec
	candidateMeanScore    *prometheus.HistogramVec
	pipelineFallbackWins  *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sciencebot",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sciencebot",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "sciencebot",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	pipelineRunsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sciencebot",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total pipeline runs by outcome.",
		},
		[]string{"service", "outcome"},
	)
	pipelineDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sciencebot",
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Pipeline execution duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	pipelinePagesUsed := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sciencebot",
			Subsystem: "pipeline",
			Name:      "pages_used",
			Help:      "Distribution of pages grounding each successful answer.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		},
		[]string{"service"},
	)
	candidateMeanScore := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sciencebot",
			Subsystem: "pipeline",
			Name:      "candidate_mean_score",
			Help:      "Mean similarity score per attempted candidate document.",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.75, 0.8, 0.9, 1.0},
		},
		[]string{"service"},
	)
	pipelineFallbackWins := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sciencebot",
			Subsystem: "pipeline",
			Name:      "fallback_wins_total",
			Help:      "Answers produced from a candidate other than the top-ranked one.",
		},
		[]string{"service"},
	)
	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		pipelineRunsTotal,
		pipelineDuration,
		pipelinePagesUsed,
		candidateMeanScore,
		pipelineFallbackWins,
	)

	return &HTTPServerMetrics{
		registry:             registry,
		requestTotal:         requestTotal,
		requestDuration:      requestDuration,
		requestInFlight:      requestInFlight,
		pipelineRunsTotal:    pipelineRunsTotal,
		pipelineDuration:     pipelineDuration,
		pipelinePagesUsed:    pipelinePagesUsed,
		candidateMeanScore:   candidateMeanScore,
		pipelineFallbackWins: pipelineFallbackWins,
	}
}

// PipelineObserver returns the orchestrator-facing view over this registry.
func (m *HTTPServerMetrics) PipelineObserver(service string) *PipelineObserver {
	return &PipelineObserver{
		service:      service,
		meanScore:    m.candidateMeanScore,
		fallbackWins: m.pipelineFallbackWins,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// RecordPipelineRun observes one completed run. Outcome is "success" or
// "failure"; pages only count toward the histogram on success.
func (m *HTTPServerMetrics) RecordPipelineRun(service string, success bool, pages int, duration time.Duration) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.pipelineRunsTotal.WithLabelValues(service, outcome).Inc()
	m.pipelineDuration.WithLabelValues(service).Observe(duration.Seconds())
	if success {
		m.pipelinePagesUsed.WithLabelValues(service).Observe(float64(pages))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}
