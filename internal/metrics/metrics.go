package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "intervai"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"service", "method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service", "method", "route", "status"})

	httpInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_in_flight_requests",
		Help:      "Current number of in-flight HTTP requests",
	}, []string{"service"})

	sessionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "call_state_transitions_total",
		Help:      "Call lifecycle transitions by target state",
	}, []string{"mode", "state"})

	voiceErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "voice_errors_total",
		Help:      "Voice session errors by kind",
	}, []string{"kind"})

	feedbackOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_generated_total",
		Help:      "Feedback pipeline runs by path (generated, fallback, failed)",
	}, []string{"path"})

	llmLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "llm_request_duration_seconds",
		Help:      "Duration of generative model calls",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
	}, []string{"provider", "task", "outcome"})

	draftsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "draft_interviews_swept_total",
		Help:      "Stale draft interviews deleted by the sweeper",
	})
)

func RecordTransition(mode, state string) {
	sessionTransitions.WithLabelValues(mode, state).Inc()
}

func RecordVoiceError(kind string) {
	voiceErrors.WithLabelValues(kind).Inc()
}

func RecordFeedback(path string) {
	feedbackOutcomes.WithLabelValues(path).Inc()
}

func ObserveLLM(provider, task string, err error, d time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	llmLatency.WithLabelValues(provider, task, outcome).Observe(d.Seconds())
}

func AddDraftsSwept(n int64) {
	draftsSwept.Add(float64(n))
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := r.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, fmt.Errorf("metrics: underlying ResponseWriter does not support hijacking")
}

// Middleware records request metrics. Routes are labelled by their chi pattern so path
// parameters do not explode cardinality.
func Middleware(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			httpInFlight.WithLabelValues(service).Inc()
			defer httpInFlight.WithLabelValues(service).Dec()

			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			labels := prometheus.Labels{
				"service": service,
				"method":  r.Method,
				"route":   route,
				"status":  strconv.Itoa(rec.status),
			}
			httpRequests.With(labels).Inc()
			httpLatency.With(labels).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
