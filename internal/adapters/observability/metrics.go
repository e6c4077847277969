package observability

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"listing_portal/internal/domain"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portal", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portal", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portal", Name: "external_requests_total", Help: "Outbound requests."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portal", Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	FetchOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portal", Name: "fetch_outcomes_total", Help: "Controller fetch results."},
		[]string{"controller", "outcome"}, // outcome: ready|error|stale
	)
	// Stale fetches are timed too; a slow superseded request still held a
	// backend connection.
	FetchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portal", Subsystem: "controller", Name: "fetch_duration_seconds",
			Help:    "Time from a controller entering Loading to its result being committed or dropped.",
			Buckets: []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"controller", "outcome"},
	)
	FetchesInFlight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: "portal", Subsystem: "controller", Name: "fetches_in_flight", Help: "Controller fetches awaiting the backend."},
		[]string{"controller"},
	)
)

// Serve exposes reg on addr in the background. Empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		HTTPRequests, HTTPLatency,
		ExternalRequests, ExternalLatency,
		FetchOutcomes, FetchLatency, FetchesInFlight,
	)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

// StartFetch marks a controller fetch as in flight. The returned func must
// be called once with the outcome.
func StartFetch(controller string) (done func(outcome string)) {
	start := time.Now()
	inFlight := FetchesInFlight.WithLabelValues(controller)
	inFlight.Inc()
	return func(outcome string) {
		inFlight.Dec()
		ObserveFetch(controller, outcome, time.Since(start))
	}
}

func ObserveFetch(controller, outcome string, dur time.Duration) {
	FetchOutcomes.WithLabelValues(controller, outcome).Inc()
	FetchLatency.WithLabelValues(controller, outcome).Observe(dur.Seconds())
}

// LabelErr maps an error onto the small label set used by the fetch counters.
func LabelErr(err error) string {
	var he *domain.HTTPError
	switch {
	case err == nil:
		return "none"
	case errors.As(err, &he):
		return "http_" + strconv.Itoa(he.Status)
	case errors.Is(err, domain.ErrParse):
		return "parse"
	case errors.Is(err, domain.ErrNetwork):
		return "network"
	}
	return fmt.Sprintf("%T", err)
}
