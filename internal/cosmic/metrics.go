package cosmic

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	outcomeOK         = "ok"
	outcomeNotFound   = "not_found"
	outcomeValidation = "validation"
	outcomeError      = "error"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// newMetrics builds the collectors and registers them on reg. A nil reg
// leaves them unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homeplate_cosmic_requests_total",
				Help: "Content store requests by operation, object type and outcome",
			},
			[]string{"op", "type", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "homeplate_cosmic_request_duration_seconds",
				Help:    "Content store request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
	}
}

func (m *metrics) observe(op, objectType string, err error, elapsed time.Duration) {
	m.requests.WithLabelValues(op, objectType, outcome(err)).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func outcome(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrNotFound):
		return outcomeNotFound
	case errors.As(err, &verr):
		return outcomeValidation
	}
	return outcomeError
}
