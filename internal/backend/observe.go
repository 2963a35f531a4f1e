package backend

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/neexbeast/travelviz/internal/metrics"
)

// Observer records backend call metrics. A nil *Observer records nothing.
type Observer struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	retries  *prometheus.CounterVec
}

// NewObserver registers backend metrics on reg. A nil reg yields a nil Observer.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	if reg == nil {
		return nil, nil
	}
	o := &Observer{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Backend requests by endpoint and outcome.",
		}, []string{"endpoint", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Backend request duration in seconds, retries included.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "backend",
			Name:      "retries_total",
			Help:      "Backend request retries after network failures.",
		}, []string{"endpoint"}),
	}
	if err := metrics.RegisterOrReuse(reg, &o.requests); err != nil {
		return nil, err
	}
	if err := metrics.RegisterOrReuse(reg, &o.duration); err != nil {
		return nil, err
	}
	if err := metrics.RegisterOrReuse(reg, &o.retries); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Observer) observe(endpoint string, start time.Time, err error) {
	if o == nil {
		return
	}
	o.requests.WithLabelValues(endpoint, outcome(err)).Inc()
	o.duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func (o *Observer) retry(endpoint string) {
	if o == nil {
		return
	}
	o.retries.WithLabelValues(endpoint).Inc()
}

// outcome is the status label: the HTTP code, or the failure class.
func outcome(err error) string {
	var (
		he *HTTPError
		ne *NetworkError
		pe *ParseError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &he):
		return strconv.Itoa(he.StatusCode)
	case errors.As(err, &ne):
		return "network_error"
	case errors.As(err, &pe):
		return "parse_error"
	default:
		return "error"
	}
}
