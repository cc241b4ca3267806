package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics is
// safe to call so wiring stays optional in tests.
type Metrics struct {
	SignIns         prometheus.Counter
	SignUps         prometheus.Counter
	SignOuts        prometheus.Counter
	AuthFailures    prometheus.Counter
	SessionsRevoked prometheus.Counter
	ProviderLatency *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers metrics on a caller-supplied registerer so tests can use
// throwaway registries.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SignIns: factory.NewCounter(prometheus.CounterOpts{
			Name: "testapp_sign_ins_total",
			Help: "Total number of successful sign-ins",
		}),
		SignUps: factory.NewCounter(prometheus.CounterOpts{
			Name: "testapp_sign_ups_total",
			Help: "Total number of accounts created",
		}),
		SignOuts: factory.NewCounter(prometheus.CounterOpts{
			Name: "testapp_sign_outs_total",
			Help: "Total number of sign-outs",
		}),
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "testapp_auth_failures_total",
			Help: "Total number of rejected sign-in and sign-up attempts",
		}),
		SessionsRevoked: factory.NewCounter(prometheus.CounterOpts{
			Name: "testapp_sessions_revoked_total",
			Help: "Total number of sessions revoked from the dashboard",
		}),
		ProviderLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "testapp_provider_request_duration_seconds",
			Help:    "Duration of identity provider calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncSignIns() {
	if m != nil {
		m.SignIns.Inc()
	}
}

func (m *Metrics) IncSignUps() {
	if m != nil {
		m.SignUps.Inc()
	}
}

func (m *Metrics) IncSignOuts() {
	if m != nil {
		m.SignOuts.Inc()
	}
}

func (m *Metrics) IncAuthFailures() {
	if m != nil {
		m.AuthFailures.Inc()
	}
}

func (m *Metrics) IncSessionsRevoked() {
	if m != nil {
		m.SessionsRevoked.Inc()
	}
}

func (m *Metrics) ObserveProviderRequest(operation string, d time.Duration) {
	if m != nil {
		m.ProviderLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}
