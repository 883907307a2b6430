package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates the Prometheus collectors exposed by the service.
type Metrics struct {
	registry *prometheus.Registry

	OrdersCreated       *prometheus.CounterVec
	OrdersExpired       prometheus.Counter
	Verifications       *prometheus.CounterVec
	SignatureFailures   prometheus.Counter
	ReconciliationFlags *prometheus.CounterVec
	GatewayLatency      *prometheus.HistogramVec
	HTTPRequests        *prometheus.CounterVec
}

// New builds and registers all collectors on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		OrdersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostel_checkout_orders_created_total",
			Help: "Checkout orders created, labeled by payment subject.",
		}, []string{"subject"}),
		OrdersExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hostel_checkout_orders_expired_total",
			Help: "Checkout orders expired by the sweep job.",
		}),
		Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostel_checkout_verifications_total",
			Help: "Payment verification attempts, labeled by result.",
		}, []string{"result"}),
		SignatureFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hostel_checkout_signature_failures_total",
			Help: "Payment callbacks rejected for an invalid signature.",
		}),
		ReconciliationFlags: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostel_checkout_reconciliation_flags_total",
			Help: "Reconciliation flags raised, labeled by reason.",
		}, []string{"reason"}),
		GatewayLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hostel_gateway_request_seconds",
			Help:    "Latency of outbound payment gateway calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostel_http_requests_total",
			Help: "Inbound HTTP requests, labeled by route, method and status.",
		}, []string{"route", "method", "status"}),
	}

	registry.MustRegister(
		m.OrdersCreated,
		m.OrdersExpired,
		m.Verifications,
		m.SignatureFailures,
		m.ReconciliationFlags,
		m.GatewayLatency,
		m.HTTPRequests,
	)
	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordOrderCreated(subject string) {
	if m == nil {
		return
	}
	m.OrdersCreated.WithLabelValues(subject).Inc()
}

func (m *Metrics) RecordOrdersExpired(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.OrdersExpired.Add(float64(count))
}

func (m *Metrics) RecordVerification(result string) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordSignatureFailure() {
	if m == nil {
		return
	}
	m.SignatureFailures.Inc()
}

func (m *Metrics) RecordReconciliationFlag(reason string) {
	if m == nil {
		return
	}
	m.ReconciliationFlags.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveGatewayCall(operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.GatewayLatency.WithLabelValues(operation, outcome).Observe(seconds)
}
