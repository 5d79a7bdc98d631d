package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	WebhookDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_deliveries_total",
			Help: "Total number of inbound webhook deliveries by endpoint and response status",
		},
		[]string{"endpoint", "status"},
	)

	OutboundRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbound_requests_total",
			Help: "Total number of requests sent to external services",
		},
		[]string{"service", "code", "method"},
	)

	OutboundRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "outbound_request_duration_seconds",
			Help: "Duration of requests sent to external services in seconds",
		},
		[]string{"service", "code", "method"},
	)
)

// InstrumentTransport wraps next so every round trip is counted and timed
// under the given service label.
func InstrumentTransport(service string, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	labels := prometheus.Labels{"service": service}
	return promhttp.InstrumentRoundTripperCounter(
		OutboundRequests.MustCurryWith(labels),
		promhttp.InstrumentRoundTripperDuration(
			OutboundRequestDuration.MustCurryWith(labels),
			next,
		),
	)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
