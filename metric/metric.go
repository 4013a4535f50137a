package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all gateway metrics on a private Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	ConnectionsActive prometheus.Gauge
	UsersRegistered   prometheus.Gauge
	FramesReceived    *prometheus.CounterVec
	ProtocolErrors    prometheus.Counter
	MessagesDelivered prometheus.Counter
	DeliveryFailures  prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "realtime",
			Subsystem: "connections",
			Name:      "active",
			Help:      "Number of open websocket connections",
		}),
		UsersRegistered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "realtime",
			Subsystem: "registry",
			Name:      "users",
			Help:      "Number of users currently registered",
		}),
		FramesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "realtime",
			Subsystem: "frames",
			Name:      "received_total",
			Help:      "Total inbound frames by type",
		}, []string{"type"}),
		ProtocolErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "realtime",
			Subsystem: "frames",
			Name:      "protocol_errors_total",
			Help:      "Total frames rejected as unparseable",
		}),
		MessagesDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "realtime",
			Subsystem: "delivery",
			Name:      "messages_total",
			Help:      "Total payloads written to a connection",
		}),
		DeliveryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "realtime",
			Subsystem: "delivery",
			Name:      "failures_total",
			Help:      "Total payloads dropped (recipient offline or send failed)",
		}),
	}

	m.registry.MustRegister(
		m.ConnectionsActive,
		m.UsersRegistered,
		m.FramesReceived,
		m.ProtocolErrors,
		m.MessagesDelivered,
		m.DeliveryFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
