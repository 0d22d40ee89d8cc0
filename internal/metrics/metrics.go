package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/indigo-web/catalina/http/status"
)

const namespace = "catalina"

// Kinds of connection failures.
const (
	FailureRead    = "read"
	FailureWrite   = "write"
	FailureTimeout = "timeout"
	FailureRequest = "bad_request"
)

// Metrics is a set of collectors shared by all the connections.
type Metrics struct {
	Requests           *prometheus.CounterVec
	ConnectionFailures *prometheus.CounterVec
	ActiveConnections  prometheus.Gauge
	SessionsCreated    prometheus.Counter
	UsersRegistered    prometheus.Counter
}

// New creates the collectors and registers them. A nil registerer leaves them
// unregistered, which is handy for tests.
func New(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of served requests by response code",
			},
			[]string{"code"},
		),
		ConnectionFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "connection_failures_total",
				Help:      "Total number of connections terminated abnormally",
			},
			[]string{"kind"},
		),
		ActiveConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "tcp",
				Name:      "active_connections",
				Help:      "Number of currently served connections",
			},
		),
		SessionsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "session",
				Name:      "created_total",
				Help:      "Total number of sessions created on login",
			},
		),
		UsersRegistered: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "user",
				Name:      "registered_total",
				Help:      "Total number of registered users",
			},
		),
	}
}

// Nop returns unregistered collectors.
func Nop() *Metrics {
	return New(nil)
}

func (m *Metrics) ObserveResponse(code status.Code) {
	m.Requests.WithLabelValues(strconv.Itoa(int(code))).Inc()
}

func (m *Metrics) ObserveFailure(kind string) {
	m.ConnectionFailures.WithLabelValues(kind).Inc()
}
