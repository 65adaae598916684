// Package metric wires FerroDB's runtime counters and gauges into
// Prometheus using github.com/prometheus/client_golang.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every metric the dispatcher and server update as they
// run. All fields are ready to use once returned by NewRegistry; nothing
// needs to be registered by the caller.
type Registry struct {
	reg *prometheus.Registry

	// CommandsTotal counts processed commands by name.
	CommandsTotal *prometheus.CounterVec
	// CommandErrorsTotal counts commands that returned a RESP error, by
	// name and error prefix (e.g. "WRONGTYPE", "ERR").
	CommandErrorsTotal *prometheus.CounterVec
	// CommandDuration observes per-command handler latency in seconds.
	CommandDuration *prometheus.HistogramVec

	// ConnectedClients is the current count of open RESP connections.
	ConnectedClients prometheus.Gauge
	// SubscriptionsActive is the current count of live pub/sub subscriptions
	// across all connections and channels.
	SubscriptionsActive prometheus.Gauge
}

// NewRegistry creates a fresh Prometheus registry and the metrics FerroDB
// reports, all pre-registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ferrodb",
			Name:      "commands_total",
			Help:      "Total commands processed, by command name.",
		}, []string{"command"}),
		CommandErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ferrodb",
			Name:      "command_errors_total",
			Help:      "Total commands that returned a RESP error, by command name and error prefix.",
		}, []string{"command", "error"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ferrodb",
			Name:      "command_duration_seconds",
			Help:      "Command handler latency in seconds, by command name.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
		ConnectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ferrodb",
			Name:      "connected_clients",
			Help:      "Current number of open client connections.",
		}),
		SubscriptionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ferrodb",
			Name:      "subscriptions_active",
			Help:      "Current number of active pub/sub channel subscriptions.",
		}),
	}

	reg.MustRegister(
		r.CommandsTotal,
		r.CommandErrorsTotal,
		r.CommandDuration,
		r.ConnectedClients,
		r.SubscriptionsActive,
	)

	return r
}

// RegisterCollector adds an additional prometheus.Collector (e.g. a
// Collector sourcing keyspace/process stats) to the registry.
func (r *Registry) RegisterCollector(c prometheus.Collector) {
	r.reg.MustRegister(c)
}

// Handler returns the HTTP handler serving this registry's metrics in
// Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
