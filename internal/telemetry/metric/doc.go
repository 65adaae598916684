// Package metric provides Prometheus metrics for FerroDB.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry and HTTP handler
//   - collector.go: a Collector that reports keyspace size, AOF size,
//     and Go runtime stats on scrape
//
// Metrics include:
//
//   - Command counters and latency histograms
//   - Connected-client and active-subscription gauges
//   - Keyspace size and AOF file size
//
// Metrics are exposed in Prometheus exposition format via Registry.Handler.
package metric
