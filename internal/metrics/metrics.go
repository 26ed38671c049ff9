// Package metrics exports the logger's in-memory metrics to Prometheus.
//
// Counters become <namespace>_<name>_total, gauges keep their name and
// timings are exposed as summaries in seconds. Dots in metric names are
// replaced with underscores, so "fetch.attempts" is served as
// xoso_fetch_attempts_total.
package metrics

import (
	"net/http"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pfrederiksen/xoso-stats/internal/logger"
)

// Namespace prefixes every exported metric.
const Namespace = "xoso"

// Collector is an unchecked prometheus.Collector reading a logger.Metrics
// snapshot on every scrape.
type Collector struct {
	source    *logger.Metrics
	namespace string
}

// NewCollector creates a Collector for m.
func NewCollector(m *logger.Metrics) *Collector {
	return &Collector{source: m, namespace: Namespace}
}

// Describe sends nothing; the metric set changes as names are first used.
func (c *Collector) Describe(chan<- *prometheus.Desc) {}

// Collect converts the current snapshot.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.source.GetSnapshot()

	for _, name := range sortedKeys(snap.Counters) {
		desc := prometheus.NewDesc(c.fqName(name)+"_total", "Counter "+name+".", nil, nil)
		ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(snap.Counters[name]))
	}

	for _, name := range sortedKeys(snap.Gauges) {
		desc := prometheus.NewDesc(c.fqName(name), "Gauge "+name+".", nil, nil)
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, snap.Gauges[name])
	}

	for _, name := range sortedKeys(snap.Timings) {
		stats := snap.Timings[name]
		desc := prometheus.NewDesc(c.fqName(name)+"_seconds", "Timing "+name+".", nil, nil)
		ch <- prometheus.MustNewConstSummary(desc, uint64(stats.Count), stats.Total.Seconds(), nil)
	}
}

func (c *Collector) fqName(name string) string {
	return c.namespace + "_" + SanitizeName(name)
}

// SanitizeName maps a dotted metric name onto the Prometheus character set.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// NewRegistry returns a registry holding the bridge plus the Go runtime and
// process collectors.
func NewRegistry(m *logger.Metrics) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		NewCollector(m),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler serves m in the Prometheus exposition format.
func Handler(m *logger.Metrics) http.Handler {
	return promhttp.HandlerFor(NewRegistry(m), promhttp.HandlerOpts{})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
