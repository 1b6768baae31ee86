// Package metric exports objslot pool metrics to Prometheus.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/objslot"
)

// Compile time checks.
var (
	_ objslot.MetricsCollector = (*PrometheusCollector)(nil)
	_ prometheus.Collector     = (*PrometheusCollector)(nil)
)

// StatsSource is anything that reports pool occupancy, usually a
// *objslot.Pool.
type StatsSource interface {
	Stats() objslot.Stats
}

// PrometheusCollector implements objslot.MetricsCollector with Prometheus
// counters and occupancy gauges.
//
// The pool feeds it synchronously from its owning goroutine; the gauges are
// refreshed on every event from the observed StatsSource, so scraping never
// touches the pool itself.
type PrometheusCollector struct {
	source StatsSource

	created  prometheus.Counter
	removed  prometheus.Counter
	rejected prometheus.Counter
	clears   prometheus.Counter

	live     prometheus.Gauge
	capacity prometheus.Gauge
	free     prometheus.Gauge
	limit    prometheus.Gauge
}

// NewPrometheusCollector creates a collector whose metrics carry a "pool"
// const label.
//
// Example:
//
//	c := metric.NewPrometheusCollector("app", "meshes")
//	pool := objslot.New[Mesh](objslot.WithMetricsCollector(c))
//	c.Observe(pool)
//	prometheus.MustRegister(c)
func NewPrometheusCollector(namespace, pool string) *PrometheusCollector {
	labels := prometheus.Labels{"pool": pool}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "objslot",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "objslot",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}

	return &PrometheusCollector{
		created:  counter("created_total", "Total elements placed in the pool"),
		removed:  counter("removed_total", "Total elements removed after their last strong reference was released"),
		rejected: counter("rejected_total", "Total creations refused by admission control"),
		clears:   counter("clears_total", "Total Clear calls"),
		live:     gauge("live_elements", "Current number of live elements"),
		capacity: gauge("capacity_slots", "Current slot table size including dead slots"),
		free:     gauge("free_slots", "Current number of dead slots queued for reuse"),
		limit:    gauge("max_capacity", "Admission limit, 0 meaning unbounded"),
	}
}

// Observe sets the source the occupancy gauges are read from and refreshes
// them immediately.
func (c *PrometheusCollector) Observe(src StatsSource) {
	c.source = src
	c.refresh()
}

// RecordCreate implements objslot.MetricsCollector.
func (c *PrometheusCollector) RecordCreate(uint32) {
	c.created.Inc()
	c.refresh()
}

// RecordRemove implements objslot.MetricsCollector.
func (c *PrometheusCollector) RecordRemove(uint32) {
	c.removed.Inc()
	c.refresh()
}

// RecordRejected implements objslot.MetricsCollector.
func (c *PrometheusCollector) RecordRejected() {
	c.rejected.Inc()
	c.refresh()
}

// RecordClear implements objslot.MetricsCollector.
func (c *PrometheusCollector) RecordClear(int) {
	c.clears.Inc()
	c.refresh()
}

// Refresh re-reads the occupancy gauges. Call it from the pool's goroutine
// after changes that emit no event, such as ShrinkToFit or SetMaxCapacity.
func (c *PrometheusCollector) Refresh() { c.refresh() }

func (c *PrometheusCollector) refresh() {
	if c.source == nil {
		return
	}
	s := c.source.Stats()
	c.live.Set(float64(s.Count))
	c.capacity.Set(float64(s.Capacity))
	c.free.Set(float64(s.FreeSlots))
	c.limit.Set(float64(s.MaxCapacity))
}

func (c *PrometheusCollector) metrics() []prometheus.Collector {
	return []prometheus.Collector{
		c.created, c.removed, c.rejected, c.clears,
		c.live, c.capacity, c.free, c.limit,
	}
}

// Describe implements prometheus.Collector.
func (c *PrometheusCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.metrics() {
		m.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (c *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	for _, m := range c.metrics() {
		m.Collect(ch)
	}
}
