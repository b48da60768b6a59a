// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus exposition of record pool counters.
// Values are read from the pool on every scrape; nothing is cached here.

package control

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/disposify/api"
)

// PoolCollector exports api.PoolStats as prometheus metrics.
type PoolCollector struct {
	stats func() api.PoolStats

	allocated *prometheus.Desc
	reused    *prometheus.Desc
	recycled  *prometheus.Desc
	retired   *prometheus.Desc
	idle      *prometheus.Desc
	inUse     *prometheus.Desc
}

// NewPoolCollector creates a collector labelled pool=name.
// stats is typically (*disposable.Pool).Stats.
func NewPoolCollector(namespace, name string, stats func() api.PoolStats) *PoolCollector {
	labels := prometheus.Labels{"pool": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", metric), help, nil, labels)
	}
	return &PoolCollector{
		stats:     stats,
		allocated: desc("records_allocated_total", "Records allocated because the pool was empty."),
		reused:    desc("records_reused_total", "Acquisitions served from the pool."),
		recycled:  desc("records_recycled_total", "Releases that returned the record to the pool."),
		retired:   desc("records_retired_total", "Releases that removed the record from circulation."),
		idle:      desc("records_idle", "Records waiting in the pool."),
		inUse:     desc("records_in_use", "Records backing a live registration."),
	}
}

// Describe implements prometheus.Collector.
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.allocated
	ch <- c.reused
	ch <- c.recycled
	ch <- c.retired
	ch <- c.idle
	ch <- c.inUse
}

// Collect implements prometheus.Collector.
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	st := c.stats()
	ch <- prometheus.MustNewConstMetric(c.allocated, prometheus.CounterValue, float64(st.Allocated))
	ch <- prometheus.MustNewConstMetric(c.reused, prometheus.CounterValue, float64(st.Reused))
	ch <- prometheus.MustNewConstMetric(c.recycled, prometheus.CounterValue, float64(st.Recycled))
	ch <- prometheus.MustNewConstMetric(c.retired, prometheus.CounterValue, float64(st.Retired))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(st.Idle))
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(st.InUse))
}

var _ prometheus.Collector = (*PoolCollector)(nil)
