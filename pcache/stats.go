package pcache

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cacheStats = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "pcache_stats",
	Help: "Lifetime metrics of process-level caches",
}, []string{"name", "metric"})

func RecordStats(name string, p PCache) {
	m := p.Cache.Metrics
	cacheStats.WithLabelValues(name, "hits").Set(float64(m.Hits()))
	cacheStats.WithLabelValues(name, "misses").Set(float64(m.Misses()))
	cacheStats.WithLabelValues(name, "ratio").Set(m.Ratio())
	cacheStats.WithLabelValues(name, "sets_dropped").Set(float64(m.SetsDropped()))
	cacheStats.WithLabelValues(name, "sets_rejected").Set(float64(m.SetsRejected()))
	cacheStats.WithLabelValues(name, "gets_dropped").Set(float64(m.GetsDropped()))
	cacheStats.WithLabelValues(name, "size").Set(float64(m.CostAdded() - m.CostEvicted()))
}

// ReportPeriodically records stats of p every period until stop is closed.
func ReportPeriodically(name string, p PCache, period time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			RecordStats(name, p)
			select {
			case <-ticker.C:
			case <-stop:
				return
			}
		}
	}()
}
