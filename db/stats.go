package db

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var connStats = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "db_conn",
	Help: "Stats about db connections",
}, []string{"metric"})

var waitStats = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "db_conn_wait",
	Help: "Stats about waiting on db connections",
}, []string{"metric"})

func RecordConnectionStats(db *sqlx.DB) {
	stats := db.Stats()

	connStats.WithLabelValues("num_open").Set(float64(stats.OpenConnections))
	connStats.WithLabelValues("num_in_use").Set(float64(stats.InUse))
	connStats.WithLabelValues("num_idle").Set(float64(stats.Idle))

	// wait and close numbers are lifetime counters of database/sql; they are
	// exported as gauges and rates are derived downstream.
	waitStats.WithLabelValues("duration_ms").Set(float64(stats.WaitDuration.Milliseconds()))
	waitStats.WithLabelValues("count").Set(float64(stats.WaitCount))
	connStats.WithLabelValues("max_idle_closed").Set(float64(stats.MaxIdleClosed))
	connStats.WithLabelValues("max_lifetime_closed").Set(float64(stats.MaxLifetimeClosed))
}

// ReportPeriodically records connection stats every period until stop is closed.
func ReportPeriodically(db *sqlx.DB, period time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			RecordConnectionStats(db)
			select {
			case <-ticker.C:
			case <-stop:
				return
			}
		}
	}()
}
