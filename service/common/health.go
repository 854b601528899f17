package common

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"quarteto/db"

	"github.com/heptiolabs/healthcheck"
)

type HealthCheckArgs struct {
	HealthPort uint `arg:"--health-port,env:HEALTH_PORT" default:"8082"`
}

// HealthHandler reports the process as live while it runs and as ready only
// while the script store answers pings.
func HealthHandler(conn db.Connection) healthcheck.Handler {
	health := healthcheck.NewHandler()
	health.AddReadinessCheck("database", healthcheck.DatabasePingCheck(conn.DB.DB, time.Second))
	return health
}

func StartHealthCheckServer(port uint, conn db.Connection) {
	health := HealthHandler(conn)
	go func() {
		err := http.ListenAndServe(fmt.Sprintf(":%d", port), health)
		if err != nil {
			log.Fatalf("health check server stopped unexpectedly: %v", err)
		}
	}()
}
