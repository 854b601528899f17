package interpreter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var statementsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quarteto_statements_total",
		Help: "Number of statements executed, by role.",
	},
	[]string{"role"},
)

var diagnosticsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quarteto_diagnostics_total",
		Help: "Number of lines skipped with a diagnostic, by kind.",
	},
	[]string{"kind"},
)
