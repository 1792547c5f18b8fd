package terminal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Action outcome label values.
const (
	outcomeHandled  = "handled"
	outcomeIgnored  = "ignored"
	outcomeRejected = "rejected"
)

// Metric definitions with appropriate labels.
var (
	// actionsTotal counts dispatched actions by the state they arrived in and what became of them.
	actionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "atm_actions_total",
		Help: "Total number of actions by terminal, action, state, and outcome (handled, ignored or rejected)",
	}, []string{"terminal", "action", "state", "outcome"})

	// transitionsTotal counts state changes.
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "atm_transitions_total",
		Help: "Total number of state transitions by terminal, from_state, and to_state",
	}, []string{"terminal", "from_state", "to_state"})

	// notificationsTotal counts notices handed to the reporter.
	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "atm_notifications_total",
		Help: "Total number of notifications emitted by terminal and kind",
	}, []string{"terminal", "kind"})

	// connectionChecksTotal counts oracle draws during PIN verification.
	connectionChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "atm_connection_checks_total",
		Help: "Total number of connection checks during PIN verification by terminal and result (ok or lost)",
	}, []string{"terminal", "result"})

	// withdrawnAmount tracks the size of successful withdrawals.
	withdrawnAmount = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name:    "atm_withdrawn_amount",
		Help:    "Amount of successful withdrawals by terminal",
		Buckets: []float64{10, 20, 50, 100, 200, 500, 1000, 2000, 5000},
	}, []string{"terminal"})
)

func sanitizeTerminal(name string) string {
	if name == "" {
		return "unknown"
	}

	return name
}
