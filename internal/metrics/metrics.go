// Package metrics exposes the counters served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PaymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smallie_payments_total",
		Help: "Payment attempts by method and terminal outcome.",
	}, []string{"method", "outcome"})

	VotesCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smallie_votes_committed_total",
		Help: "Individual votes committed to the ledger.",
	})

	ReconciliationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smallie_reconciliation_failures_total",
		Help: "Settled payments whose ledger commit failed and needs manual reconciliation.",
	})
)

const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)
