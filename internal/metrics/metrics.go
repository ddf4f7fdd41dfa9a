// Package metrics exposes Prometheus metrics for the rundown domain.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rundownsProvisionedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsroom_rundowns_provisioned_total",
		Help: "Rundowns created by the load-or-create path",
	})

	rundownTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsroom_rundown_transitions_total",
		Help: "Rundown status changes by source, target and override",
	}, []string{"from", "to", "forced"})

	orderingFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsroom_ordering_failures_total",
		Help: "Bulk order updates that failed, partially or totally",
	}, []string{"entity", "kind"})

	treeMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsroom_tree_mutations_total",
		Help: "Block and item mutations by entity and operation",
	}, []string{"entity", "op"})
)

// RecordProvisioned counts a newly provisioned rundown.
func RecordProvisioned() {
	rundownsProvisionedTotal.Inc()
}

// RecordTransition counts a rundown status change.
func RecordTransition(from, to string, forced bool) {
	rundownTransitionsTotal.WithLabelValues(from, to, strconv.FormatBool(forced)).Inc()
}

// RecordOrderingFailure counts a failed bulk order update.
func RecordOrderingFailure(entity string, partial bool) {
	kind := "total"
	if partial {
		kind = "partial"
	}
	orderingFailuresTotal.WithLabelValues(entity, kind).Inc()
}

// RecordMutation counts a block or item mutation.
func RecordMutation(entity, op string) {
	treeMutationsTotal.WithLabelValues(entity, op).Inc()
}
