// Package metrics defines and registers all custom Prometheus metrics for the
// FAQ portal API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package init
// via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "faqportal"

// ── Question lifecycle metrics ────────────────────────────────────────────────

// QuestionsSubmittedTotal counts user questions accepted into the pending state.
var QuestionsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "questions_submitted_total",
		Help:      "Total number of user questions submitted.",
	},
)

// QuestionsAnsweredTotal counts answer operations that completed, including
// re-edits of an already answered question.
var QuestionsAnsweredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "questions_answered_total",
		Help:      "Total number of admin answers applied to user questions.",
	},
)

// QuestionsConvertedTotal counts questions successfully promoted into FAQs.
var QuestionsConvertedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "questions_converted_total",
		Help:      "Total number of user questions converted into FAQs.",
	},
)

// ConversionConflictsTotal counts conversions that lost the status
// compare-and-swap to a concurrent convert and were compensated.
var ConversionConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conversion_conflicts_total",
		Help:      "Total number of FAQ conversions aborted by a concurrent convert.",
	},
)

// ── FAQ metrics ───────────────────────────────────────────────────────────────

// FAQsCreatedTotal counts published FAQs by origin.
// Label:
//   - source: "direct" (authored by an admin) or "conversion"
var FAQsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "faqs_created_total",
		Help:      "Total number of FAQs published, by source.",
	},
	[]string{"source"},
)

// ViewsDedupTotal counts view-dedup decisions.
// Label:
//   - result: "hit" (repeat view, not counted) or "miss" (new view, counted)
var ViewsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "views_dedup_total",
		Help:      "Total number of view deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ViewQueueDepth tracks the number of view increments waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ViewQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "view_queue_depth",
		Help:      "Current number of view increments pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
