// Package metrics defines the custom Prometheus metrics of the portfolio API.
// Metrics register with the default registry on import through promauto; the
// HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of administrator login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests refused by the auth gate.
// Label:
//   - reason: "no_token", "token_failed" or "admin_not_found"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of protected requests rejected by the auth gate.",
	},
	[]string{"reason"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// ProfileUpsertsTotal counts profile writes.
// Label:
//   - outcome: "created" or "updated"
var ProfileUpsertsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_upserts_total",
		Help:      "Total number of profile writes, by outcome.",
	},
	[]string{"outcome"},
)

// ResourceMutationsTotal counts successful writes to the resource collections.
// Labels:
//   - resource: paper, course, blog or video
//   - action: create, update or delete
var ResourceMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_mutations_total",
		Help:      "Total number of resource collection writes.",
	},
	[]string{"resource", "action"},
)

// ── Contact metrics ───────────────────────────────────────────────────────────

// ContactMessagesTotal counts contact form submissions.
// Label:
//   - result: "queued", "rejected" or "dropped"
var ContactMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_messages_total",
		Help:      "Total number of contact form submissions, by result.",
	},
	[]string{"result"},
)

// RegisterQueueDepth exposes the number of contact messages waiting for
// delivery. Call it once at startup with the dispatcher's Depth method.
func RegisterQueueDepth(depth func() int) prometheus.GaugeFunc {
	return promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "contact_queue_depth",
			Help:      "Current number of contact messages waiting for delivery.",
		},
		func() float64 { return float64(depth()) },
	)
}
