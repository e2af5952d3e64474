// Package metrics defines and registers all custom Prometheus metrics for
// the painel API. It is the single source of truth for metric names,
// labels, and help strings. Metrics self-register with the default
// registry via promauto on first import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "painel"

// ── Push channel metrics ─────────────────────────────────────────────────────

// EventsPublishedTotal counts events pushed through the hub.
// Label:
//   - event: the event name (e.g. "userUpdated", "menuDeleted")
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of push events published to the hub.",
	},
	[]string{"event"},
)

// SocketClients tracks the number of currently connected WebSocket clients.
var SocketClients = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "socket_clients",
		Help:      "Number of currently connected push-channel clients.",
	},
)

// ── Route guard metrics ──────────────────────────────────────────────────────

// GuardDecisionsTotal counts route authorization outcomes.
// Label:
//   - outcome: "allow", "redirect_login" or "redirect_home"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard evaluations, by outcome.",
	},
	[]string{"outcome"},
)

// ── Menu resolver metrics ────────────────────────────────────────────────────

// MenuCacheTotal counts role-menu cache lookups.
// Label:
//   - result: "hit" (fresh cached set) or "miss" (repository fetch)
var MenuCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "menu_cache_total",
		Help:      "Total number of role-menu cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Export metrics ───────────────────────────────────────────────────────────

// ExportsTotal counts generated report exports.
// Labels:
//   - format: "csv" or "xlsx"
//   - type: report type ("pedidos", "produtos", "usuarios")
var ExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of report exports generated, by format and report type.",
	},
	[]string{"format", "type"},
)
