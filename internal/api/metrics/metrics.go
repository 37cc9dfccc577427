// Package metrics defines all custom Prometheus metrics for the auth-core
// service. It is the single source of truth for metric names, labels, and
// help strings; the vecs register themselves with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "authcore"

// GateDenialsTotal counts requests rejected by one of the middleware gates.
// Labels:
//   - gate: "client_auth", "user_auth" or "role"
//   - reason: short denial cause (e.g. "missing_header", "stale_version", "forbidden")
var GateDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_denials_total",
		Help:      "Total number of requests rejected by an auth gate.",
	},
	[]string{"gate", "reason"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts completed account registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user accounts created.",
	},
)

// SessionsRevokedTotal counts revoked sessions.
// Label:
//   - cause: "logout", "password_change" or "account_deleted"
var SessionsRevokedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of sessions revoked, by cause.",
	},
	[]string{"cause"},
)

// ClientInvalidationsTotal counts API client version bumps.
var ClientInvalidationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_invalidations_total",
		Help:      "Total number of API client token invalidations.",
	},
)
