// Metric definitions for the stub backend. HTTP-level metrics come from the
// echoprometheus middleware; these counters cover the auth lifecycle.

package stub

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "psi_stub"

// loginsTotal counts login attempts.
// Label:
//   - result: "ok" or "rejected"
var loginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// tokensRevokedTotal counts tokens revoked through logout.
var tokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of tokens revoked via logout.",
	},
)
