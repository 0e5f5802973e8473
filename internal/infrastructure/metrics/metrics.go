package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the storefront
type Metrics struct {
	DepositsTotal     prometheus.Counter
	PurchasesTotal    prometheus.Counter
	SettlementsFailed *prometheus.CounterVec
	SessionsOpened    *prometheus.CounterVec
	HandshakesIssued  prometheus.Counter
}

// New creates and registers the storefront collectors on the given registry.
// Pass prometheus.DefaultRegisterer in production; tests use their own
// registry so collectors never collide.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DepositsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tipstore_deposits_total",
			Help: "successful wallet deposits",
		}),
		PurchasesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tipstore_purchases_total",
			Help: "settled tip purchases",
		}),
		SettlementsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tipstore_settlements_failed_total",
			Help: "rejected settlements by reason",
		}, []string{"reason"}),
		SessionsOpened: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tipstore_sessions_opened_total",
			Help: "sessions opened by flow",
		}, []string{"flow"}),
		HandshakesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tipstore_bot_handshakes_issued_total",
			Help: "one-time bot handshake tokens issued",
		}),
	}

	reg.MustRegister(
		m.DepositsTotal,
		m.PurchasesTotal,
		m.SettlementsFailed,
		m.SessionsOpened,
		m.HandshakesIssued,
	)
	return m
}
