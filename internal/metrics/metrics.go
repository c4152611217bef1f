// Package metrics provides Prometheus metrics for the Cardfolio backend.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardfolio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cardfolio_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Collection Metrics
	CardMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardfolio_card_mutations_total",
			Help: "Total card mutations by action",
		},
		[]string{"action"}, // addCard, editCard, deleteCard, updateSalePrice, markSold, trade, revertTrade
	)

	CardsByState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cardfolio_cards_by_state",
			Help: "Cards in the last computed snapshot by lifecycle state",
		},
		[]string{"state"},
	)

	PortfolioInvested = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cardfolio_portfolio_invested",
			Help: "Invested capital in the last computed snapshot",
		},
	)

	PortfolioReturns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cardfolio_portfolio_returns",
			Help: "Total returns in the last computed snapshot",
		},
	)

	// Auth Metrics
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardfolio_login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"}, // "success", "failed", "rate_limited"
	)

	HistoryBackfillsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardfolio_history_backfills_total",
			Help: "Number of history backfill requests processed",
		},
	)
)
