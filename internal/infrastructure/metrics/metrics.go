package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application-level Prometheus metrics. HTTP-level
// request metrics live in the metrics middleware.
type Metrics struct {
	// Journal metrics
	JournalsCreated prometheus.Counter
	JournalsDeleted prometheus.Counter

	// Trade metrics
	TradesRecorded prometheus.Counter
	TradesUpdated  prometheus.Counter
	TradesDeleted  prometheus.Counter
	TradePnL       prometheus.Histogram

	// Stats metrics
	CalendarRequests  prometheus.Counter
	DashboardRequests prometheus.Counter

	// Cache metrics
	CacheLookups *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Journal metrics
		JournalsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradejournal_journals_created_total",
			Help: "Total number of journals created",
		}),
		JournalsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradejournal_journals_deleted_total",
			Help: "Total number of journals deleted",
		}),

		// Trade metrics
		TradesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradejournal_trades_recorded_total",
			Help: "Total number of trades recorded",
		}),
		TradesUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradejournal_trades_updated_total",
			Help: "Total number of trades updated",
		}),
		TradesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradejournal_trades_deleted_total",
			Help: "Total number of trades deleted",
		}),
		TradePnL: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tradejournal_trade_pnl",
			Help:    "Recorded trade P&L amounts",
			Buckets: []float64{-10000, -1000, -100, -10, 0, 10, 100, 1000, 10000},
		}),

		// Stats metrics
		CalendarRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradejournal_calendar_requests_total",
			Help: "Total number of calendar requests",
		}),
		DashboardRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradejournal_dashboard_requests_total",
			Help: "Total number of dashboard requests",
		}),

		// Cache metrics
		CacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradejournal_cache_lookups_total",
				Help: "Snapshot cache lookups by result",
			},
			[]string{"result"},
		),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradejournal_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradejournal_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradejournal_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
