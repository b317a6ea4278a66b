package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vyaparify_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vyaparify_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// AdSearches counts ad list queries by sort order.
	AdSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vyaparify_ad_searches_total",
		Help: "Total number of ad search queries by sort order",
	}, []string{"sort"})

	// AdsPosted counts ads created, by category.
	AdsPosted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vyaparify_ads_posted_total",
		Help: "Total number of ads posted by category",
	}, []string{"category"})

	// MessagesSent counts buyer/seller messages persisted.
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vyaparify_messages_sent_total",
		Help: "Total number of messages sent",
	})

	// UploadsProcessed counts image uploads by outcome.
	UploadsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vyaparify_uploads_processed_total",
		Help: "Total number of image uploads by outcome",
	}, []string{"outcome"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
