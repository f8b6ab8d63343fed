package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry collects every postbook metric. It is separate from the default
// registerer so tests and the CLI control exactly what gets exported.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// Outcomes recorded by AuthAttempts.
const (
	AuthSucceeded   = "success"
	AuthBadPassword = "bad_password"
	AuthUnknownUser = "unknown_user"
)

var (
	// AuthAttempts counts credential checks by outcome.
	AuthAttempts = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "postbook_auth_attempts_total",
		Help: "Total number of credential checks by outcome",
	}, []string{"outcome"})

	// PasswordChanges counts successful password (re)sets on existing users.
	PasswordChanges = factory.NewCounter(prometheus.CounterOpts{
		Name: "postbook_password_changes_total",
		Help: "Total number of password changes",
	})

	// ConstraintViolations counts writes rejected by a database constraint.
	ConstraintViolations = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "postbook_constraint_violations_total",
		Help: "Total number of writes rejected by a database constraint",
	}, []string{"table", "kind"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "postbook_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// DatabaseMetrics records query latency for one table.
type DatabaseMetrics struct {
	table string
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(table string) *DatabaseMetrics {
	return &DatabaseMetrics{table: table}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, m.table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, start)
	}
}

// RecordConstraintViolation increments the violation counter for table and kind.
func (m *DatabaseMetrics) RecordConstraintViolation(kind string) {
	ConstraintViolations.WithLabelValues(m.table, kind).Inc()
}

// WriteTextfile dumps the registry in the Prometheus text format, suitable for
// the node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
