package metrics

import (
	"time"
)

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "author_get", "magazine_article_counts").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDBQueryError counts a failed database operation.
// Kind is a short classification such as "connection", "foreign_key" or "other".
func RecordDBQueryError(operation, kind string) {
	DBQueryErrors.WithLabelValues(operation, kind).Inc()
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// UpdateCatalogTotals updates the row count gauges of the three tables.
func UpdateCatalogTotals(authors, magazines, articles int) {
	AuthorsTotal.Set(float64(authors))
	MagazinesTotal.Set(float64(magazines))
	ArticlesTotal.Set(float64(articles))
}

// SetCircuitBreakerState records a breaker transition. State values follow
// gobreaker: 0 closed, 1 half-open, 2 open.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
