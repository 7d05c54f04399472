package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		duration  time.Duration
	}{
		{name: "fast query", operation: "author_get", duration: 2 * time.Millisecond},
		{name: "slow query", operation: "magazine_article_counts", duration: 2 * time.Second},
		{name: "zero duration", operation: "article_create", duration: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordDBQuery(tt.operation, tt.duration)
			})
		})
	}
}

func TestRecordDBQueryError(t *testing.T) {
	counter := DBQueryErrors.WithLabelValues("test_op", "foreign_key")
	before := testutil.ToFloat64(counter)

	RecordDBQueryError("test_op", "foreign_key")
	RecordDBQueryError("test_op", "foreign_key")

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestUpdateDBConnectionStats(t *testing.T) {
	UpdateDBConnectionStats(3, 7)

	assert.Equal(t, float64(3), testutil.ToFloat64(DBConnectionsActive))
	assert.Equal(t, float64(7), testutil.ToFloat64(DBConnectionsIdle))
}

func TestUpdateCatalogTotals(t *testing.T) {
	UpdateCatalogTotals(2, 1, 3)

	assert.Equal(t, float64(2), testutil.ToFloat64(AuthorsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(MagazinesTotal))
	assert.Equal(t, float64(3), testutil.ToFloat64(ArticlesTotal))
}
