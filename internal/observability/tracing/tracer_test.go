package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan_RecordsWithInstalledProvider(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	shutdown := InitTracer(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = shutdown(context.Background()) }()

	_, span := StartSpan(context.Background(), "db.author_get", attribute.String("db.operation", "author_get"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "db.author_get", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.String("db.operation", "author_get"))
}
