package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/touchline/internal/domain/lineup"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("touchline/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

// startUsecaseSpan only opens a child span when the caller is already traced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, usecaseNoopSpan
	}
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func fixtureAttr(fixtureID string) attribute.KeyValue {
	return attribute.String("touchline.fixture_id", fixtureID)
}

func scopeAttrs(fixtureID string, scope lineup.Scope) []attribute.KeyValue {
	return []attribute.KeyValue{
		fixtureAttr(fixtureID),
		attribute.Int("touchline.team", scope.Team),
		attribute.Int("touchline.period", scope.Period),
	}
}
