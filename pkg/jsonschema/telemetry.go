package jsonschema

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/goliatone/go-schemagen/pkg/jsonschema"

type telemetry struct {
	tracer       trace.Tracer
	compilations metric.Int64Counter
	definitions  metric.Int64Histogram
}

func newTelemetry(cfg options) *telemetry {
	tp := cfg.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	mp := cfg.meterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	meter := mp.Meter(instrumentationName)
	compilations, err := meter.Int64Counter(
		"schemagen.compilations",
		metric.WithDescription("Number of root schema compilations"),
		metric.WithUnit("{compilation}"),
	)
	if err != nil {
		otel.Handle(err)
	}
	definitions, err := meter.Int64Histogram(
		"schemagen.definitions",
		metric.WithDescription("Definitions emitted per compiled document"),
		metric.WithUnit("{definition}"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &telemetry{
		tracer:       tp.Tracer(instrumentationName),
		compilations: compilations,
		definitions:  definitions,
	}
}

func (t *telemetry) start(ctx context.Context, schemaName string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "schemagen.compile",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("schemagen.schema", schemaName)),
	)
}

func (t *telemetry) finish(ctx context.Context, span trace.Span, schemaName string, doc *Document, err error) {
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.String("schemagen.schema", schemaName),
		attribute.Bool("schemagen.error", err != nil),
	}
	if t.compilations != nil {
		t.compilations.Add(ctx, 1, metric.WithAttributes(attrs...))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}

	count := int64(len(doc.Definitions))
	span.SetAttributes(attribute.Int64("schemagen.definitions", count))
	if t.definitions != nil {
		t.definitions.Record(ctx, count, metric.WithAttributes(attrs...))
	}
	span.SetStatus(codes.Ok, "")
}
