package jsonschema

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/goliatone/go-schemagen/pkg/descriptor"
	"github.com/goliatone/go-schemagen/pkg/testsupport"
)

func TestTelemetry(t *testing.T) {
	t.Run("records a span per compilation", func(t *testing.T) {
		exporter := tracetest.NewInMemoryExporter()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		defer tp.Shutdown(context.Background())

		compiler := New(WithTracerProvider(tp))
		if _, err := compiler.Compile(context.Background(), testsupport.PersonSchema(testsupport.PetSchema())); err != nil {
			t.Fatalf("compile: %v", err)
		}

		spans := exporter.GetSpans()
		if len(spans) != 1 {
			t.Fatalf("expected 1 span, got %d", len(spans))
		}
		span := spans[0]
		if span.Name != "schemagen.compile" {
			t.Errorf("unexpected span name %q", span.Name)
		}
		if span.Status.Code != codes.Ok {
			t.Errorf("expected ok status, got %v", span.Status.Code)
		}
		found := false
		for _, attr := range span.Attributes {
			if attr.Key == attribute.Key("schemagen.definitions") && attr.Value.AsInt64() == 2 {
				found = true
			}
		}
		if !found {
			t.Errorf("expected definitions attribute, got %v", span.Attributes)
		}
	})

	t.Run("records errors", func(t *testing.T) {
		exporter := tracetest.NewInMemoryExporter()
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		defer tp.Shutdown(context.Background())

		schema := &descriptor.Schema{Name: "Broken", Unknown: "sometimes"}
		_, err := New(WithTracerProvider(tp)).Compile(context.Background(), schema)
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
		}

		spans := exporter.GetSpans()
		if len(spans) != 1 || spans[0].Status.Code != codes.Error {
			t.Fatalf("expected one errored span, got %v", spans)
		}
	})

	t.Run("counts compilations", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		defer mp.Shutdown(context.Background())

		compiler := New(WithMeterProvider(mp))
		for i := 0; i < 3; i++ {
			if _, err := compiler.Compile(context.Background(), testsupport.PetSchema()); err != nil {
				t.Fatalf("compile: %v", err)
			}
		}

		var rm metricdata.ResourceMetrics
		if err := reader.Collect(context.Background(), &rm); err != nil {
			t.Fatalf("collect: %v", err)
		}
		var total int64
		for _, scope := range rm.ScopeMetrics {
			for _, m := range scope.Metrics {
				if m.Name != "schemagen.compilations" {
					continue
				}
				sum, ok := m.Data.(metricdata.Sum[int64])
				if !ok {
					t.Fatalf("unexpected data type %T", m.Data)
				}
				for _, point := range sum.DataPoints {
					total += point.Value
				}
			}
		}
		if total != 3 {
			t.Fatalf("expected 3 compilations, got %d", total)
		}
	})
}

func TestLogger(t *testing.T) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 2})

	tree := testsupport.TreeSchema()
	_, err := New(WithLogger(logger), WithRegistry(descriptor.NewRegistry(tree))).
		Compile(context.Background(), testsupport.PersonSchema(testsupport.PetSchema()))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, `"msg"="compiled nested schema"`) || !strings.Contains(joined, `"schema"="Pet"`) {
		t.Fatalf("expected nested compilation to be logged, got:\n%s", joined)
	}
}
