package jsonschema

import (
	"github.com/go-logr/logr"
	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-schemagen/pkg/descriptor"
)

// Option configures a Compiler.
type Option func(*options)

type options struct {
	registry       descriptor.Registry
	logger         logr.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	sanitizer      *bluemonday.Policy
	typeRules      []TypeRule
	translators    []ConstraintTranslator
}

func newOptions(opts ...Option) options {
	cfg := options{logger: logr.Discard()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg.typeRules = append(cfg.typeRules, defaultTypeRules...)
	cfg.translators = append(cfg.translators, defaultTranslators...)
	return cfg
}

// WithRegistry supplies the registry used to resolve nested fields that name
// their target schema instead of pointing at it.
func WithRegistry(registry descriptor.Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithLogger routes compiler diagnostics to logger. Nested compilation and
// definition reuse are logged at V(1).
func WithLogger(logger logr.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTracerProvider sets the tracer provider; the global one is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider; the global one is used otherwise.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

// WithSanitizer cleans string title and description keywords with policy.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(o *options) {
		o.sanitizer = policy
	}
}

// WithStrictSanitizer strips all markup from title and description keywords.
func WithStrictSanitizer() Option {
	return WithSanitizer(bluemonday.StrictPolicy())
}

// WithTypeRule registers a type rule ahead of the built-in table. Rules added
// earlier win over rules added later.
func WithTypeRule(rule TypeRule) Option {
	return func(o *options) {
		o.typeRules = append(o.typeRules, rule)
	}
}

// WithConstraintTranslator registers a translator consulted before the
// built-in ones.
func WithConstraintTranslator(translator ConstraintTranslator) Option {
	return func(o *options) {
		if translator != nil {
			o.translators = append(o.translators, translator)
		}
	}
}
