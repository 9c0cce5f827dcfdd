package otelpromptvault

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Option configures the wrapping Registry.
type Option func(*Registry)

// WithTracerProvider sets the provider used to create the registry tracer
// instead of the global one. A nil provider is ignored.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Registry) {
		if tp != nil {
			r.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithAttributes adds attrs to every span the registry starts.
func WithAttributes(attrs ...attribute.KeyValue) Option {
	return func(r *Registry) {
		r.attrs = append(r.attrs, attrs...)
	}
}
