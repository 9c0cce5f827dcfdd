package otelpromptvault

import (
	"context"
	"slices"

	"github.com/skosovsky/promptvault"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope reported on every span.
const tracerName = "github.com/skosovsky/promptvault/ext/otelpromptvault"

// Span attribute keys.
const (
	AttrDomain  = attribute.Key("promptvault.domain")
	AttrUseCase = attribute.Key("promptvault.use_case")
	AttrVersion = attribute.Key("promptvault.version")
)

// Registry wraps an inner promptvault.Registry with one span per operation.
type Registry struct {
	inner  promptvault.Registry
	tracer trace.Tracer
	attrs  []attribute.KeyValue
}

// Ensures Registry implements promptvault.Registry.
var _ promptvault.Registry = (*Registry)(nil)

// New wraps inner. Without options the tracer comes from the global
// otel.GetTracerProvider().
func New(inner promptvault.Registry, opts ...Option) *Registry {
	r := &Registry{inner: inner}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracer == nil {
		r.tracer = otel.GetTracerProvider().Tracer(tracerName)
	}
	return r
}

// ListDomains implements promptvault.Registry.
func (r *Registry) ListDomains(ctx context.Context) (_ []string, err error) {
	ctx, end := r.start(ctx, "promptvault.ListDomains")
	defer func() { end(err) }()
	return r.inner.ListDomains(ctx)
}

// ListUseCases implements promptvault.Registry.
func (r *Registry) ListUseCases(ctx context.Context, domain string) (_ []string, err error) {
	ctx, end := r.start(ctx, "promptvault.ListUseCases", AttrDomain.String(domain))
	defer func() { end(err) }()
	return r.inner.ListUseCases(ctx, domain)
}

// ListVersions implements promptvault.Registry.
func (r *Registry) ListVersions(ctx context.Context, domain, useCase string) (_ []promptvault.VersionInfo, err error) {
	ctx, end := r.start(ctx, "promptvault.ListVersions",
		AttrDomain.String(domain), AttrUseCase.String(useCase))
	defer func() { end(err) }()
	return r.inner.ListVersions(ctx, domain, useCase)
}

// GetLatest implements promptvault.Registry.
func (r *Registry) GetLatest(ctx context.Context, domain, useCase string) (_ *promptvault.Record, err error) {
	ctx, end := r.start(ctx, "promptvault.GetLatest",
		AttrDomain.String(domain), AttrUseCase.String(useCase))
	defer func() { end(err) }()
	return r.inner.GetLatest(ctx, domain, useCase)
}

// GetVersion implements promptvault.Registry.
func (r *Registry) GetVersion(ctx context.Context, domain, useCase string, version promptvault.Version) (_ *promptvault.Record, err error) {
	ctx, end := r.start(ctx, "promptvault.GetVersion",
		AttrDomain.String(domain), AttrUseCase.String(useCase), AttrVersion.String(version.String()))
	defer func() { end(err) }()
	return r.inner.GetVersion(ctx, domain, useCase, version)
}

// start opens a span and returns the derived context plus a completion func
// that records err, if non-nil, before ending the span.
func (r *Registry) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := r.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(slices.Concat(r.attrs, attrs)...))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
