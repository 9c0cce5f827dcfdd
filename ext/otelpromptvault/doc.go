// Package otelpromptvault instruments a promptvault.Registry with
// OpenTelemetry tracing. Wrap any registry with New and every operation
// starts one span carrying the domain, use case, and version as attributes;
// inner errors are recorded on the span and returned unchanged.
//
// The package lives in its own module so the core library stays free of
// OpenTelemetry dependencies.
package otelpromptvault
