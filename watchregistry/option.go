package watchregistry

import (
	"slices"
	"time"

	"go.uber.org/zap"
)

// Option configures a Registry.
type Option func(*Registry)

// WithTTL sets how long cached results stay valid. Default is 5 minutes.
// TTL <= 0 means entries never expire, which is safe when file watching
// keeps the cache honest.
func WithTTL(d time.Duration) Option {
	return func(r *Registry) { r.ttl = d }
}

// WithLogger sets the logger for watch events. Default is zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithExtensions replaces the extensions recognized as prompt files when New
// builds the underlying scanner. Wrap ignores it.
func WithExtensions(exts ...string) Option {
	return func(r *Registry) { r.exts = slices.Clone(exts) }
}
