package fileregistry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/skosovsky/promptvault"
)

// Ensures Registry implements promptvault.Registry.
var _ promptvault.Registry = (*Registry)(nil)

// Registry resolves prompt records from a directory tree. Domains are the
// directories directly under the root; each prompt file inside a domain is
// named {use_case}_v{major}.{minor} plus a recognized extension. Calls scan
// the tree on every invocation; nothing is cached.
type Registry struct {
	root string
	exts []string
}

// New creates a Registry over root. It fails when root does not exist or is
// not a directory.
func New(root string, opts ...Option) (*Registry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("fileregistry: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fileregistry: %s: not a directory", root)
	}
	r := &Registry{
		root: root,
		exts: []string{promptvault.DefaultExt},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Option configures a Registry.
type Option func(*Registry)

// WithExtensions replaces the extensions recognized as prompt files.
// The default is promptvault.DefaultExt alone.
func WithExtensions(exts ...string) Option {
	return func(r *Registry) { r.exts = slices.Clone(exts) }
}

// Root returns the directory the registry scans.
func (r *Registry) Root() string { return r.root }

// ListDomains returns the domain directories directly under the root, sorted
// by name.
func (r *Registry) ListDomains(ctx context.Context) ([]string, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, fmt.Errorf("fileregistry: %w", err)
	}
	domains := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			domains = append(domains, entry.Name())
		}
	}
	return domains, nil
}

// ListUseCases returns the distinct use-case names under domain, sorted.
// A missing domain yields an empty result, not an error.
func (r *Registry) ListUseCases(ctx context.Context, domain string) ([]string, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := promptvault.ValidateName(domain); err != nil {
		return nil, err
	}
	entries, err := r.readDomain(domain)
	if err != nil {
		return nil, err
	}
	var useCases []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		useCase, _, perr := r.parseName(entry.Name())
		if perr != nil {
			continue
		}
		useCases = append(useCases, useCase)
	}
	slices.Sort(useCases)
	return slices.Compact(useCases), nil
}

// ListVersions returns every well-formed version of the use case, newest
// first. Files whose version token does not parse are skipped; a missing
// domain or use case yields an empty result.
func (r *Registry) ListVersions(ctx context.Context, domain, useCase string) ([]promptvault.VersionInfo, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := promptvault.ValidateName(domain, useCase); err != nil {
		return nil, err
	}
	infos, _, err := r.scanVersions(domain, useCase)
	if err != nil {
		return nil, err
	}
	return infos, nil
}

// GetLatest returns the record with the highest version of the use case.
// When the only candidate files carry unparsable version tokens, their parse
// errors are returned instead of ErrNotFound so damage is not mistaken for
// absence.
func (r *Registry) GetLatest(ctx context.Context, domain, useCase string) (*promptvault.Record, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := promptvault.ValidateName(domain, useCase); err != nil {
		return nil, err
	}
	infos, malformed, err := r.scanVersions(domain, useCase)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		if len(malformed) > 0 {
			return nil, errors.Join(malformed...)
		}
		return nil, fmt.Errorf("%w: %s/%s", promptvault.ErrNotFound, domain, useCase)
	}
	return r.load(domain, useCase, infos[0])
}

// GetVersion returns the record matching version exactly. Like GetLatest it
// surfaces unparsable version tokens when nothing well-formed matches.
func (r *Registry) GetVersion(ctx context.Context, domain, useCase string, version promptvault.Version) (*promptvault.Record, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := promptvault.ValidateName(domain, useCase); err != nil {
		return nil, err
	}
	infos, malformed, err := r.scanVersions(domain, useCase)
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		if info.Version.Compare(version) == 0 {
			return r.load(domain, useCase, info)
		}
	}
	if len(malformed) > 0 {
		return nil, errors.Join(malformed...)
	}
	return nil, fmt.Errorf("%w: %s/%s v%s", promptvault.ErrNotFound, domain, useCase, version)
}
