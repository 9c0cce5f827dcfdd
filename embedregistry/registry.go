package embedregistry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/skosovsky/promptvault"
	"github.com/skosovsky/promptvault/markdown"
)

// Ensures Registry implements promptvault.Registry.
var _ promptvault.Registry = (*Registry)(nil)

// entry pairs a parsed record with its version listing data.
type entry struct {
	info promptvault.VersionInfo
	rec  *promptvault.Record
}

// Registry holds every record of an fs.FS tree, indexed at construction.
// The index never changes afterwards, so no locking is needed.
type Registry struct {
	domains  []string
	useCases map[string][]string
	entries  map[string][]entry
	exts     []string
}

// Option configures a Registry.
type Option func(*Registry)

// WithExtensions replaces the extensions recognized as prompt files.
// The default is promptvault.DefaultExt alone.
func WithExtensions(exts ...string) Option {
	return func(r *Registry) { r.exts = slices.Clone(exts) }
}

// New indexes every {root}/{domain}/{use_case}_v{version} file in fsys.
// Files without a recognized extension or a version suffix are skipped;
// files with an unparsable version token or unparsable content fail New,
// since an embedded tree is fixed at build time and deserves to break loudly.
func New(fsys fs.FS, root string, opts ...Option) (*Registry, error) {
	r := &Registry{
		useCases: make(map[string][]string),
		entries:  make(map[string][]entry),
		exts:     []string{promptvault.DefaultExt},
	}
	for _, opt := range opts {
		opt(r)
	}
	dirs, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("embedregistry: %w", err)
	}
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		if err := r.indexDomain(fsys, root, dir.Name()); err != nil {
			return nil, err
		}
		r.domains = append(r.domains, dir.Name())
	}
	for key := range r.entries {
		slices.SortFunc(r.entries[key], func(a, b entry) int {
			if c := b.info.Version.Compare(a.info.Version); c != 0 {
				return c
			}
			return strings.Compare(b.info.Path, a.info.Path)
		})
	}
	for domain, useCases := range r.useCases {
		slices.Sort(useCases)
		r.useCases[domain] = slices.Compact(useCases)
	}
	return r, nil
}

func (r *Registry) indexDomain(fsys fs.FS, root, domain string) error {
	files, err := fs.ReadDir(fsys, path.Join(root, domain))
	if err != nil {
		return fmt.Errorf("embedregistry: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		useCase, version, perr := r.parseName(f.Name())
		if perr != nil {
			if errors.Is(perr, promptvault.ErrMalformedVersion) {
				return fmt.Errorf("embedregistry: %s: %w", domain, perr)
			}
			continue
		}
		p := path.Join(root, domain, f.Name())
		rec, err := markdown.ParseFS(fsys, p)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		fi, err := f.Info()
		if err != nil {
			return fmt.Errorf("embedregistry: %w", err)
		}
		rec.Domain = domain
		rec.UseCase = useCase
		rec.Version = version
		rec.Path = p
		key := domain + "/" + useCase
		r.useCases[domain] = append(r.useCases[domain], useCase)
		r.entries[key] = append(r.entries[key], entry{
			info: promptvault.VersionInfo{Version: version, Path: p, Size: fi.Size(), ModTime: fi.ModTime()},
			rec:  rec,
		})
	}
	return nil
}

// parseName splits a file name into use case and version using the first
// configured extension that matches.
func (r *Registry) parseName(name string) (string, promptvault.Version, error) {
	for _, ext := range r.exts {
		if strings.HasSuffix(name, ext) {
			return promptvault.ParseFilename(name, ext)
		}
	}
	return "", promptvault.Version{}, promptvault.ErrNoVersion
}

// ListDomains returns the indexed domains, sorted by name.
func (r *Registry) ListDomains(ctx context.Context) ([]string, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return slices.Clone(r.domains), nil
}

// ListUseCases returns the distinct use-case names under domain, sorted.
// An unknown domain yields an empty result, not an error.
func (r *Registry) ListUseCases(ctx context.Context, domain string) ([]string, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return slices.Clone(r.useCases[domain]), nil
}

// ListVersions returns every version of the use case, newest first.
func (r *Registry) ListVersions(ctx context.Context, domain, useCase string) ([]promptvault.VersionInfo, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	ents := r.entries[domain+"/"+useCase]
	if len(ents) == 0 {
		return nil, nil
	}
	infos := make([]promptvault.VersionInfo, 0, len(ents))
	for _, e := range ents {
		infos = append(infos, e.info)
	}
	return infos, nil
}

// GetLatest returns a copy of the record with the highest version.
func (r *Registry) GetLatest(ctx context.Context, domain, useCase string) (*promptvault.Record, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	ents := r.entries[domain+"/"+useCase]
	if len(ents) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", promptvault.ErrNotFound, domain, useCase)
	}
	return promptvault.CloneRecord(ents[0].rec), nil
}

// GetVersion returns a copy of the record matching version exactly.
func (r *Registry) GetVersion(ctx context.Context, domain, useCase string, version promptvault.Version) (*promptvault.Record, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	for _, e := range r.entries[domain+"/"+useCase] {
		if e.info.Version.Compare(version) == 0 {
			return promptvault.CloneRecord(e.rec), nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s v%s", promptvault.ErrNotFound, domain, useCase, version)
}
