package fileregistry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/skosovsky/promptvault"
	"github.com/skosovsky/promptvault/markdown"
)

// readDomain lists the entries of a domain directory. A missing directory is
// not an error: the domain simply holds nothing.
func (r *Registry) readDomain(domain string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(filepath.Join(r.root, domain))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fileregistry: %w", err)
	}
	return entries, nil
}

// parseName splits a file name into use case and version using the first
// configured extension that matches. Names without one report
// promptvault.ErrNoVersion.
func (r *Registry) parseName(name string) (string, promptvault.Version, error) {
	for _, ext := range r.exts {
		if strings.HasSuffix(name, ext) {
			return promptvault.ParseFilename(name, ext)
		}
	}
	return "", promptvault.Version{}, promptvault.ErrNoVersion
}

// scanVersions collects the versioned files of one use case, sorted newest
// first with the lexicographically later file winning version ties. Files
// that carry the use-case prefix but an unparsable version token come back
// in malformed; anything else that fails to parse is ignored.
func (r *Registry) scanVersions(domain, useCase string) (infos []promptvault.VersionInfo, malformed []error, err error) {
	entries, err := r.readDomain(domain)
	if err != nil {
		return nil, nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		parsed, version, perr := r.parseName(name)
		if perr != nil {
			if errors.Is(perr, promptvault.ErrMalformedVersion) && strings.HasPrefix(name, useCase+"_v") {
				malformed = append(malformed, perr)
			}
			continue
		}
		if parsed != useCase {
			continue
		}
		fi, ierr := entry.Info()
		if ierr != nil {
			// Deleted between ReadDir and Info: treat as absent.
			continue
		}
		infos = append(infos, promptvault.VersionInfo{
			Version: version,
			Path:    filepath.Join(r.root, domain, name),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
	}
	slices.SortFunc(infos, func(a, b promptvault.VersionInfo) int {
		if c := b.Version.Compare(a.Version); c != 0 {
			return c
		}
		return strings.Compare(b.Path, a.Path)
	})
	return infos, malformed, nil
}

// load parses the file behind info and stamps the record with its registry
// identity.
func (r *Registry) load(domain, useCase string, info promptvault.VersionInfo) (*promptvault.Record, error) {
	data, err := os.ReadFile(info.Path)
	if err != nil {
		return nil, fmt.Errorf("fileregistry: %w", err)
	}
	rec, err := markdown.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", info.Path, err)
	}
	rec.Domain = domain
	rec.UseCase = useCase
	rec.Version = info.Version
	rec.Path = info.Path
	return rec, nil
}
