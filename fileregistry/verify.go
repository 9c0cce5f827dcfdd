package fileregistry

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/skosovsky/promptvault"
	"github.com/skosovsky/promptvault/markdown"
)

// Problem is one defect found by VerifyTree.
type Problem struct {
	Path string
	Err  error
}

// VerifyTree parses every versioned prompt file under the root and returns
// one Problem per file that fails: an unparsable version token or content
// that does not parse. Files without a version suffix are not prompts and
// are ignored. A clean tree returns an empty slice.
func (r *Registry) VerifyTree(ctx context.Context) ([]Problem, error) {
	domains, err := r.ListDomains(ctx)
	if err != nil {
		return nil, err
	}
	var problems []Problem
	for _, domain := range domains {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		entries, err := r.readDomain(domain)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(r.root, domain, entry.Name())
			if _, _, perr := r.parseName(entry.Name()); perr != nil {
				if errors.Is(perr, promptvault.ErrMalformedVersion) {
					problems = append(problems, Problem{Path: path, Err: perr})
				}
				continue
			}
			if _, err := markdown.ParseFile(path); err != nil {
				problems = append(problems, Problem{Path: path, Err: err})
			}
		}
	}
	return problems, nil
}
