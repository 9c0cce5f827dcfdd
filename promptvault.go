package promptvault

import (
	"context"
	"slices"
	"time"
)

// MetaValue is a sealed interface for metadata field values. Only package types
// implement it via isMetaValue(): a field is either a StringValue or a ListValue.
type MetaValue interface {
	isMetaValue()
}

// StringValue holds a single-line or joined multi-line field value.
type StringValue string

func (StringValue) isMetaValue() {}

// ListValue holds an ordered list field value, one entry per "- " marker line.
type ListValue []string

func (ListValue) isMetaValue() {}

// Metadata maps field names to their values. Keys are heading text verbatim
// (e.g. "Business Unit", "Status"); fields absent from the source file are
// absent from the map, never defaulted.
type Metadata map[string]MetaValue

// Has reports whether the field is present.
func (m Metadata) Has(field string) bool {
	_, ok := m[field]
	return ok
}

// GetString returns the field as a string. Reports false when the field is
// absent or is a ListValue.
func (m Metadata) GetString(field string) (string, bool) {
	v, ok := m[field].(StringValue)
	return string(v), ok
}

// GetList returns the field as a list. Reports false when the field is
// absent or is a StringValue.
func (m Metadata) GetList(field string) ([]string, bool) {
	v, ok := m[field].(ListValue)
	return v, ok
}

// Fields returns the present field names, sorted ascending.
func (m Metadata) Fields() []string {
	fields := make([]string, 0, len(m))
	for k := range m {
		fields = append(fields, k)
	}
	slices.Sort(fields)
	return fields
}

// Record is the parsed result of one prompt file.
// Body is the literal template text with {placeholder} tokens left unresolved;
// substitution is the caller's responsibility.
// JSON tags shape serialized output (e.g. promptctl --json); Raw is excluded
// because it duplicates Metadata and Body.
type Record struct {
	Domain   string    `json:"domain"`
	UseCase  string    `json:"use_case"`
	Version  Version   `json:"version"`
	Path     string    `json:"path"`
	Metadata Metadata  `json:"metadata"`
	Body     string    `json:"body"`
	Raw      string    `json:"-"`
	LoadedAt time.Time `json:"loaded_at"`
}

// CloneRecord returns a copy of the record with cloned map and slice fields.
// Caching registries use this so callers cannot mutate the cached record.
func CloneRecord(rec *Record) *Record {
	if rec == nil {
		return nil
	}
	out := *rec
	if rec.Metadata != nil {
		out.Metadata = make(Metadata, len(rec.Metadata))
		for k, v := range rec.Metadata {
			if lv, ok := v.(ListValue); ok {
				v = ListValue(slices.Clone(lv))
			}
			out.Metadata[k] = v
		}
	}
	return &out
}

// VersionInfo describes one discovered prompt file without parsing its content.
// Size and ModTime are informational, never used for version ordering.
type VersionInfo struct {
	Version Version   `json:"version"`
	Path    string    `json:"path"`
	Size    int64     `json:"size_bytes"`
	ModTime time.Time `json:"modified_at"`
}

// Registry answers listing and retrieval queries over a versioned prompt tree.
// List operations degrade to empty results when the domain or use case does
// not exist; get operations return ErrNotFound.
type Registry interface {
	ListDomains(ctx context.Context) ([]string, error)
	ListUseCases(ctx context.Context, domain string) ([]string, error)
	ListVersions(ctx context.Context, domain, useCase string) ([]VersionInfo, error)
	GetLatest(ctx context.Context, domain, useCase string) (*Record, error)
	GetVersion(ctx context.Context, domain, useCase string, version Version) (*Record, error)
}
