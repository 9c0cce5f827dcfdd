package promptvault

import (
	"errors"
	"fmt"
)

// Sentinel errors for scanning and retrieval operations.
// All use prefix "promptvault:" for identification. Callers should use errors.Is/errors.As.
var (
	// ErrNotFound indicates the requested domain, use case, or version has no
	// matching file. Returned by get operations; list operations degrade to
	// empty results instead.
	ErrNotFound = errors.New("promptvault: prompt not found")
	// ErrNoVersion indicates a filename that does not follow the
	// {use_case}_v{major}.{minor} convention. Scanners skip such files silently.
	ErrNoVersion = errors.New("promptvault: filename has no version token")
	// ErrMalformedVersion indicates a version token that is present but empty
	// or non-numeric. Scanners skip the file and continue; get operations
	// surface it when every candidate is malformed.
	ErrMalformedVersion = errors.New("promptvault: malformed version token")
	// ErrInvalidPrompt indicates prompt file content that cannot be parsed:
	// missing or unterminated body fence, invalid UTF-8, bad frontmatter.
	ErrInvalidPrompt = errors.New("promptvault: prompt file is malformed")
	// ErrInvalidName indicates a domain or use-case name unsafe to join into
	// a filesystem path.
	ErrInvalidName = errors.New("promptvault: invalid name")
)

// VersionError wraps a sentinel error with filename and token context.
// Use errors.Is(err, ErrMalformedVersion) and errors.As(err, &versionErr) to inspect.
type VersionError struct {
	Filename string // base name of the offending file; empty for bare tokens
	Token    string
	Err      error
}

// Error implements error.
func (e *VersionError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("promptvault: version token %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("promptvault: version token %q in filename %q: %v", e.Token, e.Filename, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/errors.As.
func (e *VersionError) Unwrap() error { return e.Err }

// Compile-time check that VersionError implements error.
var _ error = (*VersionError)(nil)
