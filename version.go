package promptvault

import (
	"cmp"
	"strconv"
	"strings"
)

// DefaultExt is the filename extension for prompt files.
const DefaultExt = ".md"

// Version identifies a prompt revision as a (major, minor) pair of
// non-negative integers. Ordering is numeric by major, then minor, never
// lexicographic and never derived from file timestamps.
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
}

// String renders the version as "major.minor", e.g. "2.1".
func (v Version) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}

// Compare returns -1, 0, or 1 comparing v to other numerically.
func (v Version) Compare(other Version) int {
	if c := cmp.Compare(v.Major, other.Major); c != 0 {
		return c
	}
	return cmp.Compare(v.Minor, other.Minor)
}

// ParseVersion parses a version token: "2" or "2.1". A missing minor part
// defaults to 0. Anything else (empty token, non-numeric parts, extra
// dots) fails with a VersionError matching ErrMalformedVersion.
func ParseVersion(token string) (Version, error) {
	majTok, minTok, hasMinor := strings.Cut(token, ".")
	major, ok := parseVersionPart(majTok)
	if !ok {
		return Version{}, &VersionError{Token: token, Err: ErrMalformedVersion}
	}
	if !hasMinor {
		return Version{Major: major}, nil
	}
	minor, ok := parseVersionPart(minTok)
	if !ok {
		return Version{}, &VersionError{Token: token, Err: ErrMalformedVersion}
	}
	return Version{Major: major, Minor: minor}, nil
}

// parseVersionPart accepts decimal digits only: no signs, spaces, or dots.
func parseVersionPart(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseFilename splits a versioned prompt base name, e.g.
// "email_response_v2.1.md" into ("email_response", Version{2, 1}).
// ext must match the trailing extension (DefaultExt for .md files).
//
// Names that do not follow the {use_case}_v{version}{ext} convention at all
// fail with ErrNoVersion and are skipped silently by scanners. Names that
// carry a "_v" marker with an absent or non-numeric token fail with a
// VersionError matching ErrMalformedVersion.
func ParseFilename(name, ext string) (useCase string, v Version, err error) {
	if ext == "" || !strings.HasSuffix(name, ext) {
		return "", Version{}, ErrNoVersion
	}
	stem := strings.TrimSuffix(name, ext)
	idx := strings.LastIndex(stem, "_v")
	if idx <= 0 {
		return "", Version{}, ErrNoVersion
	}
	token := stem[idx+2:]
	v, err = ParseVersion(token)
	if err != nil {
		return "", Version{}, &VersionError{Filename: name, Token: token, Err: ErrMalformedVersion}
	}
	return stem[:idx], v, nil
}
