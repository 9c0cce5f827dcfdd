package promptvault

import (
	"regexp"
	"slices"
)

// placeholderRE matches {placeholder} tokens: identifier-shaped names in
// single braces. Brace pairs holding anything else (JSON fragments, spaces,
// digits-first names) are template text, not placeholders.
var placeholderRE = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Placeholders returns the distinct {placeholder} names referenced in a
// prompt body, sorted ascending. It inspects only; substitution is the
// caller's responsibility.
func Placeholders(body string) []string {
	matches := placeholderRE.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	slices.Sort(names)
	return slices.Compact(names)
}
