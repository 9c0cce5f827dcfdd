package markdown

import (
	"fmt"
	"strings"

	"github.com/skosovsky/promptvault"
	"github.com/skosovsky/promptvault/internal/cast"

	"gopkg.in/yaml.v3"
)

// splitFrontmatter strips an optional leading YAML frontmatter block
// ("---" ... "---") from raw, decoding its fields into meta, and returns the
// remaining text. Files without a "---" first line pass through untouched.
// A "---" first line with no closing delimiter is a parse failure, as is YAML
// that does not decode to scalar or scalar-list fields.
func splitFrontmatter(raw string, meta promptvault.Metadata) (string, error) {
	first, rest, hasMore := strings.Cut(raw, "\n")
	if !hasMore || strings.TrimSpace(first) != "---" {
		return raw, nil
	}
	body := rest
	for {
		line, remainder, found := strings.Cut(body, "\n")
		if strings.TrimSpace(line) == "---" {
			if err := decodeFrontmatter(rest[:len(rest)-len(body)], meta); err != nil {
				return "", err
			}
			if !found {
				return "", nil
			}
			return remainder, nil
		}
		if !found {
			return "", fmt.Errorf("%w: unterminated frontmatter", promptvault.ErrInvalidPrompt)
		}
		body = remainder
	}
}

func decodeFrontmatter(block string, meta promptvault.Metadata) error {
	var fields map[string]any
	if err := yaml.Unmarshal([]byte(block), &fields); err != nil {
		return fmt.Errorf("%w: frontmatter: %w", promptvault.ErrInvalidPrompt, err)
	}
	for k, v := range fields {
		if s, ok := cast.ToString(v); ok {
			meta[k] = promptvault.StringValue(s)
			continue
		}
		if list, ok := cast.ToStringList(v); ok {
			meta[k] = promptvault.ListValue(list)
			continue
		}
		return fmt.Errorf("%w: frontmatter field %q has an unsupported value", promptvault.ErrInvalidPrompt, k)
	}
	return nil
}
