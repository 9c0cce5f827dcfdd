package markdown

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/skosovsky/promptvault"
)

// TitleField is the metadata key for the pre-section "# " heading line.
const TitleField = "Title"

// ParseBytes parses raw prompt file text and returns a Record with Metadata,
// Body, Raw, and LoadedAt populated. Identity fields (Domain, UseCase,
// Version, Path) are left for the caller to attach.
func ParseBytes(data []byte) (*promptvault.Record, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: not valid UTF-8", promptvault.ErrInvalidPrompt)
	}
	raw := string(data)
	meta := make(promptvault.Metadata)
	rest, err := splitFrontmatter(raw, meta)
	if err != nil {
		return nil, err
	}
	body, err := parseSections(rest, meta)
	if err != nil {
		return nil, err
	}
	return &promptvault.Record{
		Metadata: meta,
		Body:     body,
		Raw:      raw,
		LoadedAt: time.Now(),
	}, nil
}

// ParseFile reads and parses a prompt file.
func ParseFile(path string) (*promptvault.Record, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is validated by caller
	if err != nil {
		return nil, fmt.Errorf("markdown: read file: %w", err)
	}
	return ParseBytes(data)
}

// ParseFS reads and parses a prompt file from fs.FS (e.g. embed.FS).
func ParseFS(fsys fs.FS, name string) (*promptvault.Record, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("markdown: read fs: %w", err)
	}
	return ParseBytes(data)
}

// parseSections walks the markdown after any frontmatter, filling meta and
// returning the body of the first fenced block.
//
// A "## " line opens a metadata field named by its trimmed remainder; value
// lines are collected until the next heading or a fence line, trimmed, blanks
// dropped. A "# " line before the first section becomes the Title field. Any
// fence line toggles fence state; only the first fenced block is captured,
// verbatim. Later fence pairs still terminate the open field's value and
// contribute nothing.
func parseSections(text string, meta promptvault.Metadata) (string, error) {
	var (
		field        string   // open field name; "" when none
		fieldOpen    bool     // a "## " heading was seen and not yet flushed
		fieldLines   []string // collected value lines for the open field
		sectionSeen  bool     // any "## " heading seen so far
		inFence      bool
		bodyLines    []string
		bodyCaptured bool
		fenceSeen    bool
	)
	flush := func() {
		if !fieldOpen {
			return
		}
		meta[field] = fieldValue(fieldLines)
		field, fieldOpen, fieldLines = "", false, nil
	}
	for line := range strings.Lines(text) {
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inFence {
				inFence = false
				bodyCaptured = true
			} else {
				inFence = true
				fenceSeen = true
				flush()
			}
			continue
		}
		if inFence {
			if !bodyCaptured {
				bodyLines = append(bodyLines, line)
			}
			continue
		}
		if name, ok := strings.CutPrefix(trimmed, "## "); ok {
			flush()
			name = strings.TrimSpace(name)
			sectionSeen = true
			if name != "" {
				field, fieldOpen = name, true
			}
			continue
		}
		if title, ok := strings.CutPrefix(trimmed, "# "); ok && !sectionSeen {
			meta[TitleField] = promptvault.StringValue(strings.TrimSpace(title))
			continue
		}
		if fieldOpen && trimmed != "" {
			fieldLines = append(fieldLines, trimmed)
		}
	}
	flush()
	if inFence {
		return "", fmt.Errorf("%w: unterminated fence", promptvault.ErrInvalidPrompt)
	}
	if !fenceSeen {
		return "", fmt.Errorf("%w: missing fenced prompt body", promptvault.ErrInvalidPrompt)
	}
	return joinBody(bodyLines), nil
}

// fieldValue applies the value rules: no lines is an empty string, lines all
// carrying "-" markers are list items with a single item collapsing to a
// plain string, one unmarked line is a string, several are joined by
// newlines.
func fieldValue(lines []string) promptvault.MetaValue {
	if len(lines) == 0 {
		return promptvault.StringValue("")
	}
	items := make([]string, 0, len(lines))
	for _, l := range lines {
		marker, ok := strings.CutPrefix(l, "-")
		if !ok {
			return promptvault.StringValue(strings.Join(lines, "\n"))
		}
		items = append(items, strings.TrimSpace(marker))
	}
	if len(items) == 1 {
		return promptvault.StringValue(items[0])
	}
	return promptvault.ListValue(items)
}

// joinBody joins fenced lines verbatim, stripping at most one leading and one
// trailing blank line.
func joinBody(lines []string) string {
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
