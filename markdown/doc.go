// Package markdown parses prompt definition files into promptvault records.
// A prompt file is markdown with optional YAML frontmatter, "## " headings
// naming metadata fields, and exactly one fenced code block holding the
// literal template body. Use ParseBytes, ParseFile, or ParseFS; the body is
// mandatory and its absence fails with promptvault.ErrInvalidPrompt.
package markdown
