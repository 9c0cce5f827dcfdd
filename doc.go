// Package promptvault provides versioned prompt template management over a
// filesystem tree. Prompts are markdown files organized by business domain,
// named {use_case}_v{major}.{minor}.md; the package resolves the latest
// version, parses heading-delimited metadata, and returns the literal
// template body with {placeholder} tokens left unresolved.
package promptvault
