// Package embedregistry serves prompt records from an fs.FS, typically an
// embed.FS compiled into the binary. The whole {root}/{domain} tree is parsed
// once at construction, so a broken embedded file fails New at startup
// instead of surfacing on first use. Lookups afterwards read an immutable
// index and are safe for concurrent use without locking.
package embedregistry
