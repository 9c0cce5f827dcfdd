// Package watchregistry caches another registry's results with a TTL.
// Created over a directory with New, it also watches the tree through
// fsnotify and drops the cache when files change, so edits show up without
// waiting for expiry. Records are cloned on the way out; callers may mutate
// them freely.
package watchregistry
