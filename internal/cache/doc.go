// Package cache persists collection results so unchanged inputs are not
// rescanned or reformatted.
//
// A Store owns one cache directory (default ".code_cache") containing a
// single index.json document mapping cache keys to entries, plus one report
// artifact per entry named cache_<key>.txt. Keys have the form
// <slug>_<hash16>: the slug is a sanitized lowercase derivation of the
// project root's base name, and the hash is a truncated sha256 over the raw
// absolute root path and the sorted include/exclude/file-type pattern sets.
// Hashing the un-normalized root means two roots whose slugs collide (for
// example paths differing only in case) still produce distinct keys.
//
// A missing or corrupt index is treated as an empty cache, never as an
// error. Index writes are atomic (temp file + rename) and guarded by an
// advisory file lock so concurrent processes sharing a cache directory
// degrade to last-writer-wins rather than a torn document.
package cache
