// Package pattern decides whether a project-relative file path participates
// in a collection run.
//
// Eligibility is computed from three glob sets: include (a strict allow-list
// that overrides everything else when non-empty), file-type patterns (falling
// back to a built-in catalog of recognized source and text extensions), and
// exclude patterns (matched against the filename and against every path
// segment, so directory-shaped excludes prune whole subtrees). Hidden entries
// and a fixed set of noise directories (dependency caches, build output) are
// always rejected.
//
// All functions are pure and safe for concurrent use.
package pattern
