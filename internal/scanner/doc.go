// Package scanner walks a project tree and produces the deterministic list
// of files participating in a collection run.
//
// Scan applies the pattern package to every regular file it encounters,
// prunes hidden and noise directories before descending into them, never
// follows directory symlinks, and returns absolute paths deduplicated and
// sorted ascending. Discovery errors are an expected operating condition
// (permission-restricted subtrees, concurrent removal): a missing or
// unreadable root yields an empty result, and an unreadable subtree is
// skipped, never propagated as an error.
package scanner
