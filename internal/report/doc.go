// Package report renders a collection result as a consolidated text
// artifact.
//
// Two layouts are available behind the Writer interface: "standard", a
// human-readable report with ruled per-file sections, and "custom", a
// machine-friendlier layout that marks each file with a "####### [idx:N]"
// header for downstream LLM ingestion. Both begin with the same header
// (project path, file count, generation time). Per-file read errors are
// recorded inline in the report rather than aborting it.
package report
