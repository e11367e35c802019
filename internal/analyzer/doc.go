// Package analyzer computes per-file size and token statistics.
//
// Analyze reads one file and reports byte size, line counts, character and
// word counts (Unicode word segmentation per UAX #29), and an estimated
// token count under two schemes: a segmentation-based count and a
// GPT-4-style heuristic. ContextUsage projects a token count onto a catalog
// of known model context windows, flagging models the content would
// overflow. The catalog ships embedded as YAML so it can be revised without
// code changes.
//
// The analyzer is independent of the collection pipeline: it is invoked for
// explicitly named files, so a missing file is an error here, not an empty
// result.
package analyzer
