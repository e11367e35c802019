// Package cli wires the tokmeter commands: collect, analyze, cache
// (list/clear), config (show/init), and version. Commands resolve their
// effective configuration through the config package (defaults, file, env,
// flags) and exit with deterministic status codes.
package cli
