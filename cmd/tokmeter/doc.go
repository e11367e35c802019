// Tokmeter collects project source files into a single consolidated report
// annotated with size and token statistics, so the result can be sized
// against model context windows before being fed to an LLM.
//
// Collection results are cached by a fingerprint of the project root and the
// active pattern sets; re-running against an unchanged configuration reuses
// the cached report instead of rescanning the tree.
//
// Usage:
//
//	tokmeter collect [path]           # collect eligible files into a report
//	tokmeter collect . --include main.py,utils.py
//	tokmeter collect . --file-type '*.py' --no-cache
//	tokmeter analyze main.py          # per-file token and context analysis
//	tokmeter cache list               # show cached collection results
//	tokmeter cache clear [prefix]     # drop all (or one project's) entries
//	tokmeter config show              # print the effective configuration
package main
