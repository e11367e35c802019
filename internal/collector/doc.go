// Package collector orchestrates a collection run: cache check, scan,
// report write, cache store.
//
// On a cache hit the pipeline copies the cached artifact to the requested
// output without invoking the scanner or the report writer; that bypass is
// the entire point of caching. On a miss (or with caching off) it scans,
// writes the report, and, when caching, files the result under its cache
// key. A scan that finds nothing still produces and caches a minimal
// report. Only output-side failures (cannot create or write the report)
// surface as errors; discovery problems degrade to empty scans and cache
// problems degrade to misses.
package collector
