// Package config loads and merges tokmeter configuration.
//
// The effective config is built by layering: compiled defaults, then the
// JSON config file in the platform config directory, then TOKMETER_*
// environment variables, then CLI flag overrides. A missing config file is
// not an error.
package config
