package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/avelis/tokmeter/internal/cache"
	"github.com/avelis/tokmeter/internal/report"
)

// Config represents the tokmeter configuration.
type Config struct {
	Format    string      `json:"format"`
	Exclude   []string    `json:"exclude,omitempty"`
	FileTypes []string    `json:"fileTypes,omitempty"`
	Cache     CacheConfig `json:"cache"`
}

// CacheConfig controls collection caching.
type CacheConfig struct {
	Enabled bool   `json:"enabled"`
	Dir     string `json:"dir,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Format: report.FormatStandard,
		Cache: CacheConfig{
			Enabled: true,
			Dir:     cache.DefaultDirName,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for tokmeter.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tokmeter"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "tokmeter"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "tokmeter"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "tokmeter"), nil
	default:
		return filepath.Join(home, ".config", "tokmeter"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil
// error if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags (only non-zero values
// should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Format != "" {
		dst.Format = src.Format
	}
	if len(src.Exclude) > 0 {
		dst.Exclude = src.Exclude
	}
	if len(src.FileTypes) > 0 {
		dst.FileTypes = src.FileTypes
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	// JSON's zero value for bool cannot distinguish "unset" from "false",
	// so a file can only re-enable caching here; disabling is done via
	// TOKMETER_CACHE=false or --no-cache.
	dst.Cache.Enabled = src.Cache.Enabled || dst.Cache.Enabled
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("TOKMETER_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("TOKMETER_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("TOKMETER_CACHE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Cache.Enabled = b
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if v := overrides["format"]; v != "" {
		cfg.Format = v
	}
	if v := overrides["cacheDir"]; v != "" {
		cfg.Cache.Dir = v
	}
	if v := overrides["cache"]; v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Cache.Enabled = b
		}
	}
}
