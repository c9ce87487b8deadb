// Package config loads the runtime configuration for cmd/bel-server:
// listen address, enabled feature plug-ins, cache path, and log level.
//
// The teacher's own internal/config/constants.go is a package of
// compile-time constants (source file extensions, built-in name
// strings) for a language whose configuration is entirely fixed at
// build time. This engine's ambient config is runtime-shaped (a server
// process needs a listen address and a cache path that vary per
// deployment), so that idiom is generalized here into a loadable struct
// decoded with the teacher's YAML library (gopkg.in/yaml.v3) instead of
// package-level vars.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level shape of a bel-server config file.
type Config struct {
	// ListenAddr is the gRPC service's listen address, e.g. ":9090".
	ListenAddr string `yaml:"listen_addr"`

	// CachePath is the SQLite database file backing internal/evalcache.
	// An empty path disables the cache.
	CachePath string `yaml:"cache_path"`

	// Plugins lists feature plug-ins by name: any of "regex", "time", "ip",
	// "yaml". cmd/bel-server only logs this list; it registers no plug-in
	// from it. Each request enables its own plug-ins through
	// EvaluateRequest.Plugins.
	Plugins []string `yaml:"plugins"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		ListenAddr: ":9090",
		CachePath:  "bel-cache.db",
		Plugins:    []string{"regex", "time", "ip"},
		LogLevel:   "info",
	}
}

// Load reads and decodes a YAML config file at path, starting from
// Default() so a partial file only overrides what it sets.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// HasPlugin reports whether name is listed in c.Plugins.
func (c Config) HasPlugin(name string) bool {
	for _, p := range c.Plugins {
		if p == name {
			return true
		}
	}
	return false
}
