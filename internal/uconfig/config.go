// Copyright 2026 The uthreads Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package uconfig loads the Config a uthreaddemo invocation runs with: an
// optional TOML file supplying defaults, overridden by explicit flags.
// This mirrors the layering runsc/config uses — RegisterFlags populates a
// flag.FlagSet, ApplyFlags reads values back out of it — scaled down to
// the handful of knobs this scheduler actually exposes.
package uconfig

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the values uthread.NewScheduler and uthread.Init need.
type Config struct {
	QuantumUsecs int    `toml:"quantum_usecs"`
	MaxThreads   int    `toml:"max_threads"`
	StackBytes   int    `toml:"stack_bytes"`
	LogLevel     string `toml:"log_level"`
}

// Default returns a Config populated with the library's own defaults.
func Default() Config {
	return Config{
		QuantumUsecs: 100000,
		MaxThreads:   100,
		StackBytes:   4096,
		LogLevel:     "info",
	}
}

// LoadFile reads a TOML config file, starting from Default and overriding
// only the fields present in the file. An empty path is not an error and
// returns Default: callers that only want flag-driven configuration can
// pass one. A non-empty path that names no readable file is an error.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("uconfig: decode %s: %w", path, err)
	}
	return cfg, nil
}

// RegisterFlags registers flags that override whatever Config a caller
// already loaded from a file. Flags default to the zero value so that
// isFlagExplicitlySet-style detection is unnecessary: ApplyFlags only
// overwrites a field when its flag was actually visited.
func RegisterFlags(fs *flag.FlagSet) *FlagValues {
	fv := &FlagValues{}
	fs.IntVar(&fv.QuantumUsecs, "quantum-usecs", 0, "scheduler quantum in microseconds (overrides config file)")
	fs.IntVar(&fv.MaxThreads, "max-threads", 0, "thread table capacity (overrides config file)")
	fs.IntVar(&fv.StackBytes, "stack-bytes", 0, "per-thread stack buffer size (overrides config file)")
	fs.StringVar(&fv.LogLevel, "log-level", "", "logrus level: debug, info, warn, error (overrides config file)")
	return fv
}

// FlagValues holds the raw values RegisterFlags bound to a FlagSet.
type FlagValues struct {
	QuantumUsecs int
	MaxThreads   int
	StackBytes   int
	LogLevel     string
}

// ApplyFlags overlays explicitly-set flags from fs onto cfg, returning the
// merged Config. Flags left at their zero value are treated as unset.
func (fv *FlagValues) ApplyFlags(fs *flag.FlagSet, cfg Config) Config {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "quantum-usecs":
			cfg.QuantumUsecs = fv.QuantumUsecs
		case "max-threads":
			cfg.MaxThreads = fv.MaxThreads
		case "stack-bytes":
			cfg.StackBytes = fv.StackBytes
		case "log-level":
			cfg.LogLevel = fv.LogLevel
		}
	})
	return cfg
}

// Validate rejects a Config with nonsensical knobs before it reaches
// uthread.NewScheduler / Init.
func (c Config) Validate() error {
	if c.QuantumUsecs <= 0 {
		return fmt.Errorf("uconfig: quantum_usecs must be positive, got %d", c.QuantumUsecs)
	}
	if c.MaxThreads <= 0 {
		return fmt.Errorf("uconfig: max_threads must be positive, got %d", c.MaxThreads)
	}
	if c.StackBytes <= 0 {
		return fmt.Errorf("uconfig: stack_bytes must be positive, got %d", c.StackBytes)
	}
	return nil
}

// envOverride allows a config path to be supplied via environment as a
// convenience for containerized runs, mirroring XDG-style environment
// lookups elsewhere in the pack without adding a dependency for it.
func envOverride(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// DefaultConfigPath returns the config file path to use when a caller
// hasn't specified one explicitly: the UTHREADS_CONFIG environment
// variable if set, otherwise the empty string (flags and defaults only).
func DefaultConfigPath() string {
	return envOverride("UTHREADS_CONFIG", "")
}
