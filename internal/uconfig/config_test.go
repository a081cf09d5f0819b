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

package uconfig

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() is not valid: %v", err)
	}
}

func TestLoadFileEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile(\"\"): %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected Default(), got %+v", cfg)
	}
}

func TestLoadFileOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "uthreads.toml")
	if err := os.WriteFile(path, []byte("quantum_usecs = 50000\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.QuantumUsecs != 50000 {
		t.Fatalf("expected QuantumUsecs 50000, got %d", cfg.QuantumUsecs)
	}
	if cfg.MaxThreads != Default().MaxThreads {
		t.Fatalf("expected MaxThreads to keep default %d, got %d", Default().MaxThreads, cfg.MaxThreads)
	}
}

func TestLoadFileMissingFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.toml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestApplyFlagsOnlyOverwritesExplicitlySet(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fv := RegisterFlags(fs)
	if err := fs.Parse([]string{"-quantum-usecs=75000"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg := fv.ApplyFlags(fs, Default())
	if cfg.QuantumUsecs != 75000 {
		t.Fatalf("expected QuantumUsecs 75000, got %d", cfg.QuantumUsecs)
	}
	if cfg.MaxThreads != Default().MaxThreads {
		t.Fatalf("expected MaxThreads untouched, got %d", cfg.MaxThreads)
	}
}

func TestValidateRejectsNonPositiveFields(t *testing.T) {
	cfg := Default()
	cfg.QuantumUsecs = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for non-positive QuantumUsecs")
	}
}
