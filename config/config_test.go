package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-uvm/uvm/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	if cfg.Execution.MaxCycles != 0 {
		t.Errorf("MaxCycles = %d, want 0", cfg.Execution.MaxCycles)
	}
	if cfg.Display.NumberFormat != "hex" {
		t.Errorf("NumberFormat = %q, want hex", cfg.Display.NumberFormat)
	}
}

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.toml")
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Execution.MaxCycles != 0 {
		t.Errorf("MaxCycles = %d, want 0", cfg.Execution.MaxCycles)
	}
}

func TestLoadFrom_OverlaysFileOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
[execution]
max_cycles = 1000

[trace]
include_registers = true
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Execution.MaxCycles != 1000 {
		t.Errorf("MaxCycles = %d, want 1000", cfg.Execution.MaxCycles)
	}
	if !cfg.Trace.IncludeRegisters {
		t.Error("IncludeRegisters = false, want true")
	}
	if cfg.Display.NumberFormat != "hex" {
		t.Errorf("NumberFormat = %q, want hex (untouched default)", cfg.Display.NumberFormat)
	}
}

func TestSaveTo_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := config.DefaultConfig()
	cfg.Execution.MaxCycles = 42

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.Execution.MaxCycles != 42 {
		t.Errorf("MaxCycles = %d, want 42", loaded.Execution.MaxCycles)
	}
}
