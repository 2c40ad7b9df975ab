package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethpandaops/zvmtrace/types"
)

func TestReadConfigDefaults(t *testing.T) {
	cfg := &types.Config{}
	err := ReadConfig(cfg, "")
	if err != nil {
		t.Fatalf("error reading default config: %v", err)
	}

	if cfg.Trace.ShowCalls != "none" {
		t.Errorf("expected default showCalls 'none', got %q", cfg.Trace.ShowCalls)
	}
	if cfg.SignatureLookup.SourcifyBaseUrl == "" {
		t.Errorf("expected default sourcify base url")
	}
	if cfg.SignatureLookup.CacheSize != 10 {
		t.Errorf("expected default cache size of 10, got %v", cfg.SignatureLookup.CacheSize)
	}
	if cfg.SystemContracts.Source != "built-in" {
		t.Errorf("expected default contracts source 'built-in', got %q", cfg.SystemContracts.Source)
	}
}

func TestReadConfigFileWithDefaultsMerged(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yml")
	configYml := `
trace:
  showCalls: "user"
  resolveHashes: true
`
	if err := os.WriteFile(configFile, []byte(configYml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &types.Config{}
	err := ReadConfig(cfg, configFile)
	if err != nil {
		t.Fatalf("error reading config: %v", err)
	}

	if cfg.Trace.ShowCalls != "user" {
		t.Errorf("expected showCalls 'user' from file, got %q", cfg.Trace.ShowCalls)
	}
	if !cfg.Trace.ResolveHashes {
		t.Errorf("expected resolveHashes from file")
	}
	// unset values still come from the embedded defaults
	if cfg.SignatureLookup.SourcifyBaseUrl == "" {
		t.Errorf("expected default sourcify base url to be merged in")
	}
	if cfg.SystemContracts.Source != "built-in" {
		t.Errorf("expected default contracts source to be merged in, got %q", cfg.SystemContracts.Source)
	}
}

func TestReadConfigEnvOverride(t *testing.T) {
	t.Setenv("TRACE_SHOW_CALLS", "system")

	cfg := &types.Config{}
	err := ReadConfig(cfg, "")
	if err != nil {
		t.Fatalf("error reading config: %v", err)
	}

	if cfg.Trace.ShowCalls != "system" {
		t.Errorf("expected showCalls 'system' from env, got %q", cfg.Trace.ShowCalls)
	}
}

func TestReadConfigInvalidShowCalls(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yml")
	configYml := `
trace:
  showCalls: "everything"
`
	if err := os.WriteFile(configFile, []byte(configYml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &types.Config{}
	err := ReadConfig(cfg, configFile)
	if err == nil {
		t.Fatalf("expected error for invalid showCalls value")
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	cfg := &types.Config{}
	err := ReadConfig(cfg, filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
