package cfg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "goccrc.json")

	content := `{
		"includePaths": ["/usr/local/include"],
		"defines": {"DEBUG": "1"},
		"pointerWidth": 4,
		"verbose": true
	}`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if len(cfg.IncludePaths) != 1 || cfg.IncludePaths[0] != "/usr/local/include" {
		t.Errorf("IncludePaths: got %v, want [/usr/local/include]", cfg.IncludePaths)
	}
	if cfg.Defines["DEBUG"] != "1" {
		t.Errorf("Defines[DEBUG]: got %q, want \"1\"", cfg.Defines["DEBUG"])
	}
	if cfg.PointerWidth == nil || *cfg.PointerWidth != 4 {
		t.Errorf("PointerWidth: got %v, want 4", cfg.PointerWidth)
	}
	if cfg.Verbose == nil || *cfg.Verbose != true {
		t.Errorf("Verbose: got %v, want true", cfg.Verbose)
	}
}

func TestLoadSearchesParentDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "project", "src")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("failed to create dirs: %v", err)
	}

	configPath := filepath.Join(tmpDir, "project", "goccrc.json")
	if err := os.WriteFile(configPath, []byte(`{"pointerWidth": 8}`), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, foundPath, err := Load(subDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config, got nil")
	}
	if foundPath != configPath {
		t.Errorf("found config at %s, expected %s", foundPath, configPath)
	}
}

func TestLoadNoConfig(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, path, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config, got %v", cfg)
	}
	if path != "" {
		t.Errorf("expected empty path, got %s", path)
	}
}

func TestToOptionsDefaultsPointerWidth(t *testing.T) {
	cfg := &Config{}
	opts := cfg.ToOptions()
	if opts.PointerWidth != 8 {
		t.Errorf("PointerWidth: got %d, want 8 (default)", opts.PointerWidth)
	}
}

func TestMergeAppendsIncludePaths(t *testing.T) {
	cfg := &Config{IncludePaths: []string{"/opt/include"}}
	opts := cfg.Merge(CLIOverrides{IncludePaths: []string{"/tmp/include"}})

	if len(opts.IncludePaths) != 2 {
		t.Errorf("IncludePaths: got %d items, want 2", len(opts.IncludePaths))
	}
}

func TestMergeDefinesOverrideConfigFile(t *testing.T) {
	cfg := &Config{Defines: map[string]string{"DEBUG": "0"}}
	opts := cfg.Merge(CLIOverrides{Defines: map[string]string{"DEBUG": "1"}})

	if opts.Defines["DEBUG"] != "1" {
		t.Errorf("Defines[DEBUG]: got %q, want \"1\" (CLI override)", opts.Defines["DEBUG"])
	}
}

func TestMergeVerboseFlag(t *testing.T) {
	cfg := &Config{}
	opts := cfg.Merge(CLIOverrides{Verbose: true})

	if !opts.Verbose {
		t.Errorf("Verbose: got false, want true")
	}
}
