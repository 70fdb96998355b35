// Package cfg handles loading compiler configuration from an optional
// dotfile, merged under CLI flags. Adapted from the teacher's
// internal/config (same upward-search-then-merge shape), retargeted
// from minifier options to the compiler's own settings: include search
// paths, predefined macros, and target arithmetic widths.
package cfg

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Options is what the rest of the compiler actually consumes, after
// merging file config under CLI flags — the compiler-options analogue
// of the teacher's minifier.Options.
type Options struct {
	IncludePaths []string
	Defines      map[string]string
	// PointerWidth is the target's pointer/long width in bytes (8 for
	// the 64-bit target this spec assumes).
	PointerWidth int
	Verbose      bool
}

// DefaultOptions returns the compiler's baseline configuration.
func DefaultOptions() Options {
	return Options{
		Defines:      map[string]string{},
		PointerWidth: 8,
	}
}

// Config is the on-disk dotfile shape. All fields are optional;
// unset fields fall back to DefaultOptions.
type Config struct {
	IncludePaths []string          `json:"includePaths,omitempty"`
	Defines      map[string]string `json:"defines,omitempty"`
	PointerWidth *int              `json:"pointerWidth,omitempty"`
	Verbose      *bool             `json:"verbose,omitempty"`
}

// ConfigFileNames are searched for, in order of preference, matching
// the teacher's ConfigFileNames convention.
var ConfigFileNames = []string{
	"goccrc.json",
	".goccrc.json",
}

// Load searches startDir and its ancestors for a config file. Returns
// nil (no error) if none is found anywhere up to the filesystem root.
func Load(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := LoadFile(path)
				return cfg, path, err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, "", nil
		}
		dir = parent
	}
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ToOptions converts c to Options, using DefaultOptions for unset fields.
func (c *Config) ToOptions() Options {
	opts := DefaultOptions()
	if c == nil {
		return opts
	}
	if len(c.IncludePaths) > 0 {
		opts.IncludePaths = c.IncludePaths
	}
	if len(c.Defines) > 0 {
		for k, v := range c.Defines {
			opts.Defines[k] = v
		}
	}
	if c.PointerWidth != nil {
		opts.PointerWidth = *c.PointerWidth
	}
	if c.Verbose != nil {
		opts.Verbose = *c.Verbose
	}
	return opts
}

// CLIOverrides carries the flags the CLI actually parsed; nil/empty
// means "not specified", so file config is left standing.
type CLIOverrides struct {
	IncludePaths []string
	Defines      map[string]string
	Verbose      bool
}

// Merge merges CLI flags over c's file-sourced options. CLI include
// paths and defines are appended to (not replacing) the config file's,
// matching the teacher's Merge's append-don't-replace treatment of
// KeepNames for an analogous "accumulate, don't clobber" list field.
func (c *Config) Merge(cli CLIOverrides) Options {
	opts := c.ToOptions()
	if len(cli.IncludePaths) > 0 {
		opts.IncludePaths = append(opts.IncludePaths, cli.IncludePaths...)
	}
	for k, v := range cli.Defines {
		opts.Defines[k] = v
	}
	if cli.Verbose {
		opts.Verbose = true
	}
	return opts
}
