// Package config provides configuration management for the ferin CLI.
//
// Values are layered: defaults, then ferin.yaml, then FERIN_* environment
// variables, then flags that were explicitly set on the command line.
package config

import "time"

// Config file names, in lookup order.
const (
	ConfigFileName    = "ferin.yaml"
	ConfigFileNameAlt = "ferin.yml"
)

// Default configuration values.
const (
	DefaultEntry      = "main.ferin"
	DefaultTarget     = "web"
	DefaultOutDir     = "dist"
	DefaultStateFile  = ".ferin/state.db"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultDevPort    = 3000
	DefaultDebounceMS = 100
)

// DevConfig holds configuration for the development server.
type DevConfig struct {
	Port       int  `koanf:"port"`
	Watch      bool `koanf:"watch"`
	Open       bool `koanf:"open"`
	DebounceMS int  `koanf:"debounce_ms"`
}

// Debounce returns the file watcher debounce interval.
func (d DevConfig) Debounce() time.Duration {
	if d.DebounceMS <= 0 {
		return DefaultDebounceMS * time.Millisecond
	}
	return time.Duration(d.DebounceMS) * time.Millisecond
}

// Config holds all CLI configuration options.
type Config struct {
	Title        string    `koanf:"title"`
	Entry        string    `koanf:"entry"`
	Target       string    `koanf:"target"`
	OutDir       string    `koanf:"out_dir"`
	StatePath    string    `koanf:"state_path"`
	Verbose      bool      `koanf:"verbose"`
	OutputFormat string    `koanf:"output"`
	Dev          DevConfig `koanf:"dev"`

	// ProjectRoot is the directory holding the config file, or the working
	// directory when there is none. Relative paths resolve against it.
	ProjectRoot string `koanf:"-"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Entry:        DefaultEntry,
		Target:       DefaultTarget,
		OutDir:       DefaultOutDir,
		StatePath:    DefaultStateFile,
		OutputFormat: DefaultOutput,
		Dev: DevConfig{
			Port:       DefaultDevPort,
			Watch:      true,
			DebounceMS: DefaultDebounceMS,
		},
	}
}
