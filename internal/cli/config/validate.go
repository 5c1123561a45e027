package config

import (
	"fmt"
	"slices"

	"github.com/leapstack-labs/ferin/internal/cli/output"
	"github.com/leapstack-labs/ferin/pkg/target"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Entry == "" {
		return fmt.Errorf("entry is required")
	}
	if _, err := target.Parse(c.Target); err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}
	if c.OutputFormat != "" && !slices.Contains(output.Modes, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (expected one of %v)", c.OutputFormat, output.Modes)
	}
	if c.Dev.Port < 1 || c.Dev.Port > 65535 {
		return fmt.Errorf("dev.port must be between 1 and 65535, got %d", c.Dev.Port)
	}
	return nil
}

// BuildTarget returns the parsed compilation target.
func (c *Config) BuildTarget() target.Target {
	t, err := target.Parse(c.Target)
	if err != nil {
		return target.Web
	}
	return t
}
