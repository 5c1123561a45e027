package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/leapstack-labs/ferin/internal/cli/config"
	"github.com/leapstack-labs/ferin/internal/cli/output"
	"github.com/leapstack-labs/ferin/internal/state"
	"github.com/leapstack-labs/ferin/pkg/compiler"
	"github.com/leapstack-labs/ferin/pkg/target"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Target   target.Target
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	mode := output.Mode(cfg.OutputFormat)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
		Target:   cfg.BuildTarget(),
	}
}

// OpenStore opens the build history database.
// The caller must close the returned store.
func (c *CommandContext) OpenStore() (*state.SQLiteStore, error) {
	store := state.NewSQLiteStore(c.Logger)
	if err := store.Open(c.Cfg.StatePath); err != nil {
		return nil, fmt.Errorf("failed to open build history: %w", err)
	}
	return store, nil
}

// Compile reads and compiles one source file for the configured target.
func (c *CommandContext) Compile(path string) (*compiler.Result, error) {
	src, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return compiler.Compile(string(src), c.Target, compiler.WithLogger(c.Logger.With("file", path)))
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	cfg := config.Default()
	cfg.Entry = getEnvOrDefault("FERIN_ENTRY", cfg.Entry)
	cfg.Target = getEnvOrDefault("FERIN_TARGET", cfg.Target)
	cfg.OutDir = getEnvOrDefault("FERIN_OUT_DIR", cfg.OutDir)
	cfg.StatePath = getEnvOrDefault("FERIN_STATE_PATH", cfg.StatePath)
	cfg.OutputFormat = getEnvOrDefault("FERIN_OUTPUT", cfg.OutputFormat)
	cfg.Verbose = os.Getenv("FERIN_VERBOSE") == "true"
	if port, err := strconv.Atoi(os.Getenv("FERIN_DEV_PORT")); err == nil {
		cfg.Dev.Port = port
	}
	if wd, err := os.Getwd(); err == nil {
		cfg.ProjectRoot = wd
	}
	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func formatBytes(n int) string {
	return humanize.Bytes(uint64(max(n, 0)))
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	return d.Round(time.Millisecond).String()
}
