package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/ferin/pkg/target"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0600))
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("target", "", "")
	flags.String("out-dir", "", "")
	flags.String("state", "", "")
	flags.String("output", "", "")
	flags.Bool("verbose", false, "")
	flags.Int("port", 0, "")
	flags.Bool("open", false, "")
	flags.Bool("no-watch", false, "")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultEntry, cfg.Entry)
	assert.Equal(t, DefaultTarget, cfg.Target)
	assert.Equal(t, filepath.Join(dir, DefaultOutDir), cfg.OutDir)
	assert.Equal(t, filepath.Join(dir, DefaultStateFile), cfg.StatePath)
	assert.Equal(t, DefaultDevPort, cfg.Dev.Port)
	assert.True(t, cfg.Dev.Watch)
	assert.Equal(t, 100*time.Millisecond, cfg.Dev.Debounce())
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_FileSearchedUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
entry: app.ferin
target: app
out_dir: build
dev:
  port: 4000
  debounce_ms: 250
`)
	sub := filepath.Join(root, "src", "views")
	require.NoError(t, os.MkdirAll(sub, 0750))
	t.Chdir(sub)
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "app.ferin", cfg.Entry)
	assert.Equal(t, target.App, cfg.BuildTarget())
	assert.Equal(t, filepath.Join(root, "build"), cfg.OutDir)
	assert.Equal(t, 4000, cfg.Dev.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Dev.Debounce())
	assert.Equal(t, filepath.Join(root, "app.ferin"), cfg.EntryPath(""))
	assert.Equal(t, "other.ferin", cfg.EntryPath("other.ferin"))
	assert.Equal(t, root, cfg.ProjectRoot)
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "target: web\noutput: text\ndev:\n  port: 4000\n")
	t.Chdir(dir)
	t.Setenv("FERIN_TARGET", "app")
	t.Setenv("FERIN_DEV_PORT", "5000")
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "app", cfg.Target, "env overrides file")
	assert.Equal(t, 5000, cfg.Dev.Port)
	assert.Equal(t, "text", cfg.OutputFormat)

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--target", "web", "--port", "6000", "--state", "ledger.db", "--no-watch"}))
	cfg, err = LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "web", cfg.Target, "flags override env")
	assert.Equal(t, 6000, cfg.Dev.Port)
	assert.Equal(t, filepath.Join(dir, "ledger.db"), cfg.StatePath)
	assert.False(t, cfg.Dev.Watch)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	other := filepath.Join(dir, "conf")
	require.NoError(t, os.MkdirAll(other, 0750))
	path := filepath.Join(other, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("out_dir: ${FERIN_TEST_OUT}\n"), 0600))
	t.Setenv("FERIN_TEST_OUT", "public")
	t.Chdir(dir)
	ResetConfig()

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, GetConfigFileUsed())
	assert.Equal(t, filepath.Join(other, "public"), cfg.OutDir)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errSub  string
	}{
		{"unknown target", "target: tv\n", "invalid target"},
		{"bad output", "output: html\n", "invalid output format"},
		{"bad port", "dev:\n  port: 70000\n", "dev.port"},
		{"empty entry", "entry: \"\"\n", "entry is required"},
		{"malformed yaml", "target: [web\n", "error reading config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			t.Chdir(dir)
			ResetConfig()

			_, err := LoadConfig("", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSub)
		})
	}
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	logger := slog.New(slog.DiscardHandler)
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
