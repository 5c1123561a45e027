package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/ferin/internal/cli/config"
	"github.com/leapstack-labs/ferin/pkg/compiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		setupDir  func(t *testing.T, dir string)
		wantErr   string
		wantFiles []string
	}{
		{
			name:      "init in current directory",
			args:      []string{"init"},
			wantFiles: []string{"ferin.yaml", "main.ferin", ".gitignore"},
		},
		{
			name:      "init in new directory",
			args:      []string{"init", "todo-app"},
			wantFiles: []string{"todo-app/ferin.yaml", "todo-app/main.ferin", "todo-app/.gitignore"},
		},
		{
			name: "existing config fails without force",
			args: []string{"init"},
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "ferin.yaml"), []byte("entry: x.ferin\n"), 0600))
			},
			wantErr: "ferin.yaml already exists",
		},
		{
			name: "force overwrites existing config",
			args: []string{"init", "--force"},
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "ferin.yaml"), []byte("entry: x.ferin\n"), 0600))
			},
			wantFiles: []string{"ferin.yaml", "main.ferin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setupDir != nil {
				tt.setupDir(t, dir)
			}

			_, _, err := execute(t, dir, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			for _, f := range tt.wantFiles {
				assert.FileExists(t, filepath.Join(dir, f))
			}
		})
	}
}

func TestInitCreatesValidConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-todo_app")
	require.NoError(t, os.Mkdir(dir, 0750))

	stdout, _, err := execute(t, dir, "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"My Todo App"`)

	content, err := os.ReadFile(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)

	var pf projectFile
	require.NoError(t, yaml.Unmarshal(content, &pf))
	assert.Equal(t, "My Todo App", pf.Title)
	assert.Equal(t, config.DefaultEntry, pf.Entry)
	assert.Equal(t, "web", pf.Target)
	assert.Equal(t, config.DefaultDevPort, pf.Dev.Port)

	// the generated config loads
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	cfg, err := config.LoadConfig(filepath.Join(dir, config.ConfigFileName), nil)
	require.NoError(t, err)
	assert.Equal(t, "My Todo App", cfg.Title)
}

func TestInitTemplatesCompile(t *testing.T) {
	for _, tgt := range listTemplates() {
		t.Run(tgt, func(t *testing.T) {
			dir := t.TempDir()
			_, _, err := execute(t, dir, "init", "--target", tgt, "--title", `Quote "Me"`)
			require.NoError(t, err)

			src, err := os.ReadFile(filepath.Join(dir, config.DefaultEntry))
			require.NoError(t, err)
			assert.NotContains(t, string(src), titlePlaceholder)
			assert.Contains(t, string(src), "Quote Me")

			parsed, err := compiler.ParseTarget(tgt)
			require.NoError(t, err)
			_, err = compiler.Compile(string(src), parsed)
			require.NoError(t, err)
		})
	}
}

func TestTitleFromDir(t *testing.T) {
	tests := map[string]string{
		"todo":        "Todo",
		"my-todo_app": "My Todo App",
		"clock.app":   "Clock App",
	}
	for in, want := range tests {
		assert.Equal(t, want, titleFromDir(filepath.Join(t.TempDir(), in)))
	}
}
