package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/ferin/internal/cli/config"
	"github.com/leapstack-labs/ferin/internal/cli/testutil"
	"github.com/leapstack-labs/ferin/internal/page"
	"github.com/leapstack-labs/ferin/internal/state"
	itestutil "github.com/leapstack-labs/ferin/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRoot mirrors the root command's flags and config loading.
func newTestRoot(t *testing.T) *cobra.Command {
	t.Helper()
	root := &cobra.Command{
		Use:           "ferin",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := config.LoadConfig("", cmd.Flags()); err != nil {
				return err
			}
			ctx := context.WithValue(context.Background(), config.LoggerKey(), itestutil.NewTestLogger(t))
			cmd.SetContext(ctx)
			return nil
		},
	}
	root.PersistentFlags().StringP("target", "t", "", "")
	root.PersistentFlags().String("out-dir", "", "")
	root.PersistentFlags().String("state", "", "")
	root.PersistentFlags().StringP("output", "o", "", "")

	root.AddCommand(
		NewBuildCommand(),
		NewCheckCommand(),
		NewTokensCommand(),
		NewASTCommand(),
		NewHistoryCommand(),
		NewInitCommand(),
	)
	return root
}

// execute runs the CLI in dir and returns stdout and stderr.
func execute(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	t.Chdir(dir)

	root := newTestRoot(t)
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewBuildCommand(), "build [file]", []string{"no-history"}},
		{NewRunCommand(), "run [file]", []string{"electron"}},
		{NewDevCommand(), "dev [file]", []string{"port", "open", "no-watch"}},
		{NewCheckCommand(), "check [files...]", nil},
		{NewTokensCommand(), "tokens [file]", []string{"raw"}},
		{NewASTCommand(), "ast [file]", []string{"format"}},
		{NewREPLCommand(), "repl", nil},
		{NewHistoryCommand(), "history", []string{"limit"}},
		{NewInitCommand(), "init [directory]", []string{"force", "title"}},
		{NewLSPCommand("dev"), "lsp", nil},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, tt.cmd.Long, "Long should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestBuildWeb(t *testing.T) {
	dir := testutil.SetupTestProject(t, testutil.WebProgram, "title: Hello Demo\n")

	stdout, _, err := execute(t, dir, "build")
	require.NoError(t, err)
	testutil.AssertNoANSI(t, stdout)
	assert.Contains(t, stdout, "Built main.ferin (web)")
	assert.Contains(t, stdout, page.IndexFile)
	assert.Contains(t, stdout, "Components: [App]")

	index, err := os.ReadFile(filepath.Join(dir, "dist", page.IndexFile))
	require.NoError(t, err)
	assert.Contains(t, string(index), "<title>Hello Demo</title>")
	assert.Contains(t, string(index), `render(createElement("App"`)
	assert.FileExists(t, filepath.Join(dir, "dist", page.StyleFile))
}

func TestBuildApp(t *testing.T) {
	dir := testutil.SetupTestProject(t, testutil.AppProgram, "title: Hello Demo\ntarget: app\n")

	_, _, err := execute(t, dir, "build", "--out-dir", "out")
	require.NoError(t, err)

	manifest, err := os.ReadFile(filepath.Join(dir, "out", page.PackageFile))
	require.NoError(t, err)
	var m page.Manifest
	require.NoError(t, json.Unmarshal(manifest, &m))
	assert.Equal(t, "hello-demo", m.Name)
	assert.Equal(t, page.MainFile, m.Main)

	main, err := os.ReadFile(filepath.Join(dir, "out", page.MainFile))
	require.NoError(t, err)
	assert.Contains(t, string(main), `require("electron")`)
	assert.Contains(t, string(main), "process.mount(win);")
}

func TestBuildJSONReport(t *testing.T) {
	dir := testutil.SetupTestProject(t, testutil.WebProgram, "")

	stdout, _, err := execute(t, dir, "build", "-o", "json")
	require.NoError(t, err)

	var report BuildReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "succeeded", report.Status)
	assert.Equal(t, "web", report.Target)
	assert.Equal(t, []string{"App"}, report.Components)
	assert.NotEmpty(t, report.ID)
	assert.Len(t, report.Files, 2)
}

func TestBuildFailureIsRecorded(t *testing.T) {
	dir := testutil.SetupTestProject(t, testutil.BrokenProgram, "")

	stdout, _, err := execute(t, dir, "build")
	require.Error(t, err)
	assert.Equal(t, "Compilation failed: syntax error at line 1:6: expected IDENT, got :", err.Error())
	assert.Contains(t, stdout, "main.ferin:1:6")
	assert.NoDirExists(t, filepath.Join(dir, "dist"))

	stdout, _, err = execute(t, dir, "history", "-o", "json")
	require.NoError(t, err)
	var builds []*state.Build
	require.NoError(t, json.Unmarshal([]byte(stdout), &builds))
	require.Len(t, builds, 1)
	assert.Equal(t, state.BuildFailed, builds[0].Status)
	assert.Contains(t, builds[0].Error, "syntax error")
}

func TestBuildNoHistory(t *testing.T) {
	dir := testutil.SetupTestProject(t, testutil.WebProgram, "")

	_, _, err := execute(t, dir, "build", "--no-history")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, config.DefaultStateFile))
}

func TestHistory(t *testing.T) {
	dir := testutil.SetupTestProject(t, testutil.WebProgram, "")

	stdout, _, err := execute(t, dir, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No builds recorded yet")

	for range 3 {
		_, _, err = execute(t, dir, "build")
		require.NoError(t, err)
	}

	stdout, _, err = execute(t, dir, "history", "--limit", "2")
	require.NoError(t, err)
	testutil.AssertValidMarkdown(t, stdout)
	assert.Equal(t, 2, strings.Count(stdout, "| succeeded |"))
	assert.Contains(t, stdout, "| Source |")
}

func TestCheck(t *testing.T) {
	dir := testutil.SetupTestProject(t, testutil.WebProgram, "")
	testutil.WriteFile(t, filepath.Join(dir, "broken.ferin"), testutil.BrokenProgram)

	stdout, _, err := execute(t, dir, "check")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 file(s) OK (web)")

	stdout, stderr, err := execute(t, dir, "check", "main.ferin", "broken.ferin")
	require.Error(t, err)
	assert.Equal(t, "1 of 2 file(s) failed to compile", err.Error())
	assert.Contains(t, stdout, "✓ main.ferin")
	assert.Contains(t, stdout, "✗ broken.ferin broken.ferin:1:6")
	assert.Contains(t, stderr, "expected IDENT")

	stdout, _, err = execute(t, dir, "check", "main.ferin", "--target", "app", "-o", "json")
	require.Error(t, err)
	var results []CheckResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
	assert.Contains(t, results[0].Error, "process.mount()")
	assert.Empty(t, results[0].Location)
}

func TestTokens(t *testing.T) {
	dir := testutil.SetupTestProject(t, "if a:\n  b\n", "")

	stdout, _, err := execute(t, dir, "tokens", "-o", "json")
	require.NoError(t, err)
	var tokens []TokenInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &tokens))

	var types []string
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	assert.Contains(t, types, "INDENT")
	assert.Contains(t, types, "DEDENT")
	assert.Equal(t, "IF", types[0])
	assert.Equal(t, "EOF", types[len(types)-1])

	assert.Equal(t, "keyword", tokens[0].Class)
	assert.Equal(t, 1, tokens[0].EndLine)
	assert.Equal(t, 3, tokens[0].EndColumn)
	assert.Equal(t, "operator", tokens[2].Class, "the colon")
	assert.Equal(t, "layout", tokens[3].Class, "the newline")
	assert.Equal(t, 2, tokens[3].EndLine)
	assert.Equal(t, 1, tokens[3].EndColumn)

	stdout, _, err = execute(t, dir, "tokens", "--raw", "-o", "json")
	require.NoError(t, err)
	assert.NotContains(t, stdout, `"INDENT"`)

	stdout, _, err = execute(t, dir, "tokens")
	require.NoError(t, err)
	assert.Contains(t, stdout, "| 1:1-1:3 | IF")
	assert.Contains(t, stdout, "keyword")
}

func TestAST(t *testing.T) {
	dir := testutil.SetupTestProject(t, "var x = 1\n", "")

	stdout, _, err := execute(t, dir, "ast")
	require.NoError(t, err)
	assert.Contains(t, stdout, "node: Program")
	assert.Contains(t, stdout, "node: VarDecl")
	assert.Contains(t, stdout, "Name: x")

	stdout, _, err = execute(t, dir, "ast", "--format", "json")
	require.NoError(t, err)
	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &tree))
	assert.Equal(t, "Program", tree["node"])

	_, _, err = execute(t, dir, "ast", "--format", "xml")
	require.Error(t, err)
}
