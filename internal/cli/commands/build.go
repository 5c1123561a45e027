package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/leapstack-labs/ferin/internal/cli/output"
	"github.com/leapstack-labs/ferin/internal/page"
	"github.com/leapstack-labs/ferin/internal/state"
	"github.com/leapstack-labs/ferin/pkg/compiler"
	"github.com/spf13/cobra"
)

// BuildOptions holds options for the build command.
type BuildOptions struct {
	NoHistory bool
}

// BuildReport is the JSON form of a build result.
type BuildReport struct {
	ID         string   `json:"id,omitempty"`
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	Status     string   `json:"status"`
	Files      []string `json:"files,omitempty"`
	Components []string `json:"components,omitempty"`
	Error      string   `json:"error,omitempty"`
	DurationMS int64    `json:"duration_ms"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	opts := &BuildOptions{}

	cmd := &cobra.Command{
		Use:   "build [file]",
		Short: "Compile a program into the output directory",
		Long: `Compile a ferin program and write the result to the output directory.

The web target writes index.html with the program inlined plus style.css.
The app target writes main.js and a package.json, ready to start with
electron. Every build is recorded in the build history.`,
		Example: `  # Build the configured entry file
  ferin build

  # Build a desktop app into a custom directory
  ferin build main.ferin --target app --out-dir out

  # Machine-readable result for CI
  ferin build -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "Do not record the build in the build history")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string, opts *BuildOptions) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	source := cc.Cfg.EntryPath(arg)

	start := time.Now()
	res, compileErr := cc.Compile(source)
	var files []string
	if compileErr == nil {
		var err error
		files, err = page.WriteDist(cmd.Context(), cc.Cfg.OutDir, res, cc.Target, projectName(cc))
		if err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	build := &state.Build{
		Source:   source,
		Target:   cc.Target.String(),
		Status:   state.BuildSucceeded,
		OutDir:   cc.Cfg.OutDir,
		Duration: elapsed,
	}
	if compileErr != nil {
		build.Status = state.BuildFailed
		build.Error = compileErr.Error()
	} else {
		build.JSBytes = len(res.JS)
		build.CSSBytes = len(res.CSS)
		build.Components = res.Components
	}
	if !opts.NoHistory {
		recordBuild(cc, build)
	}

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(BuildReport{
			ID:         build.ID,
			Source:     source,
			Target:     build.Target,
			Status:     string(build.Status),
			Files:      files,
			Components: build.Components,
			Error:      build.Error,
			DurationMS: elapsed.Milliseconds(),
		}); err != nil {
			return err
		}
		return compileErr
	}

	if compileErr != nil {
		r.StatusLine(source, "error", errorLocation(source, compileErr))
		return compileErr
	}

	r.Header(2, fmt.Sprintf("Built %s (%s)", filepath.Base(source), cc.Target))
	for _, f := range files {
		detail := ""
		if info, err := os.Stat(f); err == nil {
			detail = formatBytes(int(info.Size()))
		}
		r.StatusLine(f, "success", detail)
	}
	if len(res.Components) > 0 {
		r.Muted(fmt.Sprintf("Components: %v", res.Components))
	}
	r.Success(fmt.Sprintf("Done in %s", formatDuration(elapsed)))
	return nil
}

// recordBuild writes b to the build history. A history failure never fails
// the build itself.
func recordBuild(cc *CommandContext, b *state.Build) {
	store, err := cc.OpenStore()
	if err != nil {
		cc.Logger.Warn("build history unavailable", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.RecordBuild(b); err != nil {
		cc.Logger.Warn("failed to record build", "error", err)
	}
}

// projectName names the build output: the configured title, else the
// project directory.
func projectName(cc *CommandContext) string {
	if cc.Cfg.Title != "" {
		return cc.Cfg.Title
	}
	if cc.Cfg.ProjectRoot != "" {
		return filepath.Base(cc.Cfg.ProjectRoot)
	}
	return ""
}

// errorLocation returns "file:line:col" for compile errors that carry a
// source position.
func errorLocation(source string, err error) string {
	var cerr *compiler.Error
	if errors.As(err, &cerr) {
		if pos, ok := cerr.Position(); ok {
			return fmt.Sprintf("%s:%s", source, pos)
		}
	}
	return ""
}
