package commands

import (
	"fmt"

	"github.com/leapstack-labs/ferin/internal/cli/output"
	"github.com/leapstack-labs/ferin/internal/jscheck"
	"github.com/spf13/cobra"
)

// CheckResult is the outcome of checking one file.
type CheckResult struct {
	File     string `json:"file"`
	OK       bool   `json:"ok"`
	Location string `json:"location,omitempty"`
	Error    string `json:"error,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Compile files without writing output",
		Long: `Compile one or more ferin files and report errors without writing
anything. The generated JavaScript and stylesheet are also parsed to make
sure they are well formed.

Exits non-zero when any file fails.`,
		Example: `  # Check the configured entry file
  ferin check

  # Check several files for the app target
  ferin check main.ferin window.ferin --target app`,
		RunE: runCheck,
	}
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	files := args
	if len(files) == 0 {
		files = []string{cc.Cfg.EntryPath("")}
	}

	results := make([]CheckResult, 0, len(files))
	failed := 0
	for _, f := range files {
		res := checkFile(cc, f)
		if !res.OK {
			failed++
		}
		results = append(results, res)
	}

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			if res.OK {
				r.StatusLine(res.File, "success", "")
				continue
			}
			r.StatusLine(res.File, "error", res.Location)
			r.Error("  " + res.Error)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed to compile", failed, len(files))
	}
	if r.EffectiveMode() != output.ModeJSON {
		r.Success(fmt.Sprintf("%d file(s) OK (%s)", len(files), cc.Target))
	}
	return nil
}

func checkFile(cc *CommandContext, file string) CheckResult {
	res, err := cc.Compile(file)
	if err == nil {
		err = jscheck.JS(res.JS, file)
	}
	if err == nil && res.HasCSS() {
		err = jscheck.CSS(res.CSS, file)
	}
	if err != nil {
		return CheckResult{File: file, Location: errorLocation(file, err), Error: err.Error()}
	}
	return CheckResult{File: file, OK: true}
}
