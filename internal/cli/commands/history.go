package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/leapstack-labs/ferin/internal/cli/output"
	"github.com/leapstack-labs/ferin/internal/state"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent builds",
		Long: `List recent builds from the build history, newest first.

Each row shows the source file, target, outcome, output size and how long
the build took.`,
		Example: `  # Last 20 builds
  ferin history

  # Last 5 builds as JSON
  ferin history --limit 5 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(NewCommandContext(cmd), limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of builds to show")

	return cmd
}

func runHistory(cc *CommandContext, limit int) error {
	store, err := cc.OpenStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	builds, err := store.ListBuilds(limit)
	if err != nil {
		return err
	}

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		if builds == nil {
			builds = []*state.Build{}
		}
		return r.JSON(builds)
	}

	if len(builds) == 0 {
		r.Muted("No builds recorded yet. Run `ferin build` first.")
		return nil
	}

	rows := make([][]any, 0, len(builds))
	for _, b := range builds {
		size := "-"
		if b.Status == state.BuildSucceeded {
			size = formatBytes(b.JSBytes + b.CSSBytes)
		}
		rows = append(rows, []any{
			shortID(b.ID),
			humanize.Time(b.CreatedAt),
			filepath.Base(b.Source),
			b.Target,
			string(b.Status),
			size,
			formatDuration(b.Duration),
		})
	}
	r.Table([]string{"ID", "When", "Source", "Target", "Status", "Size", "Duration"}, rows)

	if latest := builds[0]; latest.Status == state.BuildFailed {
		r.Muted(fmt.Sprintf("Latest build failed: %s", firstLine(latest.Error)))
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
