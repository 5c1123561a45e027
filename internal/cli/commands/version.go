package commands

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/leapstack-labs/ferin/pkg/target"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the ferin version, the supported targets and the Go toolchain it was built with.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "ferin v%s", version)
			if rev := vcsRevision(); rev != "" {
				_, _ = fmt.Fprintf(w, " (%s)", rev)
			}
			_, _ = fmt.Fprintln(w)

			names := make([]string, 0, len(target.All()))
			for _, t := range target.All() {
				names = append(names, t.String())
			}
			_, _ = fmt.Fprintf(w, "targets: %s\n", strings.Join(names, ", "))
			_, _ = fmt.Fprintf(w, "go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

// vcsRevision returns the short commit the binary was built from, if known.
func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
