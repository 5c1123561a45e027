package commands

import (
	"github.com/leapstack-labs/ferin/internal/cli/config"
	"github.com/leapstack-labs/ferin/internal/lsp"
	"github.com/spf13/cobra"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the LSP server for editor integration.

The server communicates over stdin/stdout using JSON-RPC.
With --verbose the protocol traffic is traced to stderr. It reports
compile errors as diagnostics and offers completion, hover and go to
definition for ferin declarations.

The target and entry file come from the ferin.yaml in the client's
workspace root. Only the entry file is checked for a web root or an
app window; other files are checked for syntax.`,
		Example: `  # Start LSP server (usually called by an editor)
  ferin lsp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd, version)
		},
	}

	return cmd
}

func runLSP(cmd *cobra.Command, version string) error {
	cfg := getConfig()
	server := lsp.NewServer(
		lsp.WithLogger(config.GetLogger(cmd.Context())),
		lsp.WithTarget(cfg.BuildTarget()),
		lsp.WithVersion(version),
		lsp.WithDebug(cfg.Verbose),
	)
	return server.Run()
}
