package commands

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/ferin/pkg/ast"
	"github.com/leapstack-labs/ferin/pkg/parser"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewASTCommand creates the ast command.
func NewASTCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Print the syntax tree of a file",
		Long: `Parse a ferin file and print its syntax tree.

Every node carries its type name and source position. The tree is printed
as YAML by default; use --format json for JSON.`,
		Example: `  # YAML tree of the entry file
  ferin ast

  # JSON tree
  ferin ast main.ferin --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			var arg string
			if len(args) > 0 {
				arg = args[0]
			}
			return runAST(cc, cc.Cfg.EntryPath(arg), format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Tree format (yaml|json)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runAST(cc *CommandContext, path, format string) error {
	src, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	prog, err := parser.Parse(string(src))
	if err != nil {
		return err
	}
	tree := ast.Dump(prog)

	switch format {
	case "json":
		return cc.Renderer.JSON(tree)
	case "yaml", "":
		enc := yaml.NewEncoder(cc.Renderer.Writer())
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return fmt.Errorf("failed to encode tree: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (expected yaml or json)", format)
	}
}
