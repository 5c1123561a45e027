package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/leapstack-labs/ferin/internal/cli/output"
	"github.com/leapstack-labs/ferin/pkg/parser"
	"github.com/leapstack-labs/ferin/pkg/token"
	"github.com/spf13/cobra"
)

// TokenInfo is the JSON form of a token.
type TokenInfo struct {
	Type      string `json:"type"`
	Class     string `json:"class"`
	Literal   string `json:"literal,omitempty"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line"`
	EndColumn int    `json:"end_column"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of a file",
		Long: `Lex a ferin file and print its tokens.

By default the indentation pass runs, so INDENT and DEDENT tokens show
where blocks open and close. Use --raw to see the lexer output alone.`,
		Example: `  # Tokens with block markers
  ferin tokens main.ferin

  # Lexer output only, as JSON
  ferin tokens main.ferin --raw -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			var arg string
			if len(args) > 0 {
				arg = args[0]
			}
			return runTokens(cc, cc.Cfg.EntryPath(arg), raw)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Skip the indentation pass")

	return cmd
}

func runTokens(cc *CommandContext, path string, raw bool) error {
	src, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	lex := parser.Tokenize
	if raw {
		lex = parser.Lex
	}
	tokens, err := lex(string(src))
	if err != nil {
		return err
	}

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		infos := make([]TokenInfo, 0, len(tokens))
		for _, tok := range tokens {
			span := tok.Span()
			infos = append(infos, TokenInfo{
				Type:      tok.Type.String(),
				Class:     token.Class(tok.Type),
				Literal:   tok.Literal,
				Line:      span.Start.Line,
				Column:    span.Start.Column,
				EndLine:   span.End.Line,
				EndColumn: span.End.Column,
			})
		}
		return r.JSON(infos)
	}

	rows := make([][]any, 0, len(tokens))
	for _, tok := range tokens {
		rows = append(rows, []any{tok.Span().String(), tok.Type.String(), token.Class(tok.Type), displayLiteral(tok)})
	}
	r.Table([]string{"Span", "Type", "Class", "Literal"}, rows)
	r.Muted(fmt.Sprintf("%d tokens", len(tokens)))
	return nil
}

// displayLiteral keeps table cells on one line.
func displayLiteral(tok token.Token) string {
	if tok.Type == token.NEWLINE {
		return `\n`
	}
	return strings.ReplaceAll(tok.Literal, "\n", `\n`)
}
