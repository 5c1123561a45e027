package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/ferin/pkg/parser"
	"github.com/leapstack-labs/ferin/pkg/target"
	"github.com/leapstack-labs/ferin/pkg/transform"
	"github.com/spf13/cobra"
)

const (
	replPrompt     = "ferin> "
	replContPrompt = "  ...> "
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Translate ferin snippets interactively",
		Long: `Start an interactive session that prints the JavaScript for each snippet.

A single line is translated as soon as it is entered. A line ending in ":"
opens a block; keep typing indented lines and finish with an empty line.
Snippets are translated without the runtime and without the entry checks
a full build performs.`,
		Example: `  # Start for the configured target
  ferin repl

  # Start for the app target
  ferin repl --target app`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	return cmd
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cc := NewCommandContext(cmd)

	historyFile := filepath.Join(filepath.Dir(cc.Cfg.StatePath), "repl_history")
	if err := os.MkdirAll(filepath.Dir(historyFile), 0750); err != nil {
		historyFile = ""
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	session := newREPLSession(cc.Target, cmd.OutOrStdout(), cmd.ErrOrStderr())

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ferin REPL (target: %s)\n", cc.Target)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.Reset()
			rl.SetPrompt(session.Prompt())
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if session.Feed(line) {
			break
		}
		rl.SetPrompt(session.Prompt())
	}
	return nil
}

// replSession holds the state of one REPL: the selected target and the
// lines of an unfinished block.
type replSession struct {
	target target.Target
	lines  []string
	out    io.Writer
	errOut io.Writer
}

func newREPLSession(tgt target.Target, out, errOut io.Writer) *replSession {
	return &replSession{target: tgt, out: out, errOut: errOut}
}

// Prompt returns the prompt for the next line.
func (s *replSession) Prompt() string {
	if len(s.lines) > 0 {
		return replContPrompt
	}
	return replPrompt
}

// Reset drops an unfinished block.
func (s *replSession) Reset() {
	s.lines = s.lines[:0]
}

// Feed handles one input line and reports whether the session should end.
func (s *replSession) Feed(line string) bool {
	trimmed := strings.TrimSpace(line)

	if len(s.lines) == 0 {
		switch {
		case trimmed == "":
			return false
		case strings.HasPrefix(trimmed, "."):
			return s.dotCommand(trimmed)
		case !strings.HasSuffix(trimmed, ":"):
			s.translate(line)
			return false
		}
	}

	if trimmed == "" {
		src := strings.Join(s.lines, "\n")
		s.Reset()
		s.translate(src)
		return false
	}
	s.lines = append(s.lines, strings.TrimRight(line, " \t"))
	return false
}

func (s *replSession) translate(src string) {
	prog, err := parser.Parse(src + "\n")
	if err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
		return
	}
	out := transform.Emit(prog, s.target)
	// drop the runtime bindings line
	if _, body, ok := strings.Cut(out.JS, "\n\n"); ok {
		_, _ = fmt.Fprint(s.out, body)
	}
}

func (s *replSession) dotCommand(line string) bool {
	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true
	case ".help":
		printREPLHelp(s.out)
	case ".target":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(s.out, "target: %s\n", s.target)
			return false
		}
		tgt, err := target.Parse(parts[1])
		if err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
			return false
		}
		s.target = tgt
		_, _ = fmt.Fprintf(s.out, "target: %s\n", s.target)
	case ".clear":
		_, _ = fmt.Fprint(s.out, "\033[H\033[2J")
	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", parts[0])
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help             Show this help message
  .target [web|app] Show or switch the target
  .clear            Clear the screen
  .quit / .exit     Exit the REPL

Tips:
  - A line ending in ":" starts a block; finish it with an empty line
  - Ctrl+C drops an unfinished block
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

func newREPLCompleter() *readline.PrefixCompleter {
	var targets []readline.PrefixCompleterInterface
	for _, t := range target.All() {
		targets = append(targets, readline.PcItem(t.String()))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".target", targets...),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
