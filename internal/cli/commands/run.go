package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/ferin/internal/devserver"
	"github.com/leapstack-labs/ferin/internal/page"
	"github.com/leapstack-labs/ferin/pkg/target"
	"github.com/spf13/cobra"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	Electron string
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Compile and start a program",
		Long: `Compile a ferin program once and start it.

For the web target the program is served on the dev server port without
watching for changes. For the app target the build is written to the
output directory and started with electron.`,
		Example: `  # Serve the configured entry file in the browser
  ferin run

  # Start a desktop app
  ferin run main.ferin --target app

  # Use a project-local electron
  ferin run --target app --electron ./node_modules/.bin/electron`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Electron, "electron", "electron", "Electron executable used for the app target")

	return cmd
}

func runRun(cmd *cobra.Command, args []string, opts *RunOptions) error {
	cc := NewCommandContext(cmd)

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	source := cc.Cfg.EntryPath(arg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cc.Target == target.Web {
		srv := devserver.New(devserver.Config{
			Entry:  source,
			Target: cc.Target,
			Port:   cc.Cfg.Dev.Port,
			Title:  projectName(cc),
			Logger: cc.Logger,
		})
		if err := srv.Rebuild(); err != nil {
			return err
		}
		cc.Renderer.Success(fmt.Sprintf("Serving %s on http://localhost:%d", source, cc.Cfg.Dev.Port))
		return srv.Serve(ctx)
	}

	res, err := cc.Compile(source)
	if err != nil {
		cc.Renderer.StatusLine(source, "error", errorLocation(source, err))
		return err
	}
	if _, err := page.WriteDist(ctx, cc.Cfg.OutDir, res, cc.Target, projectName(cc)); err != nil {
		return err
	}
	return startElectron(ctx, cmd, opts.Electron, cc.Cfg.OutDir)
}

// startElectron runs electron on dir and waits for it to exit.
func startElectron(ctx context.Context, cmd *cobra.Command, electron, dir string) error {
	path, err := exec.LookPath(electron)
	if err != nil {
		return fmt.Errorf("electron not found (install it with `npm install -g electron` or pass --electron): %w", err)
	}

	proc := exec.CommandContext(ctx, path, dir) //nolint:gosec // executable chosen by the user
	proc.Stdout = cmd.OutOrStdout()
	proc.Stderr = cmd.ErrOrStderr()
	if err := proc.Run(); err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("electron exited: %w", err)
	}
	return nil
}
