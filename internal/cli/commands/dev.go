package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/leapstack-labs/ferin/internal/devserver"
	"github.com/leapstack-labs/ferin/pkg/target"
	"github.com/spf13/cobra"
)

// NewDevCommand creates the dev command.
func NewDevCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev [file]",
		Short: "Start the development server",
		Long: `Serve a ferin program for the browser and rebuild it on save.

Connected pages reload after every rebuild. While the source does not
compile, the page shows the compile error and the last good build keeps
being served as /app.js.

The dev server only runs web programs; start app programs with
"ferin run --target app".`,
		Example: `  # Start on the default port
  ferin dev

  # Custom port, open the browser
  ferin dev --port 8080 --open

  # Serve without watching
  ferin dev --no-watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDev,
	}

	cmd.Flags().IntP("port", "p", 0, "Port to serve on (default from config, 3000)")
	cmd.Flags().Bool("open", false, "Open the browser after starting")
	cmd.Flags().Bool("no-watch", false, "Disable rebuilding on file changes")

	return cmd
}

func runDev(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)
	if cc.Target != target.Web {
		return fmt.Errorf("the dev server runs web programs only; use `ferin run --target %s`", cc.Target)
	}

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	source := cc.Cfg.EntryPath(arg)
	dev := cc.Cfg.Dev

	srv := devserver.New(devserver.Config{
		Entry:    source,
		Target:   cc.Target,
		Port:     dev.Port,
		Watch:    dev.Watch,
		Debounce: dev.Debounce(),
		Title:    projectName(cc),
		Logger:   cc.Logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	url := fmt.Sprintf("http://localhost:%d", dev.Port)
	cc.Renderer.Success(fmt.Sprintf("Dev server for %s on %s", source, url))
	if dev.Watch {
		cc.Renderer.Muted("Watching for changes. Press Ctrl+C to stop.")
	}

	if dev.Open {
		go func() {
			time.Sleep(300 * time.Millisecond)
			if err := openBrowser(ctx, url); err != nil {
				cc.Logger.Warn("failed to open browser", "error", err)
			}
		}()
	}

	return srv.Serve(ctx)
}

func openBrowser(ctx context.Context, url string) error {
	var name string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		name = "xdg-open"
	}
	return exec.CommandContext(ctx, name, append(args, url)...).Start() //nolint:gosec // fixed launcher
}
