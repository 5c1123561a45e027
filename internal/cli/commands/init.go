package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leapstack-labs/ferin/internal/cli/config"
	"github.com/leapstack-labs/ferin/internal/cli/output"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// projectFile is the ferin.yaml written by init.
type projectFile struct {
	Title  string `yaml:"title"`
	Entry  string `yaml:"entry"`
	Target string `yaml:"target"`
	OutDir string `yaml:"out_dir"`
	Dev    struct {
		Port  int  `yaml:"port"`
		Watch bool `yaml:"watch"`
	} `yaml:"dev"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var title string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ferin project",
		Long: `Initialize a new ferin project with a starter program and configuration.

This creates:
  - ferin.yaml configuration file
  - main.ferin starter program for the selected target
  - .gitignore for build output

The starter program is a counter page for the web target and a desktop
window for the app target.`,
		Example: `  # Initialize in current directory
  ferin init

  # Initialize a desktop app in a new directory
  ferin init my-app --target app

  # Force overwrite existing files
  ferin init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
			return runInit(r, dir, cfg.BuildTarget().String(), title, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().StringVar(&title, "title", "", "Project title (default: derived from the directory name)")

	return cmd
}

func runInit(r *output.Renderer, dir, tgt, title string, force bool) error {
	if !slices.Contains(listTemplates(), tgt) {
		return fmt.Errorf("no starter template for target %q", tgt)
	}

	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileName)
	}

	if title == "" {
		title = titleFromDir(dir)
	}

	if err := writeProjectFile(configPath, title, tgt); err != nil {
		return err
	}

	files, err := copyTemplate(tgt, dir, title, force)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	r.StatusLine(config.ConfigFileName, "success", "")
	for _, f := range files {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Success(fmt.Sprintf("ferin project %q initialized (%s target)!", title, tgt))
	r.Println("")
	r.Println("Next steps:")
	if dir != "." {
		r.Println(fmt.Sprintf("  cd %s", dir))
	}
	if tgt == "app" {
		r.Println("  ferin run       Build and start the app with electron")
	} else {
		r.Println("  ferin dev       Serve with live reload")
	}
	r.Println("  ferin build     Write the build to dist/")
	r.Println("  ferin check     Compile without writing output")

	return nil
}

func writeProjectFile(path, title, tgt string) error {
	pf := projectFile{
		Title:  title,
		Entry:  config.DefaultEntry,
		Target: tgt,
		OutDir: config.DefaultOutDir,
	}
	pf.Dev.Port = config.DefaultDevPort
	pf.Dev.Watch = true

	content, err := yaml.Marshal(pf)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", config.ConfigFileName, err)
	}
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// titleFromDir turns "my-todo_app" into "My Todo App".
func titleFromDir(dir string) string {
	base := dir
	if abs, err := filepath.Abs(dir); err == nil {
		base = filepath.Base(abs)
	}
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	if len(words) == 0 {
		return "Ferin App"
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}
