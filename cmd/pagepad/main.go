package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pagepad/pagepad-cli/cmd/commands"
	"github.com/pagepad/pagepad-cli/internal/cli"
	"github.com/pagepad/pagepad-cli/pkg/models"
	"github.com/pagepad/pagepad-cli/pkg/preview"
	"github.com/pagepad/pagepad-cli/pkg/project"
	"github.com/pagepad/pagepad-cli/pkg/session"
	"github.com/pagepad/pagepad-cli/pkg/templates"
	"github.com/pagepad/pagepad-cli/pkg/tui"
	"github.com/pagepad/pagepad-cli/pkg/watch"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	rootProjectFile string
	rootMirrorDir   string
	rootPort        int
	flagQuiet       bool
	flagNoColor     bool
)

var rootCmd = &cobra.Command{
	Use:   "pagepad",
	Short: "Terminal-based live web playground",
	Long: `Pagepad is a terminal-based playground for building small web pages.
It keeps a project of HTML, CSS and JavaScript files in memory, assembles
them into a single document, and serves a live preview on localhost that
re-renders as you type.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.SetGlobalFlags(flagQuiet, flagNoColor)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Pagepad",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Pagepad version %s\n", version)
	},
}

func runTUI() error {
	settings, err := models.LoadSettings(models.SettingsFilename)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if rootPort != 0 {
		settings.Preview.Port = rootPort
	}

	registry, err := templates.NewRegistry()
	if err != nil {
		return fmt.Errorf("failed to load template catalog: %w", err)
	}

	docs := preview.NewRegistry()
	server := preview.NewServer(docs)
	editorPane := tui.NewEditorPane()

	// The renderer reads through a closure so the session can be built
	// after it. Nothing schedules a render before the session exists.
	var sess *session.Session
	renderer := preview.NewRenderer(docs, server, func() map[string]string {
		return sess.Snapshot()
	}, settings.Preview.Debounce())
	sess = session.New(registry, editorPane, renderer)
	sess.Name = settings.Project.Name

	var watcher *watch.Watcher
	switch {
	case rootProjectFile != "":
		proj, err := project.Load(rootProjectFile)
		if err != nil {
			return fmt.Errorf("failed to load project %s: %w", rootProjectFile, err)
		}
		if err := sess.LoadProject(proj.Name, proj.Files); err != nil {
			return err
		}
	case rootMirrorDir != "":
		seed, err := watch.Load(rootMirrorDir)
		if err != nil {
			return fmt.Errorf("failed to read directory %s: %w", rootMirrorDir, err)
		}
		if err := sess.LoadProject(settings.Project.Name, seed); err != nil {
			return err
		}
		watcher, err = watch.NewWatcher(rootMirrorDir)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", rootMirrorDir, err)
		}
	default:
		if err := sess.ApplyTemplate(settings.Project.DefaultTemplate); err != nil {
			return fmt.Errorf("failed to apply template %q: %w", settings.Project.DefaultTemplate, err)
		}
	}

	baseURL, err := server.Start(settings.Preview.Port)
	if err != nil {
		return fmt.Errorf("failed to start preview server: %w", err)
	}
	defer server.Shutdown()
	defer renderer.Close()
	if watcher != nil {
		defer watcher.Close()
	}

	if settings.Preview.OpenBrowser {
		// Best effort; the TUI shows the URL either way.
		_ = preview.OpenBrowser(baseURL)
	}
	renderer.Render()

	app := tui.NewApp(tui.Config{
		Session:  sess,
		Renderer: renderer,
		Registry: registry,
		Editor:   editorPane,
		Watcher:  watcher,
		BaseURL:  baseURL,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to start the terminal user interface: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	rootCmd.Flags().StringVar(&rootProjectFile, "project", "", "Load a saved project file")
	rootCmd.Flags().StringVar(&rootMirrorDir, "dir", "", "Mirror a directory of source files")
	rootCmd.Flags().IntVar(&rootPort, "port", 0, "Preview server port (overrides settings)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewTemplatesCommand())
	rootCmd.AddCommand(commands.NewNewCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
