package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pagepad/pagepad-cli/internal/cli"
	"github.com/pagepad/pagepad-cli/pkg/models"
	"github.com/pagepad/pagepad-cli/pkg/preview"
	"github.com/pagepad/pagepad-cli/pkg/project"
	"github.com/pagepad/pagepad-cli/pkg/vfs"
	"github.com/pagepad/pagepad-cli/pkg/watch"
)

var (
	servePort    int
	serveVerbose bool
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <project.yaml>",
		Short: "Serve a project's live preview without the TUI",
		Long: `Run the preview server headless for a saved project file.

The project is assembled and served on localhost. Saving the project
file re-renders the preview, so an external editor works too.

Examples:
  # Serve on the default port
  pagepad serve my-site.yaml

  # Pick a port
  pagepad serve my-site.yaml --port 9000`,
		Args: cobra.ExactArgs(1),
		RunE: runServe,
	}

	cmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (0 uses settings)")
	cmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Log every request")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	proj, err := project.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load project %s: %w", args[0], err)
	}

	settings, err := models.LoadSettings(models.SettingsFilename)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	port := servePort
	if port == 0 {
		port = settings.Preview.Port
	}

	store := vfs.NewStore()
	if err := store.Replace(proj.Files); err != nil {
		return err
	}

	docs := preview.NewRegistry()
	server := preview.NewServer(docs)
	server.SetVerbose(serveVerbose)
	renderer := preview.NewRenderer(docs, server, store.Snapshot, settings.Preview.Debounce())
	defer renderer.Close()

	baseURL, err := server.Start(port)
	if err != nil {
		return fmt.Errorf("failed to start preview server: %w", err)
	}
	defer server.Shutdown()
	renderer.Render()

	watcher, err := watch.NewWatcher(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}
	defer watcher.Close()

	cli.PrintSuccess("Serving %q at %s", proj.Name, baseURL)
	cli.PrintInfo("Watching %s for changes. Press Ctrl+C to stop.", args[0])

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-sig:
			return nil
		case change := <-watcher.Changes():
			if change.Removed || change.Path != filepath.Base(path) {
				continue
			}
			reloaded, err := project.Load(path)
			if err != nil {
				cli.PrintError("Reload failed: %v", err)
				continue
			}
			if err := store.Replace(reloaded.Files); err != nil {
				cli.PrintError("Reload failed: %v", err)
				continue
			}
			renderer.Schedule()
		case event := <-renderer.Events():
			if event.Err != nil {
				cli.PrintError("Render failed: %v", event.Err)
			} else {
				cli.PrintInfo("Rendered at %s", event.URL)
			}
		}
	}
}
