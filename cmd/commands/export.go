package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"

	"github.com/pagepad/pagepad-cli/internal/cli"
	"github.com/pagepad/pagepad-cli/pkg/assembler"
	"github.com/pagepad/pagepad-cli/pkg/project"
)

var (
	exportToFile string
	exportMinify bool
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <project.yaml>",
		Short: "Assemble a project into a single HTML document",
		Long: `Assemble a project file into one self-contained HTML document.

The entry HTML file gets every stylesheet inlined into <head> and every
script inlined before </body>, the same document the live preview serves.
By default the result is written to stdout.

Examples:
  # Export to stdout
  pagepad export my-site.yaml

  # Export to a file
  pagepad export my-site.yaml --file site.html

  # Minified output
  pagepad export my-site.yaml --file site.html --minify`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportToFile, "file", "f", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&exportMinify, "minify", false, "Minify the assembled HTML")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	proj, err := project.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load project %s: %w", args[0], err)
	}

	snapshot := make(map[string]string, len(proj.Files))
	for _, f := range proj.Files {
		snapshot[f.Path] = f.Content
	}

	doc, err := assembler.Assemble(snapshot)
	if err != nil {
		return err
	}

	if exportMinify {
		m := minify.New()
		m.AddFunc("text/html", html.Minify)
		out, err := m.String("text/html", doc)
		if err != nil {
			return fmt.Errorf("failed to minify output: %w", err)
		}
		doc = out
	}

	if exportToFile == "" {
		fmt.Print(doc)
		return nil
	}
	if err := os.WriteFile(exportToFile, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportToFile, err)
	}
	cli.PrintSuccess("Exported %s to %s (%d bytes)", proj.Name, exportToFile, len(doc))
	return nil
}
