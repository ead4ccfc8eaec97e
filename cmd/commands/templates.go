package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagepad/pagepad-cli/internal/cli"
	"github.com/pagepad/pagepad-cli/pkg/templates"
)

// NewTemplatesCommand creates the templates command
func NewTemplatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in project templates",
		Long: `List every project template in the built-in catalog.

Templates seed a new project with a set of starter files. Use the id
with 'pagepad new' or pick one interactively inside the TUI.

Examples:
  # Show the catalog
  pagepad templates

  # Start a project from one
  pagepad new my-site.yaml --template landing-page`,
		Args: cobra.NoArgs,
		RunE: runTemplates,
	}
}

func runTemplates(cmd *cobra.Command, args []string) error {
	registry, err := templates.NewRegistry()
	if err != nil {
		return fmt.Errorf("failed to load template catalog: %w", err)
	}

	table := cli.NewTableFormatter(os.Stdout)
	table.Header("ID", "NAME", "FILES", "DESCRIPTION")
	for _, meta := range registry.List() {
		table.Row(meta.ID, meta.Name, fmt.Sprintf("%d", meta.FileCount), meta.Description)
	}
	table.Flush()
	return nil
}
