package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagepad/pagepad-cli/internal/cli"
	"github.com/pagepad/pagepad-cli/pkg/models"
	"github.com/pagepad/pagepad-cli/pkg/project"
	"github.com/pagepad/pagepad-cli/pkg/templates"
)

var (
	newTemplate string
	newName     string
)

// NewNewCommand creates the new command
func NewNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <project.yaml>",
		Short: "Create a project file from a template",
		Long: `Instantiate a template into a standalone project file.

The project file is YAML with the project name and every file's content,
ready for 'pagepad --project', 'pagepad export' or 'pagepad serve'.

Examples:
  # Blank project
  pagepad new my-site.yaml

  # From a catalog template
  pagepad new my-site.yaml --template landing-page

  # With an explicit project name
  pagepad new my-site.yaml --template portfolio --name "Jane's Portfolio"`,
		Args: cobra.ExactArgs(1),
		RunE: runNew,
	}

	cmd.Flags().StringVarP(&newTemplate, "template", "t", "blank", "Template id to instantiate")
	cmd.Flags().StringVarP(&newName, "name", "n", "", "Project name (defaults to the filename)")

	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	registry, err := templates.NewRegistry()
	if err != nil {
		return fmt.Errorf("failed to load template catalog: %w", err)
	}
	seed, err := registry.Instantiate(newTemplate)
	if err != nil {
		return err
	}

	name := newName
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	proj := &models.Project{Name: name, Files: seed}
	if err := project.Save(path, proj); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	templateName, _ := registry.Name(newTemplate)
	cli.PrintSuccess("Created %s from template %q (%d files)", path, templateName, len(seed))
	cli.PrintInfo("Run 'pagepad --project %s' to start editing.", path)
	return nil
}
