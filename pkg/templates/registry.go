// Package templates holds the read-only catalog of starter bundles.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/pagepad/pagepad-cli/pkg/models"
)

//go:embed catalog
var catalogFS embed.FS

// ErrUnknownTemplate is returned when a template id is not in the catalog.
var ErrUnknownTemplate = errors.New("unknown template")

type catalogEntry struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Icon        string   `yaml:"icon"`
	Files       []string `yaml:"files"`
}

type catalogFile struct {
	Templates []catalogEntry `yaml:"templates"`
}

// Registry is the static template catalog, defined at process start and
// never mutated afterwards.
type Registry struct {
	order     []string
	templates map[string]models.Template
}

// NewRegistry loads the embedded catalog. The catalog is baked into the
// binary, so a failure here is a packaging defect, not a user error.
func NewRegistry() (*Registry, error) {
	data, err := catalogFS.ReadFile("catalog/catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read template catalog: %w", err)
	}

	var catalog catalogFile
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse template catalog: %w", err)
	}

	r := &Registry{templates: make(map[string]models.Template, len(catalog.Templates))}
	for _, entry := range catalog.Templates {
		tmpl := models.Template{
			ID:          entry.ID,
			Name:        entry.Name,
			Description: entry.Description,
			Icon:        entry.Icon,
		}
		for _, name := range entry.Files {
			content, err := catalogFS.ReadFile(path.Join("catalog", entry.ID, name))
			if err != nil {
				return nil, fmt.Errorf("template %s is missing file %s: %w", entry.ID, name, err)
			}
			tmpl.Files = append(tmpl.Files, models.File{Path: name, Content: string(content)})
		}
		r.order = append(r.order, entry.ID)
		r.templates[entry.ID] = tmpl
	}

	return r, nil
}

// List returns metadata for every template in catalog order, without
// content, for gallery display.
func (r *Registry) List() []models.TemplateMeta {
	metas := make([]models.TemplateMeta, 0, len(r.order))
	for _, id := range r.order {
		tmpl := r.templates[id]
		metas = append(metas, models.TemplateMeta{
			ID:          tmpl.ID,
			Name:        tmpl.Name,
			Description: tmpl.Description,
			Icon:        tmpl.Icon,
			FileCount:   len(tmpl.Files),
		})
	}
	return metas
}

// Name returns the display name for a template id.
func (r *Registry) Name(id string) (string, error) {
	tmpl, ok := r.templates[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
	}
	return tmpl.Name, nil
}

// Instantiate returns a fresh deep copy of the template's file bundle.
// Downstream editing must never reach back into the catalog.
func (r *Registry) Instantiate(id string) ([]models.File, error) {
	tmpl, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
	}
	files := make([]models.File, len(tmpl.Files))
	copy(files, tmpl.Files)
	return files, nil
}
