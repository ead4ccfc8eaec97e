// Package project reads and writes saved projects: YAML files on disk and
// the base64 share-link encoding.
package project

import (
	"encoding/base64"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pagepad/pagepad-cli/pkg/models"
)

// ShareScheme prefixes encoded share links.
const ShareScheme = "pagepad://project?data="

// Load reads a project YAML file.
func Load(path string) (*models.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project %s: %w", path, err)
	}
	var proj models.Project
	if err := yaml.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("failed to parse project YAML %s: %w", path, err)
	}
	return &proj, nil
}

// Save writes a project YAML file.
func Save(path string, proj *models.Project) error {
	data, err := yaml.Marshal(proj)
	if err != nil {
		return fmt.Errorf("failed to marshal project to YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project %s: %w", path, err)
	}
	return nil
}

// FromSnapshot builds a project from a {path: content} snapshot, with
// files in sorted path order for stable output.
func FromSnapshot(name string, snapshot map[string]string) *models.Project {
	paths := make([]string, 0, len(snapshot))
	for p := range snapshot {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	proj := &models.Project{Name: name}
	for _, p := range paths {
		proj.Files = append(proj.Files, models.File{Path: p, Content: snapshot[p]})
	}
	return proj
}

// EncodeShareLink packs a project into a self-contained link.
func EncodeShareLink(proj *models.Project) (string, error) {
	data, err := yaml.Marshal(proj)
	if err != nil {
		return "", fmt.Errorf("failed to encode share link: %w", err)
	}
	return ShareScheme + base64.URLEncoding.EncodeToString(data), nil
}

// DecodeShareLink unpacks a link produced by EncodeShareLink.
func DecodeShareLink(link string) (*models.Project, error) {
	encoded, ok := strings.CutPrefix(link, ShareScheme)
	if !ok {
		return nil, fmt.Errorf("not a pagepad share link")
	}
	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode share link: %w", err)
	}
	var proj models.Project
	if err := yaml.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("failed to parse share link payload: %w", err)
	}
	return &proj, nil
}
