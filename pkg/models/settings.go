package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SettingsFilename is looked up in the working directory at startup.
const SettingsFilename = "pagepad.yaml"

// Settings represents the application configuration
type Settings struct {
	Preview PreviewSettings `yaml:"preview"`
	Project ProjectSettings `yaml:"project"`
	Editor  EditorSettings  `yaml:"editor"`
}

// PreviewSettings controls the live preview server
type PreviewSettings struct {
	Port        int  `yaml:"port"`
	DebounceMS  int  `yaml:"debounce_ms"`
	OpenBrowser bool `yaml:"open_browser"`
}

// Debounce returns the render debounce interval.
func (p PreviewSettings) Debounce() time.Duration {
	return time.Duration(p.DebounceMS) * time.Millisecond
}

// ProjectSettings controls project defaults
type ProjectSettings struct {
	Name            string `yaml:"name"`
	DefaultTemplate string `yaml:"default_template"`
}

// EditorSettings controls editor preferences
type EditorSettings struct {
	TabSize int `yaml:"tab_size"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Preview: PreviewSettings{
			Port:        7878,
			DebounceMS:  500,
			OpenBrowser: false,
		},
		Project: ProjectSettings{
			Name:            "My Project",
			DefaultTemplate: "blank",
		},
		Editor: EditorSettings{
			TabSize: 2,
		},
	}
}

// LoadSettings reads settings from path, falling back to defaults when the
// file does not exist. Absent fields keep their default values.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	if settings.Preview.DebounceMS <= 0 {
		settings.Preview.DebounceMS = DefaultSettings().Preview.DebounceMS
	}
	if settings.Preview.Port <= 0 {
		settings.Preview.Port = DefaultSettings().Preview.Port
	}

	return settings, nil
}
