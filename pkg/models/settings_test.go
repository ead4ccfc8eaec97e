package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Missing settings file must fall back to defaults: %v", err)
	}
	if settings.Preview.Port != 7878 {
		t.Errorf("Port = %d, want the default", settings.Preview.Port)
	}
	if settings.Preview.Debounce() != 500*time.Millisecond {
		t.Errorf("Debounce = %v, want 500ms", settings.Preview.Debounce())
	}
}

func TestLoadSettingsPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagepad.yaml")
	content := "preview:\n  port: 9000\nproject:\n  name: Custom\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if settings.Preview.Port != 9000 {
		t.Errorf("Port = %d, want 9000", settings.Preview.Port)
	}
	if settings.Project.Name != "Custom" {
		t.Errorf("Name = %q, want Custom", settings.Project.Name)
	}
	// Fields absent from the file keep their defaults
	if settings.Preview.Debounce() != 500*time.Millisecond {
		t.Errorf("Debounce = %v, want the default", settings.Preview.Debounce())
	}
	if settings.Editor.TabSize != 2 {
		t.Errorf("TabSize = %d, want 2", settings.Editor.TabSize)
	}
}

func TestLoadSettingsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagepad.yaml")
	if err := os.WriteFile(path, []byte("preview: [not: a: mapping"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Error("Expected an error for malformed YAML")
	}
}
