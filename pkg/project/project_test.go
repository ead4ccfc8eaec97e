package project

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pagepad/pagepad-cli/pkg/models"
)

func sampleProject() *models.Project {
	return &models.Project{
		Name: "Demo Site",
		Files: []models.File{
			{Path: "index.html", Content: "<html><body>hi</body></html>"},
			{Path: "style.css", Content: "body { margin: 0; }"},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")

	if err := Save(path, sampleProject()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Name != "Demo Site" {
		t.Errorf("Name = %q", loaded.Name)
	}
	if len(loaded.Files) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(loaded.Files))
	}
	if loaded.Files[0].Path != "index.html" || !strings.Contains(loaded.Files[0].Content, "hi") {
		t.Errorf("First file round-tripped wrong: %+v", loaded.Files[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected an error for a missing project file")
	}
}

func TestFromSnapshotSorted(t *testing.T) {
	proj := FromSnapshot("Snap", map[string]string{
		"z.js":       "z",
		"a.html":     "a",
		"middle.css": "m",
	})

	if proj.Name != "Snap" {
		t.Errorf("Name = %q", proj.Name)
	}
	want := []string{"a.html", "middle.css", "z.js"}
	for i, p := range want {
		if proj.Files[i].Path != p {
			t.Errorf("Files[%d].Path = %q, want %q", i, proj.Files[i].Path, p)
		}
	}
}

func TestShareLinkRoundTrip(t *testing.T) {
	link, err := EncodeShareLink(sampleProject())
	if err != nil {
		t.Fatalf("EncodeShareLink failed: %v", err)
	}
	if !strings.HasPrefix(link, ShareScheme) {
		t.Fatalf("Link %q missing scheme prefix", link)
	}

	decoded, err := DecodeShareLink(link)
	if err != nil {
		t.Fatalf("DecodeShareLink failed: %v", err)
	}
	if decoded.Name != "Demo Site" || len(decoded.Files) != 2 {
		t.Errorf("Round trip lost data: %+v", decoded)
	}
	if decoded.Files[1].Content != "body { margin: 0; }" {
		t.Errorf("Content corrupted: %q", decoded.Files[1].Content)
	}
}

func TestDecodeShareLinkRejectsGarbage(t *testing.T) {
	for _, link := range []string{
		"https://example.com/not-a-share-link",
		ShareScheme + "!!!not base64!!!",
	} {
		if _, err := DecodeShareLink(link); err == nil {
			t.Errorf("Expected an error for %q", link)
		}
	}
}
