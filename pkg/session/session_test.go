package session

import (
	"errors"
	"sort"
	"testing"

	"github.com/pagepad/pagepad-cli/pkg/models"
	"github.com/pagepad/pagepad-cli/pkg/templates"
	"github.com/pagepad/pagepad-cli/pkg/vfs"
)

// recordingEditor captures what the session pushes into the editor widget.
type recordingEditor struct {
	path     string
	content  string
	language models.Language
	cleared  int
}

func (e *recordingEditor) SetText(path, content string, language models.Language) {
	e.path = path
	e.content = content
	e.language = language
}

func (e *recordingEditor) Clear() {
	e.path = ""
	e.content = ""
	e.cleared++
}

func (e *recordingEditor) Relayout() {}

type countingRefresher struct {
	scheduled int
}

func (r *countingRefresher) Schedule() {
	r.scheduled++
}

func newTestSession(t *testing.T) (*Session, *recordingEditor, *countingRefresher) {
	t.Helper()
	registry, err := templates.NewRegistry()
	if err != nil {
		t.Fatalf("Failed to load template catalog: %v", err)
	}
	editor := &recordingEditor{}
	refresher := &countingRefresher{}
	return New(registry, editor, refresher), editor, refresher
}

func TestOpenCreatesOneTab(t *testing.T) {
	s, editor, _ := newTestSession(t)
	s.Store().Set("index.html", "<h1>hi</h1>")

	// Opening the same path repeatedly never duplicates the tab
	for i := 0; i < 5; i++ {
		if err := s.Open("index.html"); err != nil {
			t.Fatalf("Open #%d failed: %v", i, err)
		}
	}

	if len(s.Tabs()) != 1 {
		t.Errorf("Expected 1 tab, got %d", len(s.Tabs()))
	}
	if s.ActivePath() != "index.html" {
		t.Errorf("Active path = %q, want index.html", s.ActivePath())
	}
	if editor.path != "index.html" || editor.language != models.LangHTML {
		t.Errorf("Editor loaded %q (%v), want index.html (html)", editor.path, editor.language)
	}
}

func TestOpenCloseCycleStaysBounded(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Store().Set("index.html", "")

	for i := 0; i < 20; i++ {
		if err := s.Open("index.html"); err != nil {
			t.Fatalf("Open #%d failed: %v", i, err)
		}
		if len(s.Tabs()) != 1 {
			t.Fatalf("Tab set grew to %d on cycle %d", len(s.Tabs()), i)
		}
		if err := s.Close("index.html"); err != nil {
			t.Fatalf("Close #%d failed: %v", i, err)
		}
		if len(s.Tabs()) != 0 {
			t.Fatalf("Tab survived close on cycle %d", i)
		}
	}
}

func TestOpenAbsentFile(t *testing.T) {
	s, _, _ := newTestSession(t)
	if err := s.Open("ghost.html"); !errors.Is(err, vfs.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestEditOnlyActiveDocument(t *testing.T) {
	s, _, refresher := newTestSession(t)
	s.Store().Set("index.html", "a")
	s.Store().Set("style.css", "b")
	s.Open("index.html")
	s.Open("style.css")

	// style.css is active now; editing index.html must fail
	if err := s.Edit("index.html", "changed"); !errors.Is(err, ErrNotActive) {
		t.Errorf("Expected ErrNotActive, got %v", err)
	}
	content, _ := s.Store().Get("index.html")
	if content != "a" {
		t.Error("Rejected edit reached the store")
	}

	before := refresher.scheduled
	if err := s.Edit("style.css", "b2"); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	content, _ = s.Store().Get("style.css")
	if content != "b2" {
		t.Errorf("Edit did not reach the store: %q", content)
	}
	if refresher.scheduled != before+1 {
		t.Error("Edit must schedule a preview refresh")
	}

	tabs := s.Tabs()
	if !tabs[1].Modified {
		t.Error("Edited tab not marked modified")
	}
	if tabs[0].Modified {
		t.Error("Untouched tab marked modified")
	}
}

func TestCloseReactivatesLastRemaining(t *testing.T) {
	s, _, _ := newTestSession(t)
	for _, p := range []string{"a.html", "b.css", "c.js"} {
		s.Store().Set(p, "")
		s.Open(p)
	}

	if err := s.Close("c.js"); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// The most recently opened remaining tab takes over
	if s.ActivePath() != "b.css" {
		t.Errorf("Active = %q, want b.css", s.ActivePath())
	}

	// Closing a background tab keeps the active one
	if err := s.Close("a.html"); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if s.ActivePath() != "b.css" {
		t.Errorf("Active = %q after background close, want b.css", s.ActivePath())
	}
}

func TestCloseLastTabEntersNoDocumentState(t *testing.T) {
	s, editor, _ := newTestSession(t)
	s.Store().Set("index.html", "x")
	s.Open("index.html")

	if err := s.Close("index.html"); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if s.ActivePath() != "" {
		t.Errorf("Expected no-document state, active = %q", s.ActivePath())
	}
	if len(s.Tabs()) != 0 {
		t.Errorf("Expected no tabs, got %d", len(s.Tabs()))
	}
	if editor.cleared == 0 {
		t.Error("Editor not cleared on last close")
	}
	// The file itself survives the tab
	if !s.Store().Has("index.html") {
		t.Error("Closing a tab must not delete the file")
	}
}

func TestNewFile(t *testing.T) {
	s, _, _ := newTestSession(t)

	if err := s.NewFile("app.js"); err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	content, _ := s.Store().Get("app.js")
	if content == "" {
		t.Error("New JS file should carry starter content")
	}
	if s.ActivePath() != "app.js" {
		t.Errorf("New file not active, got %q", s.ActivePath())
	}

	if err := s.NewFile("app.js"); !errors.Is(err, ErrExists) {
		t.Errorf("Expected ErrExists, got %v", err)
	}
}

func TestDeleteActiveFile(t *testing.T) {
	s, _, refresher := newTestSession(t)
	s.Store().Set("index.html", "")
	s.Store().Set("style.css", "")
	s.Open("index.html")
	s.Open("style.css")

	before := refresher.scheduled
	if err := s.DeleteFile("style.css"); err != nil {
		t.Fatalf("DeleteFile failed: %v", err)
	}
	if s.Store().Has("style.css") {
		t.Error("File still in store after delete")
	}
	if s.ActivePath() != "index.html" {
		t.Errorf("Active = %q after deleting active file, want index.html", s.ActivePath())
	}
	if refresher.scheduled <= before {
		t.Error("Delete must schedule a preview refresh")
	}
}

func TestApplyTemplateReplacesProject(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Store().Set("leftover.txt", "old world")
	s.Open("leftover.txt")

	if err := s.ApplyTemplate("landing-page"); err != nil {
		t.Fatalf("ApplyTemplate failed: %v", err)
	}

	if s.Store().Has("leftover.txt") {
		t.Error("Prior files must not survive a template apply")
	}

	// The store holds exactly the template's files
	registry, _ := templates.NewRegistry()
	bundle, _ := registry.Instantiate("landing-page")
	wantPaths := make([]string, len(bundle))
	for i, f := range bundle {
		wantPaths[i] = f.Path
	}
	sort.Strings(wantPaths)
	gotPaths := s.Store().Paths()
	if len(gotPaths) != len(wantPaths) {
		t.Fatalf("Paths = %v, want %v", gotPaths, wantPaths)
	}
	for i := range wantPaths {
		if gotPaths[i] != wantPaths[i] {
			t.Errorf("Paths[%d] = %q, want %q", i, gotPaths[i], wantPaths[i])
		}
	}
	if len(s.Tabs()) != 1 {
		t.Errorf("Expected exactly the entry tab, got %d tabs", len(s.Tabs()))
	}
	if s.ActivePath() != "index.html" {
		t.Errorf("Active = %q, want index.html", s.ActivePath())
	}
}

func TestApplyTemplateUnknown(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Store().Set("keep.html", "safe")

	if err := s.ApplyTemplate("bogus"); !errors.Is(err, templates.ErrUnknownTemplate) {
		t.Fatalf("Expected ErrUnknownTemplate, got %v", err)
	}
	if !s.Store().Has("keep.html") {
		t.Error("Failed apply must leave the project untouched")
	}
}

func TestImport(t *testing.T) {
	s, editor, _ := newTestSession(t)
	s.Store().Set("index.html", "original")
	s.Open("index.html")

	// Import into the active document refreshes the editor
	if err := s.Import("index.html", "external edit"); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if editor.content != "external edit" {
		t.Errorf("Editor content = %q, want the imported text", editor.content)
	}

	// Import of a background file opens no tab
	if err := s.Import("new.css", "body {}"); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(s.Tabs()) != 1 {
		t.Errorf("Import must not open tabs, got %d", len(s.Tabs()))
	}
	if !s.Store().Has("new.css") {
		t.Error("Imported file missing from store")
	}
}

func TestLoadProject(t *testing.T) {
	s, _, _ := newTestSession(t)

	files := []models.File{
		{Path: "main.html", Content: "<html></html>"},
		{Path: "style.css", Content: "body {}"},
	}
	if err := s.LoadProject("Demo", files); err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if s.Name != "Demo" {
		t.Errorf("Name = %q, want Demo", s.Name)
	}
	// No index file: the first sorted path is opened
	if s.ActivePath() != "main.html" {
		t.Errorf("Active = %q, want main.html", s.ActivePath())
	}
}
