// Package session mediates between the editor widget and the file store.
// It is the only component that routes edits into the store and the only
// one that knows which file is active.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pagepad/pagepad-cli/pkg/models"
	"github.com/pagepad/pagepad-cli/pkg/templates"
	"github.com/pagepad/pagepad-cli/pkg/vfs"
)

var (
	// ErrExists is returned when creating a file over an existing path.
	ErrExists = errors.New("file already exists")
	// ErrNotActive is returned when an edit targets a non-active path.
	// That is a caller bug: accepting it would let a stale widget clobber
	// a different file.
	ErrNotActive = errors.New("edit on non-active path")
)

// Editor is the capability set the session requires from the hosting
// editor widget. The widget is a pure sink: it is driven by these calls
// and never queried back for state.
type Editor interface {
	SetText(path, content string, language models.Language)
	Clear()
	Relayout()
}

// Refresher schedules a debounced preview refresh.
type Refresher interface {
	Schedule()
}

// NopEditor satisfies Editor with no-ops, for headless use and tests.
type NopEditor struct{}

func (NopEditor) SetText(string, string, models.Language) {}
func (NopEditor) Clear()                                  {}
func (NopEditor) Relayout()                               {}

// Session owns the live project state: the file store, the open tabs in
// opening order, and the active tab. Invariants held at every transition:
// at most one tab per path, tabs are a subset of store paths, and the
// active path is an open tab or empty.
type Session struct {
	Name string

	store    *vfs.Store
	registry *templates.Registry
	editor   Editor
	preview  Refresher

	tabs   []models.Tab
	active string
}

// New creates an empty session. Callers normally follow up with
// ApplyTemplate to seed the project.
func New(registry *templates.Registry, editor Editor, preview Refresher) *Session {
	if editor == nil {
		editor = NopEditor{}
	}
	return &Session{
		Name:     "My Project",
		store:    vfs.NewStore(),
		registry: registry,
		editor:   editor,
		preview:  preview,
	}
}

// Store exposes the file store for read paths (listings, assembly).
func (s *Session) Store() *vfs.Store {
	return s.store
}

// Snapshot returns a read-only {path: content} copy of the whole project,
// for the assembler and external exporters.
func (s *Session) Snapshot() map[string]string {
	return s.store.Snapshot()
}

// Tabs returns the open tabs in opening order.
func (s *Session) Tabs() []models.Tab {
	tabs := make([]models.Tab, len(s.tabs))
	copy(tabs, s.tabs)
	return tabs
}

// ActivePath returns the active tab's path, or "" in the no-document state.
func (s *Session) ActivePath() string {
	return s.active
}

// Open opens a tab for path, creating it on first open. Opening an already
// open path just activates it.
func (s *Session) Open(path string) error {
	if !s.store.Has(path) {
		return fmt.Errorf("cannot open %s: %w", path, vfs.ErrNotFound)
	}
	if s.tabIndex(path) >= 0 {
		return s.Activate(path)
	}
	s.tabs = append(s.tabs, models.Tab{Path: path})
	s.setActive(path)
	s.schedule()
	return nil
}

// Activate makes an already open tab the active one and loads its content
// into the editor widget. No-op when the tab is already active.
func (s *Session) Activate(path string) error {
	if s.tabIndex(path) < 0 {
		return fmt.Errorf("no open tab for %s: %w", path, vfs.ErrNotFound)
	}
	if s.active == path {
		return nil
	}
	s.setActive(path)
	return nil
}

// Edit writes new content for the active document. This is the sole write
// path for file content; edits against any other path fail loudly.
func (s *Session) Edit(path, newContent string) error {
	if path != s.active {
		return fmt.Errorf("%w: %s (active: %q)", ErrNotActive, path, s.active)
	}
	if err := s.store.Set(path, newContent); err != nil {
		return err
	}
	if i := s.tabIndex(path); i >= 0 {
		s.tabs[i].Modified = true
	}
	s.schedule()
	return nil
}

// Close removes the tab for path. When the active tab closes, the most
// recently opened remaining tab takes over; with no tabs left the session
// enters the no-document state.
func (s *Session) Close(path string) error {
	i := s.tabIndex(path)
	if i < 0 {
		return fmt.Errorf("no open tab for %s: %w", path, vfs.ErrNotFound)
	}
	s.closeAt(i)
	return nil
}

// NewFile creates a file with language-appropriate starter content and
// opens it.
func (s *Session) NewFile(path string) error {
	if s.store.Has(path) {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err := s.store.Set(path, templates.StarterContent(path)); err != nil {
		return err
	}
	return s.Open(path)
}

// DeleteFile removes path from the store and closes its tab if one is
// open. The preview is re-derived against the remaining file set.
func (s *Session) DeleteFile(path string) error {
	if err := s.store.Delete(path); err != nil {
		return err
	}
	if i := s.tabIndex(path); i >= 0 {
		s.closeAt(i)
	}
	s.schedule()
	return nil
}

// Import writes content for path without tab bookkeeping. It is the entry
// point for external writers (directory mirror, AI output): same write
// path as human edits, no privileged bypass.
func (s *Session) Import(path, content string) error {
	if err := s.store.Set(path, content); err != nil {
		return err
	}
	if path == s.active {
		s.editor.SetText(path, content, models.LanguageForPath(path))
	}
	s.schedule()
	return nil
}

// ApplyTemplate replaces the whole project with a fresh copy of the
// template bundle. Replace, not merge: prior files and tabs are discarded.
// The entry HTML file (or the first file) is opened afterwards.
func (s *Session) ApplyTemplate(id string) error {
	files, err := s.registry.Instantiate(id)
	if err != nil {
		return err
	}
	if err := s.store.Replace(files); err != nil {
		return err
	}
	s.tabs = nil
	s.active = ""
	s.editor.Clear()

	if first := s.entryCandidate(); first != "" {
		if err := s.Open(first); err != nil {
			return err
		}
	}
	s.schedule()
	return nil
}

// LoadProject replaces the project with the given file set, same cascade
// as applying a template.
func (s *Session) LoadProject(name string, files []models.File) error {
	if err := s.store.Replace(files); err != nil {
		return err
	}
	if name != "" {
		s.Name = name
	}
	s.tabs = nil
	s.active = ""
	s.editor.Clear()

	if first := s.entryCandidate(); first != "" {
		if err := s.Open(first); err != nil {
			return err
		}
	}
	s.schedule()
	return nil
}

func (s *Session) entryCandidate() string {
	paths := s.store.Paths()
	for _, p := range paths {
		if strings.Contains(strings.ToLower(p), "index.html") {
			return p
		}
	}
	if len(paths) > 0 {
		return paths[0]
	}
	return ""
}

func (s *Session) tabIndex(path string) int {
	for i, t := range s.tabs {
		if t.Path == path {
			return i
		}
	}
	return -1
}

func (s *Session) setActive(path string) {
	s.active = path
	content, err := s.store.Get(path)
	if err != nil {
		// Tabs are a subset of store paths, so this cannot happen in a
		// consistent session.
		return
	}
	s.editor.SetText(path, content, models.LanguageForPath(path))
}

func (s *Session) closeAt(i int) {
	closed := s.tabs[i].Path
	s.tabs = append(s.tabs[:i], s.tabs[i+1:]...)
	if s.active != closed {
		return
	}
	if len(s.tabs) > 0 {
		s.setActive(s.tabs[len(s.tabs)-1].Path)
	} else {
		s.active = ""
		s.editor.Clear()
	}
}

func (s *Session) schedule() {
	if s.preview != nil {
		s.preview.Schedule()
	}
}
