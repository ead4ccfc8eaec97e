package tui

import (
	"testing"

	"github.com/pagepad/pagepad-cli/pkg/layout"
	"github.com/pagepad/pagepad-cli/pkg/session"
	"github.com/pagepad/pagepad-cli/pkg/templates"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	registry, err := templates.NewRegistry()
	if err != nil {
		t.Fatalf("Failed to load template catalog: %v", err)
	}
	editor := NewEditorPane()
	sess := session.New(registry, editor, nil)
	sess.Store().Set("index.html", "<html><body>hi</body></html>")
	if err := sess.Open("index.html"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	a := NewApp(Config{Session: sess, Registry: registry, Editor: editor})
	a.width = 120
	a.height = 36
	a.resize()
	return a
}

func TestBothPaneModesRenderDistinctArrangements(t *testing.T) {
	a := newTestApp(t)

	views := make(map[layout.Mode]string)
	for _, m := range []layout.Mode{layout.Split, layout.Vertical, layout.Horizontal} {
		a.layouts.Set(m)
		views[m] = a.bodyView()
	}

	if views[layout.Split] == views[layout.Vertical] {
		t.Error("split and vertical produce the same arrangement")
	}
	if views[layout.Split] == views[layout.Horizontal] {
		t.Error("split and horizontal produce the same arrangement")
	}
	if views[layout.Vertical] == views[layout.Horizontal] {
		t.Error("vertical and horizontal produce the same arrangement")
	}
}

func TestSinglePaneModesHideTheOtherPane(t *testing.T) {
	a := newTestApp(t)

	a.layouts.Set(layout.PreviewOnly)
	if a.layouts.ShowsEditor() {
		t.Error("preview-only must hide the editor")
	}
	previewOnly := a.bodyView()

	a.layouts.Set(layout.EditorOnly)
	if a.layouts.ShowsPreview() {
		t.Error("editor-only must hide the preview")
	}
	if a.bodyView() == previewOnly {
		t.Error("editor-only and preview-only render identically")
	}
}
