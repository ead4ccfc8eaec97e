package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pagepad/pagepad-cli/pkg/models"
)

// EditorPane hosts the text-editing widget. It satisfies the session's
// editor-widget contract: the session drives it with SetText/Clear and
// pokes Relayout after pane visibility changes; it never reaches back
// into the session for state.
type EditorPane struct {
	Textarea textarea.Model
	Path     string
	Language models.Language

	width  int
	height int

	// lastContent is the content last pushed into or read out of the
	// widget. Update compares against it to detect human edits and to
	// keep programmatic SetText calls from echoing back as edits.
	lastContent string
}

// NewEditorPane returns an empty, unfocused editor pane.
func NewEditorPane() *EditorPane {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.Prompt = "  "
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(20)

	return &EditorPane{Textarea: ta}
}

// SetText loads a document into the widget and switches its language mode.
func (e *EditorPane) SetText(path, content string, language models.Language) {
	e.Path = path
	e.Language = language
	e.lastContent = content
	e.Textarea.SetValue(content)
	e.Textarea.CursorStart()
}

// Clear puts the widget into the no-document state.
func (e *EditorPane) Clear() {
	e.Path = ""
	e.Language = models.LangPlainText
	e.lastContent = ""
	e.Textarea.SetValue("")
}

// Relayout recomputes the widget's dimensions from the last known size.
func (e *EditorPane) Relayout() {
	e.Textarea.SetWidth(e.width)
	e.Textarea.SetHeight(e.height)
}

// SetSize stores the available area and relayouts.
func (e *EditorPane) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.Relayout()
}

// Focus gives keyboard focus to the widget.
func (e *EditorPane) Focus() {
	e.Textarea.Focus()
}

// Blur removes keyboard focus.
func (e *EditorPane) Blur() {
	e.Textarea.Blur()
}

// Update forwards a message to the widget and reports whether the content
// changed as a result, i.e. a human edit happened.
func (e *EditorPane) Update(msg tea.Msg) (tea.Cmd, bool) {
	var cmd tea.Cmd
	e.Textarea, cmd = e.Textarea.Update(msg)

	if e.Path == "" {
		return cmd, false
	}
	if value := e.Textarea.Value(); value != e.lastContent {
		e.lastContent = value
		return cmd, true
	}
	return cmd, false
}

// Value returns the widget's current text.
func (e *EditorPane) Value() string {
	return e.Textarea.Value()
}

// View renders the widget, or the placeholder in the no-document state.
func (e *EditorPane) View() string {
	if e.Path == "" {
		return PlaceholderStyle.Render("No file open. Press ctrl+n for a new file, ctrl+t for templates.")
	}
	return e.Textarea.View()
}
