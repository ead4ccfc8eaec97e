package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pagepad/pagepad-cli/pkg/preview"
)

// PreviewPane shows the assembled document's source in a scrollable
// viewport. The browser shows the rendered page; this pane keeps the tool
// usable without one.
type PreviewPane struct {
	viewport    viewport.Model
	document    string
	url         string
	placeholder bool
	err         error
	width       int
}

// NewPreviewPane starts in the placeholder state.
func NewPreviewPane() *PreviewPane {
	return &PreviewPane{
		viewport:    viewport.New(60, 20),
		placeholder: true,
	}
}

// SetSize resizes the viewport and rewraps the content.
func (p *PreviewPane) SetSize(width, height int) {
	p.width = width
	p.viewport.Width = width
	p.viewport.Height = height
	p.refill()
}

// Apply ingests a renderer event.
func (p *PreviewPane) Apply(event preview.Event) {
	switch event.Kind {
	case preview.EventRendered:
		p.document = event.Document
		p.url = event.URL
		p.placeholder = false
		p.err = nil
	case preview.EventPlaceholder:
		p.placeholder = true
		p.err = event.Err
	}
	p.refill()
}

// URL returns the live document's address, or "" in the placeholder state.
func (p *PreviewPane) URL() string {
	if p.placeholder {
		return ""
	}
	return p.url
}

// Update forwards scrolling keys to the viewport.
func (p *PreviewPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// View renders the pane.
func (p *PreviewPane) View() string {
	if p.placeholder {
		return PlaceholderStyle.Render("No preview. Add an HTML file to the project.")
	}
	return p.viewport.View()
}

func (p *PreviewPane) refill() {
	if p.placeholder || p.document == "" {
		return
	}
	width := p.width
	if width < 10 {
		width = 10
	}
	header := ""
	if p.url != "" {
		header = DimStyle.Render(fmt.Sprintf("live at %s", p.url)) + "\n\n"
	}
	p.viewport.SetContent(header + wordwrap.String(p.document, width))
}
