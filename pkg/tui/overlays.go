package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/pagepad/pagepad-cli/pkg/models"
	"github.com/pagepad/pagepad-cli/pkg/palette"
)

// overlay selects which modal surface sits over the main panes.
type overlay int

const (
	overlayNone overlay = iota
	overlayPalette
	overlayNewFile
	overlayTemplates
	overlayConfirmDelete
)

// PaletteOverlay pairs the command filter with its query input.
type PaletteOverlay struct {
	Input   textinput.Model
	Palette *palette.Palette
}

// NewPaletteOverlay builds the overlay over a static command list.
func NewPaletteOverlay(commands []palette.Command) *PaletteOverlay {
	ti := textinput.New()
	ti.Placeholder = "Type a command..."
	ti.CharLimit = 64
	ti.Width = 40
	return &PaletteOverlay{Input: ti, Palette: palette.New(commands)}
}

// Open resets the filter and focuses the query input.
func (o *PaletteOverlay) Open() {
	o.Palette.Reset()
	o.Input.SetValue("")
	o.Input.Focus()
}

// Close blurs the query input.
func (o *PaletteOverlay) Close() {
	o.Input.Blur()
}

// View renders the palette box.
func (o *PaletteOverlay) View(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Command Palette"))
	b.WriteString("\n")
	b.WriteString(o.Input.View())
	b.WriteString("\n\n")

	visible := o.Palette.Visible()
	if len(visible) == 0 {
		b.WriteString(PlaceholderStyle.Render("No matching commands"))
	}
	for i, c := range visible {
		name := c.Name
		pad := width - lipgloss.Width(name) - lipgloss.Width(c.Shortcut) - 6
		if pad < 1 {
			pad = 1
		}
		line := name + strings.Repeat(" ", pad) + ShortcutStyle.Render(c.Shortcut)
		if i == o.Palette.Highlighted() {
			line = SelectedStyle.Render(line)
		} else {
			line = NormalStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(visible)-1 {
			b.WriteString("\n")
		}
	}
	return overlayBox(width, b.String())
}

// NewFileOverlay is the filename prompt for file creation.
type NewFileOverlay struct {
	Input textinput.Model
	Err   string
}

// NewNewFileOverlay builds the prompt.
func NewNewFileOverlay() *NewFileOverlay {
	ti := textinput.New()
	ti.Placeholder = "filename (e.g. about.html)"
	ti.CharLimit = 128
	ti.Width = 40
	return &NewFileOverlay{Input: ti}
}

// Open clears and focuses the prompt.
func (o *NewFileOverlay) Open() {
	o.Input.SetValue("")
	o.Err = ""
	o.Input.Focus()
}

// Close blurs the prompt.
func (o *NewFileOverlay) Close() {
	o.Input.Blur()
}

// View renders the prompt box.
func (o *NewFileOverlay) View(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("New File"))
	b.WriteString("\n")
	b.WriteString(o.Input.View())
	b.WriteString("\n")
	if o.Err != "" {
		b.WriteString(ErrorStyle.Render(o.Err))
		b.WriteString("\n")
	}
	b.WriteString(DimStyle.Render("enter: create · esc: cancel"))
	return overlayBox(width, b.String())
}

// TemplateOverlay is the template gallery with a selection cursor.
type TemplateOverlay struct {
	Metas  []models.TemplateMeta
	Cursor int
}

// Open resets the selection.
func (o *TemplateOverlay) Open() {
	o.Cursor = 0
}

// Selected returns the template id under the cursor, or "".
func (o *TemplateOverlay) Selected() string {
	if o.Cursor < 0 || o.Cursor >= len(o.Metas) {
		return ""
	}
	return o.Metas[o.Cursor].ID
}

// View renders the gallery box.
func (o *TemplateOverlay) View(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Choose Template"))
	b.WriteString("\n")
	b.WriteString(ErrorStyle.Render("Applying a template replaces all files and tabs."))
	b.WriteString("\n\n")
	for i, m := range o.Metas {
		line := fmt.Sprintf("%s %s — %s (%d files)", m.Icon, m.Name, m.Description, m.FileCount)
		if i == o.Cursor {
			line = SelectedStyle.Render(line)
		} else {
			line = NormalStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(DimStyle.Render("enter: apply · esc: cancel"))
	return overlayBox(width, b.String())
}

// ConfirmDeleteOverlay asks before a file delete cascades into tabs and
// preview.
type ConfirmDeleteOverlay struct {
	Path string
}

// View renders the confirmation box.
func (o *ConfirmDeleteOverlay) View(width int) string {
	var b strings.Builder
	b.WriteString(ErrorStyle.Render(fmt.Sprintf("Delete %s?", o.Path)))
	b.WriteString("\n\n")
	b.WriteString(DimStyle.Render("y: delete · n/esc: cancel"))
	return overlayBox(width, b.String())
}

func overlayBox(width int, content string) string {
	boxWidth := width - 10
	if boxWidth > 64 {
		boxWidth = 64
	}
	if boxWidth < 30 {
		boxWidth = 30
	}
	return ActiveBorderStyle.Width(boxWidth).Padding(0, 1).Render(content)
}
