package tui

import (
	"fmt"
	"strings"

	"github.com/pagepad/pagepad-cli/pkg/models"
)

// fileIcon maps a language to a short explorer glyph.
func fileIcon(lang models.Language) string {
	switch lang {
	case models.LangHTML:
		return "◇"
	case models.LangCSS:
		return "❖"
	case models.LangJavaScript:
		return "λ"
	case models.LangJSON:
		return "{}"
	case models.LangMarkdown:
		return "¶"
	default:
		return "·"
	}
}

// Explorer is the file listing pane. It renders the store's sorted paths
// and tracks a cursor for keyboard selection.
type Explorer struct {
	cursor int
	width  int
	height int
}

// NewExplorer returns an explorer with the cursor on the first entry.
func NewExplorer() *Explorer {
	return &Explorer{}
}

// SetSize stores the pane's drawable area.
func (x *Explorer) SetSize(width, height int) {
	x.width = width
	x.height = height
}

// Clamp keeps the cursor inside the listing after files come and go.
func (x *Explorer) Clamp(count int) {
	if x.cursor >= count {
		x.cursor = count - 1
	}
	if x.cursor < 0 {
		x.cursor = 0
	}
}

// MoveUp moves the cursor up one entry.
func (x *Explorer) MoveUp() {
	if x.cursor > 0 {
		x.cursor--
	}
}

// MoveDown moves the cursor down one entry.
func (x *Explorer) MoveDown(count int) {
	if x.cursor < count-1 {
		x.cursor++
	}
}

// Selected returns the path under the cursor, or "".
func (x *Explorer) Selected(paths []string) string {
	if x.cursor < 0 || x.cursor >= len(paths) {
		return ""
	}
	return paths[x.cursor]
}

// View renders the listing. The active document is highlighted even when
// the cursor sits elsewhere.
func (x *Explorer) View(paths []string, activePath string, focused bool) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("FILES"))
	b.WriteString("\n")

	if len(paths) == 0 {
		b.WriteString(PlaceholderStyle.Render("(empty project)"))
		return b.String()
	}

	for i, p := range paths {
		line := fmt.Sprintf("%s %s", fileIcon(models.LanguageForPath(p)), p)
		switch {
		case focused && i == x.cursor:
			line = SelectedStyle.Render(line)
		case p == activePath:
			line = TitleStyle.Render(line)
		default:
			line = NormalStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(paths)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
