package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pagepad/pagepad-cli/pkg/layout"
)

const explorerOuterWidth = 28

// resize recomputes every pane's drawable area for the current window and
// layout mode.
func (a *App) resize() {
	if a.width == 0 || a.height == 0 {
		return
	}
	bodyHeight := a.height - 3 // header, tabs, status bar
	if bodyHeight < 4 {
		bodyHeight = 4
	}
	innerHeight := bodyHeight - 2 // pane borders

	a.explorer.SetSize(explorerOuterWidth-2, innerHeight)

	rest := a.width - explorerOuterWidth
	if rest < 20 {
		rest = 20
	}

	editorW, previewW := rest, rest
	editorH, previewH := innerHeight, innerHeight

	switch {
	case !a.layouts.ShowsEditor():
		// preview only
	case !a.layouts.ShowsPreview():
		// editor only
	case a.layouts.Stacked():
		editorH = innerHeight / 2
		previewH = innerHeight - editorH - 2
	default:
		editorW = a.editorColumnWidth(rest)
		previewW = rest - editorW
	}

	a.editor.SetSize(editorW-2, editorH)
	a.previewPane.SetSize(previewW-4, previewH)
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	header := a.headerView()
	tabs := a.tabsView()
	body := a.bodyView()
	if a.overlay != overlayNone {
		body = a.overlayView(lipgloss.Height(body))
	}
	statusBar := a.statusView()

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, body, statusBar)
}

func (a *App) headerView() string {
	left := TitleStyle.Render("PAGEPAD") + " " + NormalStyle.Render(a.session.Name)
	right := DimStyle.Render(fmt.Sprintf("layout: %s", a.layouts.Mode()))
	if a.baseURL != "" {
		right += DimStyle.Render("  ·  " + a.baseURL)
	}
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (a *App) tabsView() string {
	tabs := a.session.Tabs()
	if len(tabs) == 0 {
		return PlaceholderStyle.Render(" no open files ")
	}
	active := a.session.ActivePath()
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		label := t.Path
		if t.Modified {
			label += ModifiedMarkStyle.Render(" ●")
		}
		if t.Path == active {
			parts = append(parts, ActiveTabStyle.Render(label))
		} else {
			parts = append(parts, InactiveTabStyle.Render(label))
		}
	}
	return strings.Join(parts, "")
}

func (a *App) bodyView() string {
	bodyHeight := a.height - 3
	if bodyHeight < 4 {
		bodyHeight = 4
	}

	explorerBox := a.paneBox(a.explorer.View(a.session.Store().Paths(), a.session.ActivePath(), a.focus == paneExplorer),
		explorerOuterWidth-2, bodyHeight-2, a.focus == paneExplorer)

	rest := a.width - explorerOuterWidth
	if rest < 20 {
		rest = 20
	}

	var workArea string
	switch {
	case !a.layouts.ShowsEditor():
		workArea = a.paneBox(a.previewPane.View(), rest-2, bodyHeight-2, a.focus == panePreview)
	case !a.layouts.ShowsPreview():
		workArea = a.paneBox(a.editor.View(), rest-2, bodyHeight-2, a.focus == paneEditor)
	case a.layouts.Stacked():
		editorH := (bodyHeight - 2) / 2
		previewH := bodyHeight - 4 - editorH
		top := a.paneBox(a.editor.View(), rest-2, editorH, a.focus == paneEditor)
		bottom := a.paneBox(a.previewPane.View(), rest-2, previewH, a.focus == panePreview)
		workArea = lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	default:
		editorW := a.editorColumnWidth(rest)
		previewW := rest - editorW
		left := a.paneBox(a.editor.View(), editorW-2, bodyHeight-2, a.focus == paneEditor)
		right := a.paneBox(a.previewPane.View(), previewW-2, bodyHeight-2, a.focus == panePreview)
		workArea = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, explorerBox, workArea)
}

// editorColumnWidth splits the side-by-side work area: even halves in
// split mode, a two-thirds editor column in vertical mode.
func (a *App) editorColumnWidth(rest int) int {
	if a.layouts.Mode() == layout.Vertical {
		return rest * 2 / 3
	}
	return rest / 2
}

func (a *App) paneBox(content string, width, height int, focused bool) string {
	style := InactiveBorderStyle
	if focused {
		style = ActiveBorderStyle
	}
	return style.Width(width).Height(height).Render(content)
}

func (a *App) overlayView(bodyHeight int) string {
	var box string
	switch a.overlay {
	case overlayPalette:
		box = a.paletteOv.View(a.width)
	case overlayNewFile:
		box = a.newFileOv.View(a.width)
	case overlayTemplates:
		box = a.templateOv.View(a.width)
	case overlayConfirmDelete:
		box = a.confirmOv.View(a.width)
	}
	return lipgloss.Place(a.width, bodyHeight, lipgloss.Center, lipgloss.Center, box)
}

func (a *App) statusView() string {
	if a.statusText != "" {
		return StatusBarStyle.Render(a.statusText)
	}
	active := a.session.ActivePath()
	if active == "" {
		return StatusBarStyle.Render("no document · ctrl+p commands · ctrl+c quit")
	}
	return StatusBarStyle.Render(fmt.Sprintf("%s · %s · %d files · ctrl+p commands",
		active, a.editor.Language, a.session.Store().Len()))
}
