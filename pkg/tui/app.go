package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pagepad/pagepad-cli/pkg/assembler"
	"github.com/pagepad/pagepad-cli/pkg/layout"
	"github.com/pagepad/pagepad-cli/pkg/palette"
	"github.com/pagepad/pagepad-cli/pkg/preview"
	"github.com/pagepad/pagepad-cli/pkg/project"
	"github.com/pagepad/pagepad-cli/pkg/session"
	"github.com/pagepad/pagepad-cli/pkg/templates"
	"github.com/pagepad/pagepad-cli/pkg/watch"
)

type pane int

const (
	paneExplorer pane = iota
	paneEditor
	panePreview
)

// Config wires the app to the already constructed core components.
type Config struct {
	Session  *session.Session
	Renderer *preview.Renderer
	Registry *templates.Registry
	Editor   *EditorPane
	Watcher  *watch.Watcher
	BaseURL  string
}

// App is the root Bubble Tea model: three panes, a layout controller, and
// the modal overlays.
type App struct {
	session  *session.Session
	renderer *preview.Renderer
	registry *templates.Registry
	layouts  *layout.Controller
	watcher  *watch.Watcher
	baseURL  string

	editor      *EditorPane
	explorer    *Explorer
	previewPane *PreviewPane

	paletteOv  *PaletteOverlay
	newFileOv  *NewFileOverlay
	templateOv *TemplateOverlay
	confirmOv  *ConfirmDeleteOverlay
	overlay    overlay

	focus  pane
	width  int
	height int

	statusText string
}

// NewApp builds the root model. The session must already use cfg.Editor
// as its editor sink.
func NewApp(cfg Config) *App {
	a := &App{
		session:     cfg.Session,
		renderer:    cfg.Renderer,
		registry:    cfg.Registry,
		watcher:     cfg.Watcher,
		baseURL:     cfg.BaseURL,
		editor:      cfg.Editor,
		explorer:    NewExplorer(),
		previewPane: NewPreviewPane(),
		newFileOv:   NewNewFileOverlay(),
		templateOv:  &TemplateOverlay{Metas: cfg.Registry.List()},
		focus:       paneEditor,
	}
	a.layouts = layout.NewController(func() {
		a.editor.Relayout()
		a.resize()
	})
	a.paletteOv = NewPaletteOverlay(a.commands())
	a.editor.Focus()
	return a
}

// commands is the static palette list. Actions close over the app and run
// synchronously inside Update.
func (a *App) commands() []palette.Command {
	cmds := []palette.Command{
		{Name: "New File", Shortcut: "ctrl+n", Action: func() { a.openOverlay(overlayNewFile) }},
		{Name: "Choose Template", Shortcut: "ctrl+t", Action: func() { a.openOverlay(overlayTemplates) }},
		{Name: "Refresh Preview", Shortcut: "ctrl+r", Action: func() { a.renderer.Render() }},
		{Name: "Open Preview in Browser", Shortcut: "ctrl+b", Action: a.openInBrowser},
		{Name: "Share Project", Shortcut: "ctrl+s", Action: a.copyShareLink},
		{Name: "Export as HTML", Shortcut: "ctrl+e", Action: a.copyExportedHTML},
		{Name: "Close Tab", Shortcut: "ctrl+w", Action: a.closeActiveTab},
		{Name: "Cycle Layout", Shortcut: "ctrl+l", Action: func() { a.layouts.Cycle() }},
	}
	for _, m := range layout.Modes() {
		mode := m
		cmds = append(cmds, palette.Command{
			Name:   fmt.Sprintf("Layout: %s", mode),
			Action: func() { a.layouts.Set(mode) },
		})
	}
	return cmds
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{listenRenders(a.renderer.Events())}
	if a.watcher != nil {
		cmds = append(cmds, listenWatch(a.watcher.Changes()))
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case StatusMsg:
		a.statusText = string(msg)
		return a, nil

	case renderEventMsg:
		a.previewPane.Apply(msg.event)
		return a, listenRenders(a.renderer.Events())

	case watchChangeMsg:
		a.applyExternalChange(msg.change)
		return a, listenWatch(a.watcher.Changes())

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.overlay != overlayNone {
			return a.updateOverlay(msg)
		}
		return a.updateMain(msg)
	}

	return a, nil
}

func (a *App) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+p":
		a.openOverlay(overlayPalette)
		return a, nil
	case "ctrl+n":
		a.openOverlay(overlayNewFile)
		return a, nil
	case "ctrl+t":
		a.openOverlay(overlayTemplates)
		return a, nil
	case "ctrl+r":
		a.renderer.Render()
		return a, status("Preview refreshed")
	case "ctrl+b":
		a.openInBrowser()
		return a, nil
	case "ctrl+s":
		a.copyShareLink()
		return a, nil
	case "ctrl+e":
		a.copyExportedHTML()
		return a, nil
	case "ctrl+w":
		a.closeActiveTab()
		return a, nil
	case "ctrl+l":
		a.layouts.Cycle()
		return a, nil
	case "tab":
		a.cycleFocus()
		return a, nil
	case "shift+tab":
		a.activateNextTab()
		return a, nil
	}

	switch a.focus {
	case paneExplorer:
		return a.updateExplorer(msg)
	case paneEditor:
		cmd, edited := a.editor.Update(msg)
		if edited {
			if err := a.session.Edit(a.editor.Path, a.editor.Value()); err != nil {
				a.statusText = err.Error()
			}
		}
		return a, cmd
	case panePreview:
		return a, a.previewPane.Update(msg)
	}
	return a, nil
}

func (a *App) updateExplorer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	paths := a.session.Store().Paths()
	a.explorer.Clamp(len(paths))

	switch msg.String() {
	case "up", "k":
		a.explorer.MoveUp()
	case "down", "j":
		a.explorer.MoveDown(len(paths))
	case "enter":
		if selected := a.explorer.Selected(paths); selected != "" {
			if err := a.session.Open(selected); err != nil {
				a.statusText = err.Error()
			} else {
				a.setFocus(paneEditor)
			}
		}
	case "n":
		a.openOverlay(overlayNewFile)
	case "d", "delete":
		if selected := a.explorer.Selected(paths); selected != "" {
			a.confirmOv = &ConfirmDeleteOverlay{Path: selected}
			a.overlay = overlayConfirmDelete
		}
	}
	return a, nil
}

func (a *App) updateOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.overlay {
	case overlayPalette:
		return a.updatePalette(msg)
	case overlayNewFile:
		return a.updateNewFile(msg)
	case overlayTemplates:
		return a.updateTemplates(msg)
	case overlayConfirmDelete:
		return a.updateConfirmDelete(msg)
	}
	return a, nil
}

func (a *App) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.closeOverlay()
		return a, nil
	case "down":
		a.paletteOv.Palette.MoveDown()
		return a, nil
	case "up":
		a.paletteOv.Palette.MoveUp()
		return a, nil
	case "enter":
		if a.paletteOv.Palette.Invoke() {
			// Invoke may itself open another overlay; only close when it
			// did not.
			if a.overlay == overlayPalette {
				a.closeOverlay()
			}
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.paletteOv.Input, cmd = a.paletteOv.Input.Update(msg)
	a.paletteOv.Palette.SetQuery(a.paletteOv.Input.Value())
	return a, cmd
}

func (a *App) updateNewFile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.closeOverlay()
		return a, nil
	case "enter":
		name := a.newFileOv.Input.Value()
		if name == "" {
			a.newFileOv.Err = "Please enter a filename"
			return a, nil
		}
		if err := a.session.NewFile(name); err != nil {
			a.newFileOv.Err = err.Error()
			return a, nil
		}
		a.closeOverlay()
		a.setFocus(paneEditor)
		return a, status(fmt.Sprintf("Created %s", name))
	}

	var cmd tea.Cmd
	a.newFileOv.Input, cmd = a.newFileOv.Input.Update(msg)
	return a, cmd
}

func (a *App) updateTemplates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.closeOverlay()
	case "down", "j":
		if a.templateOv.Cursor < len(a.templateOv.Metas)-1 {
			a.templateOv.Cursor++
		}
	case "up", "k":
		if a.templateOv.Cursor > 0 {
			a.templateOv.Cursor--
		}
	case "enter":
		id := a.templateOv.Selected()
		if id == "" {
			return a, nil
		}
		if err := a.session.ApplyTemplate(id); err != nil {
			a.statusText = err.Error()
			a.closeOverlay()
			return a, nil
		}
		name, _ := a.registry.Name(id)
		a.closeOverlay()
		a.setFocus(paneEditor)
		return a, status(fmt.Sprintf("Template %q loaded", name))
	}
	return a, nil
}

func (a *App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		path := a.confirmOv.Path
		a.closeOverlay()
		if err := a.session.DeleteFile(path); err != nil {
			a.statusText = err.Error()
			return a, nil
		}
		a.explorer.Clamp(a.session.Store().Len())
		return a, status(fmt.Sprintf("Deleted %s", path))
	case "n", "esc":
		a.closeOverlay()
	}
	return a, nil
}

func (a *App) applyExternalChange(change watch.Change) {
	if change.Removed {
		// Already-gone files are fine: rename events arrive in pairs.
		if a.session.Store().Has(change.Path) {
			if err := a.session.DeleteFile(change.Path); err != nil {
				a.statusText = err.Error()
			}
		}
		return
	}
	if err := a.session.Import(change.Path, change.Content); err != nil {
		a.statusText = err.Error()
	}
}

func (a *App) openOverlay(o overlay) {
	a.overlay = o
	a.editor.Blur()
	switch o {
	case overlayPalette:
		a.paletteOv.Open()
	case overlayNewFile:
		a.newFileOv.Open()
	case overlayTemplates:
		a.templateOv.Open()
	}
}

func (a *App) closeOverlay() {
	switch a.overlay {
	case overlayPalette:
		a.paletteOv.Close()
	case overlayNewFile:
		a.newFileOv.Close()
	}
	a.overlay = overlayNone
	if a.focus == paneEditor {
		a.editor.Focus()
	}
}

func (a *App) cycleFocus() {
	order := []pane{paneExplorer, paneEditor, panePreview}
	visible := func(p pane) bool {
		switch p {
		case paneEditor:
			return a.layouts.ShowsEditor()
		case panePreview:
			return a.layouts.ShowsPreview()
		}
		return true
	}
	current := a.focus
	for i := 0; i < len(order); i++ {
		if order[i] == current {
			for j := 1; j <= len(order); j++ {
				next := order[(i+j)%len(order)]
				if visible(next) {
					a.setFocus(next)
					return
				}
			}
		}
	}
}

func (a *App) setFocus(p pane) {
	a.focus = p
	if p == paneEditor {
		a.editor.Focus()
	} else {
		a.editor.Blur()
	}
}

func (a *App) activateNextTab() {
	tabs := a.session.Tabs()
	if len(tabs) < 2 {
		return
	}
	active := a.session.ActivePath()
	for i, t := range tabs {
		if t.Path == active {
			next := tabs[(i+1)%len(tabs)].Path
			if err := a.session.Activate(next); err != nil {
				a.statusText = err.Error()
			}
			return
		}
	}
	a.session.Activate(tabs[0].Path)
}

func (a *App) closeActiveTab() {
	active := a.session.ActivePath()
	if active == "" {
		return
	}
	if err := a.session.Close(active); err != nil {
		a.statusText = err.Error()
	}
}

func (a *App) openInBrowser() {
	err := a.renderer.OpenInNewSurface(preview.OpenBrowser)
	if err != nil {
		a.statusText = fmt.Sprintf("Cannot open preview: %v", err)
		return
	}
	a.statusText = "Preview opened in browser"
}

func (a *App) copyShareLink() {
	proj := project.FromSnapshot(a.session.Name, a.session.Snapshot())
	link, err := project.EncodeShareLink(proj)
	if err == nil {
		err = clipboard.WriteAll(link)
	}
	if err != nil {
		a.statusText = fmt.Sprintf("Share failed: %v", err)
		return
	}
	a.statusText = "Share link copied to clipboard"
}

func (a *App) copyExportedHTML() {
	doc, err := assembler.Assemble(a.session.Snapshot())
	if err == nil {
		err = clipboard.WriteAll(doc)
	}
	if err != nil {
		a.statusText = fmt.Sprintf("Export failed: %v", err)
		return
	}
	a.statusText = "Assembled HTML copied to clipboard"
}
