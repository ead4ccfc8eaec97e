// Package layout is the pane arrangement state machine. Every transition
// is legal; the interesting part is which panes each state shows and that
// the hosted editor is told to recompute its area after every change.
package layout

// Mode selects which panes are visible and how they are arranged.
type Mode string

const (
	Split       Mode = "split"
	Vertical    Mode = "vertical"
	Horizontal  Mode = "horizontal"
	PreviewOnly Mode = "preview-only"
	EditorOnly  Mode = "editor-only"
)

// Modes lists all layout modes in selection order.
func Modes() []Mode {
	return []Mode{Split, Vertical, Horizontal, PreviewOnly, EditorOnly}
}

// Controller tracks the active layout mode and notifies the relayout sink
// on every transition, since pane visibility changes the editor's area.
type Controller struct {
	mode     Mode
	relayout func()
}

// NewController starts in split mode. relayout may be nil.
func NewController(relayout func()) *Controller {
	return &Controller{mode: Split, relayout: relayout}
}

// Mode returns the current layout mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Set transitions to mode. Any state can reach any other state directly.
func (c *Controller) Set(mode Mode) {
	c.mode = mode
	if c.relayout != nil {
		c.relayout()
	}
}

// Cycle advances to the next mode in selection order, wrapping around.
func (c *Controller) Cycle() {
	modes := Modes()
	for i, m := range modes {
		if m == c.mode {
			c.Set(modes[(i+1)%len(modes)])
			return
		}
	}
	c.Set(Split)
}

// ShowsEditor reports whether the editor pane is visible.
func (c *Controller) ShowsEditor() bool {
	return c.mode != PreviewOnly
}

// ShowsPreview reports whether the preview pane is visible.
func (c *Controller) ShowsPreview() bool {
	return c.mode != EditorOnly
}

// Stacked reports whether the visible panes are arranged one above the
// other rather than side by side.
func (c *Controller) Stacked() bool {
	return c.mode == Horizontal
}
