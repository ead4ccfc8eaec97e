// Package palette implements the command palette's filter and keyboard
// navigation over a static command list.
package palette

import "strings"

// Command is one palette entry. Action runs when the entry is invoked.
type Command struct {
	Name     string
	Shortcut string
	Action   func()
}

// Palette filters a static command list by case-insensitive substring
// match on the name and tracks a highlight over the visible subset.
// Non-matching commands are hidden, never removed.
type Palette struct {
	commands    []Command
	query       string
	highlighted int // index into Visible(), -1 when nothing highlighted
}

// New returns a palette over the given commands with an empty query.
func New(commands []Command) *Palette {
	return &Palette{commands: commands, highlighted: -1}
}

// SetQuery replaces the filter query and resets the highlight, since the
// visible subset may have changed under it.
func (p *Palette) SetQuery(query string) {
	p.query = query
	p.highlighted = -1
}

// Query returns the current filter query.
func (p *Palette) Query() string {
	return p.query
}

// Visible returns the commands matching the query, in list order.
func (p *Palette) Visible() []Command {
	if p.query == "" {
		return p.commands
	}
	q := strings.ToLower(p.query)
	var visible []Command
	for _, c := range p.commands {
		if strings.Contains(strings.ToLower(c.Name), q) {
			visible = append(visible, c)
		}
	}
	return visible
}

// Highlighted returns the highlight index into Visible(), or -1.
func (p *Palette) Highlighted() int {
	return p.highlighted
}

// MoveDown advances the highlight, wrapping past the end.
func (p *Palette) MoveDown() {
	p.move(1)
}

// MoveUp retreats the highlight, wrapping past the start.
func (p *Palette) MoveUp() {
	p.move(-1)
}

func (p *Palette) move(direction int) {
	visible := p.Visible()
	if len(visible) == 0 {
		p.highlighted = -1
		return
	}
	if p.highlighted < 0 {
		if direction > 0 {
			p.highlighted = 0
		} else {
			p.highlighted = len(visible) - 1
		}
		return
	}
	p.highlighted = (p.highlighted + direction + len(visible)) % len(visible)
}

// Invoke runs the highlighted command, or the first visible one when
// nothing is highlighted. It reports whether a command ran; the caller
// closes the palette on true.
func (p *Palette) Invoke() bool {
	visible := p.Visible()
	if len(visible) == 0 {
		return false
	}
	idx := p.highlighted
	if idx < 0 || idx >= len(visible) {
		idx = 0
	}
	if visible[idx].Action != nil {
		visible[idx].Action()
	}
	return true
}

// Reset clears the query and highlight, for reopening the palette fresh.
func (p *Palette) Reset() {
	p.query = ""
	p.highlighted = -1
}
