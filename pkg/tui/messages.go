package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pagepad/pagepad-cli/pkg/preview"
	"github.com/pagepad/pagepad-cli/pkg/watch"
)

// StatusMsg updates the status bar.
type StatusMsg string

// renderEventMsg carries one renderer notification into the update loop.
type renderEventMsg struct {
	event preview.Event
}

// watchChangeMsg carries one external file change into the update loop,
// where it is applied on the program goroutine. The core session stays
// single-threaded that way.
type watchChangeMsg struct {
	change watch.Change
}

func listenRenders(events <-chan preview.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return renderEventMsg{event: event}
	}
}

func listenWatch(changes <-chan watch.Change) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return nil
		}
		return watchChangeMsg{change: change}
	}
}

func status(format string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg(format)
	}
}
