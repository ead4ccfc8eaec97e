// Package preview owns the render side of the live preview: the debounce
// scheduler, the rendering handles, and the loopback surface that serves
// assembled documents to the browser.
package preview

import (
	"sync"
	"time"

	"github.com/pagepad/pagepad-cli/pkg/assembler"
)

// DefaultDebounce collapses bursts of edits into a single render.
const DefaultDebounce = 500 * time.Millisecond

// DefaultGracePeriod keeps one-shot handles alive long enough for an
// external viewer to fetch them.
const DefaultGracePeriod = 30 * time.Second

// EventKind tags renderer notifications.
type EventKind int

const (
	// EventRendered reports a successful render swap.
	EventRendered EventKind = iota
	// EventPlaceholder reports that assembly failed and the placeholder
	// state is shown.
	EventPlaceholder
)

// Event is pushed to listeners after every render attempt.
type Event struct {
	Kind     EventKind
	Document string
	URL      string
	Err      error
}

// Renderer owns the single live rendering handle. Scheduling resets one
// debounce timer instead of queuing renders, so only the trailing edit in
// a burst renders, against the store state at the moment the timer fires.
type Renderer struct {
	registry *Registry
	surface  Surface
	snapshot func() map[string]string
	debounce time.Duration
	grace    time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	current *Handle

	events chan Event
}

// NewRenderer wires a renderer to its document source and display surface.
// snapshot is called at render time, never earlier.
func NewRenderer(registry *Registry, surface Surface, snapshot func() map[string]string, debounce time.Duration) *Renderer {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Renderer{
		registry: registry,
		surface:  surface,
		snapshot: snapshot,
		debounce: debounce,
		grace:    DefaultGracePeriod,
		events:   make(chan Event, 8),
	}
}

// Events delivers a notification after every render attempt. The channel
// is buffered; when a listener lags, older events are dropped in favor of
// newer ones.
func (r *Renderer) Events() <-chan Event {
	return r.events
}

// Schedule requests a render after the debounce interval. A pending timer
// is reset, not stacked, so only the trailing request in a burst fires.
func (r *Renderer) Schedule() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.debounce, func() {
		r.Render()
	})
}

// Render assembles and swaps the live handle immediately. On assembly
// failure the previous handle is retained (never corrupted) and the
// surface shows the placeholder; no new handle is allocated. On success
// the new handle is published first and the superseded one released after,
// never the other way around.
func (r *Renderer) Render() {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := assembler.Assemble(r.snapshot())
	if err != nil {
		r.surface.ShowPlaceholder()
		r.emit(Event{Kind: EventPlaceholder, Err: err})
		return
	}

	handle := r.registry.Register(doc)
	r.surface.Publish(handle.Token())

	if r.current != nil {
		r.current.Release()
	}
	r.current = handle

	r.emit(Event{Kind: EventRendered, Document: doc, URL: r.surface.URL(handle.Token())})
}

// OpenInNewSurface assembles the current snapshot into a one-shot handle,
// hands its URL to the viewer callback, and releases the handle after the
// grace period. The handle is independent of the live one.
func (r *Renderer) OpenInNewSurface(view func(url string) error) error {
	doc, err := assembler.Assemble(r.snapshot())
	if err != nil {
		return err
	}

	r.mu.Lock()
	grace := r.grace
	r.mu.Unlock()

	handle := r.registry.Register(doc)
	time.AfterFunc(grace, func() {
		handle.Release()
	})

	return view(r.surface.URL(handle.Token()))
}

// SetGracePeriod overrides the one-shot release delay.
func (r *Renderer) SetGracePeriod(d time.Duration) {
	r.mu.Lock()
	r.grace = d
	r.mu.Unlock()
}

// Close cancels any pending render and releases the live handle. Every
// handle the renderer created is released exactly once across its life.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if r.current != nil {
		r.current.Release()
		r.current = nil
	}
}

func (r *Renderer) emit(e Event) {
	for {
		select {
		case r.events <- e:
			return
		default:
			select {
			case <-r.events:
			default:
			}
		}
	}
}
