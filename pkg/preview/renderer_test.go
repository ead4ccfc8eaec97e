package preview

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pagepad/pagepad-cli/pkg/assembler"
	"github.com/pagepad/pagepad-cli/pkg/vfs"
)

// fakeSurface records what the renderer publishes without any HTTP.
type fakeSurface struct {
	mu           sync.Mutex
	published    []string
	placeholders int
}

func (f *fakeSurface) Publish(token string) {
	f.mu.Lock()
	f.published = append(f.published, token)
	f.mu.Unlock()
}

func (f *fakeSurface) ShowPlaceholder() {
	f.mu.Lock()
	f.placeholders++
	f.mu.Unlock()
}

func (f *fakeSurface) URL(token string) string {
	return "test://" + token
}

func (f *fakeSurface) publishedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}

type snapshotSource struct {
	mu    sync.Mutex
	files map[string]string
}

func (s *snapshotSource) set(path, content string) {
	s.mu.Lock()
	s.files[path] = content
	s.mu.Unlock()
}

func (s *snapshotSource) snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(map[string]string, len(s.files))
	for p, c := range s.files {
		snap[p] = c
	}
	return snap
}

func newTestRenderer(debounce time.Duration) (*Renderer, *Registry, *fakeSurface, *snapshotSource) {
	registry := NewRegistry()
	surface := &fakeSurface{}
	source := &snapshotSource{files: map[string]string{
		"index.html": "<html><head></head><body>v0</body></html>",
	}}
	r := NewRenderer(registry, surface, source.snapshot, debounce)
	return r, registry, surface, source
}

func TestRenderSwapsHandle(t *testing.T) {
	r, registry, surface, source := newTestRenderer(time.Hour)
	defer r.Close()

	r.Render()
	if surface.publishedCount() != 1 {
		t.Fatalf("Expected 1 publish, got %d", surface.publishedCount())
	}
	first := surface.published[0]

	source.set("index.html", "<html><head></head><body>v1</body></html>")
	r.Render()

	if surface.publishedCount() != 2 {
		t.Fatalf("Expected 2 publishes, got %d", surface.publishedCount())
	}
	second := surface.published[1]

	// The superseded handle is released, the new one is live
	if _, ok := registry.Get(first); ok {
		t.Error("Superseded handle still live")
	}
	doc, ok := registry.Get(second)
	if !ok {
		t.Fatal("Current handle not live")
	}
	if !strings.Contains(doc, "v1") {
		t.Errorf("Current document is stale: %q", doc)
	}
	if registry.Live() != 1 {
		t.Errorf("Live = %d, want exactly the current handle", registry.Live())
	}
}

func TestRenderFailureRetainsHandle(t *testing.T) {
	r, registry, surface, source := newTestRenderer(time.Hour)
	defer r.Close()

	r.Render()
	live := surface.published[0]

	// Remove the entry document: assembly now fails
	source.mu.Lock()
	delete(source.files, "index.html")
	source.mu.Unlock()

	createdBefore, _ := registry.Counts()
	r.Render()

	if surface.placeholders != 1 {
		t.Errorf("Expected the placeholder, got %d calls", surface.placeholders)
	}
	// No new handle was allocated and the old one survived
	createdAfter, _ := registry.Counts()
	if createdAfter != createdBefore {
		t.Error("Failed render allocated a handle")
	}
	if _, ok := registry.Get(live); !ok {
		t.Error("Failed render corrupted the previous handle")
	}

	event := <-r.Events() // the successful render
	event = <-r.Events()
	if event.Kind != EventPlaceholder {
		t.Errorf("Expected EventPlaceholder, got %v", event.Kind)
	}
	if !errors.Is(event.Err, assembler.ErrNoEntryDocument) {
		t.Errorf("Expected ErrNoEntryDocument, got %v", event.Err)
	}
}

func TestScheduleDebounces(t *testing.T) {
	r, _, surface, source := newTestRenderer(40 * time.Millisecond)
	defer r.Close()

	// A burst of edits within the debounce window
	for i := 0; i < 10; i++ {
		source.set("index.html", "<html><head></head><body>edit</body></html>")
		r.Schedule()
		time.Sleep(2 * time.Millisecond)
	}
	source.set("index.html", "<html><head></head><body>final</body></html>")
	r.Schedule()

	time.Sleep(200 * time.Millisecond)

	// Only the trailing schedule fired, against the final content
	if got := surface.publishedCount(); got != 1 {
		t.Fatalf("Expected 1 render for the burst, got %d", got)
	}
	event := <-r.Events()
	if !strings.Contains(event.Document, "final") {
		t.Errorf("Rendered stale content: %q", event.Document)
	}
}

func TestScheduleReadsSnapshotAtFireTime(t *testing.T) {
	r, _, _, source := newTestRenderer(40 * time.Millisecond)
	defer r.Close()

	r.Schedule()
	// Mutate after scheduling but before the timer fires
	source.set("index.html", "<html><head></head><body>late write</body></html>")

	time.Sleep(200 * time.Millisecond)

	event := <-r.Events()
	if !strings.Contains(event.Document, "late write") {
		t.Errorf("Snapshot was taken at schedule time, not fire time: %q", event.Document)
	}
}

func TestOpenInNewSurface(t *testing.T) {
	r, registry, _, _ := newTestRenderer(time.Hour)
	defer r.Close()
	r.SetGracePeriod(30 * time.Millisecond)

	r.Render()

	var opened string
	err := r.OpenInNewSurface(func(url string) error {
		opened = url
		return nil
	})
	if err != nil {
		t.Fatalf("OpenInNewSurface failed: %v", err)
	}
	if opened == "" {
		t.Fatal("Viewer callback never ran")
	}

	// Independent of the live handle: two live until the grace period ends
	if registry.Live() != 2 {
		t.Errorf("Live = %d, want 2", registry.Live())
	}
	time.Sleep(150 * time.Millisecond)
	if registry.Live() != 1 {
		t.Errorf("Live = %d after grace period, want 1", registry.Live())
	}
}

// Timer-fired renders snapshot the store from their own goroutine while
// the owner keeps writing, exactly the production wiring. The race
// detector fails this test if the store is not safe for that.
func TestTimerRendersAgainstConcurrentEdits(t *testing.T) {
	registry := NewRegistry()
	surface := &fakeSurface{}
	store := vfs.NewStore()
	store.Set("index.html", "<html><head></head><body>v0</body></html>")

	r := NewRenderer(registry, surface, store.Snapshot, 200*time.Microsecond)
	defer r.Close()

	for i := 0; i < 200; i++ {
		store.Set("index.html", fmt.Sprintf("<html><head></head><body>v%d</body></html>", i))
		r.Schedule()
		// Spaced past the debounce so timers actually fire mid-burst
		time.Sleep(500 * time.Microsecond)
	}
	time.Sleep(20 * time.Millisecond)

	r.Render()
	if registry.Live() != 1 {
		t.Errorf("Live = %d, want exactly the current handle", registry.Live())
	}
	if got := surface.publishedCount(); got == 0 {
		t.Error("No timer-fired render was published")
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	r, registry, _, _ := newTestRenderer(time.Hour)

	r.Render()
	r.Render()
	r.Close()

	created, released := registry.Counts()
	if created != released {
		t.Errorf("Leaked handles: created %d, released %d", created, released)
	}
	if registry.Live() != 0 {
		t.Errorf("Live = %d after Close, want 0", registry.Live())
	}
}
