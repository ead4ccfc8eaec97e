// Package watch mirrors a directory into the virtual project: an initial
// load plus a change feed for external edits. Changes are emitted, not
// applied; the session owner applies them on its own goroutine so the
// core stays single-threaded.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fsnotify/fsnotify"

	"github.com/pagepad/pagepad-cli/pkg/models"
)

// MaxFileSize caps mirrored files. Anything bigger is not a hand-edited
// web asset.
const MaxFileSize = 1 << 20

// Change is one external filesystem event, already resolved to content.
type Change struct {
	Path    string
	Content string
	Removed bool
}

// Load reads the top level of dir into a file bundle, skipping
// directories, hidden files, oversized files, and non-text content.
func Load(dir string) ([]models.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var bundle []models.File
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		content, ok := readMirrorable(filepath.Join(dir, entry.Name()))
		if !ok {
			continue
		}
		bundle = append(bundle, models.File{Path: entry.Name(), Content: content})
	}

	sort.Slice(bundle, func(i, j int) bool { return bundle[i].Path < bundle[j].Path })
	return bundle, nil
}

// Watcher tails a directory and reports external changes on a channel.
type Watcher struct {
	dir     string
	fs      *fsnotify.Watcher
	changes chan Change
	done    chan struct{}
}

// NewWatcher starts watching dir. Callers drain Changes until Close.
func NewWatcher(dir string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		dir:     dir,
		fs:      fs,
		changes: make(chan Change, 16),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changes returns the external change feed.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Close stops watching and closes the change feed.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) run() {
	defer close(w.changes)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if change, ok := w.resolve(event); ok {
				select {
				case w.changes <- change:
				case <-w.done:
					return
				}
			}
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) resolve(event fsnotify.Event) (Change, bool) {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return Change{}, false
	}

	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		return Change{Path: name, Removed: true}, true
	}
	if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		content, ok := readMirrorable(event.Name)
		if !ok {
			return Change{}, false
		}
		return Change{Path: name, Content: content}, true
	}
	return Change{}, false
}

func readMirrorable(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() > MaxFileSize {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}
