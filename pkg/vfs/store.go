// Package vfs holds the in-memory virtual project: the authoritative
// mapping from file path to text content for the current session.
package vfs

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/pagepad/pagepad-cli/pkg/models"
)

var (
	// ErrInvalidPath is returned for empty or malformed paths.
	ErrInvalidPath = errors.New("invalid path")
	// ErrNotFound is returned for operations on absent paths.
	ErrNotFound = errors.New("file not found")
)

// Store is an ordered path→content mapping. It never touches rendering or
// persistence; all mutation is in-memory. Paths are unique and
// case-sensitive. Safe for concurrent use: the session writes from the
// program goroutine while the preview renderer snapshots from its debounce
// timer goroutine.
type Store struct {
	mu    sync.RWMutex
	files map[string]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{files: make(map[string]string)}
}

// Set inserts or overwrites the file at path. Content is unconstrained.
func (s *Store) Set(path, content string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	s.mu.Lock()
	s.files[path] = content
	s.mu.Unlock()
	return nil
}

// Get returns the content at path.
func (s *Store) Get(path string) (string, error) {
	s.mu.RLock()
	content, ok := s.files[path]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return content, nil
}

// Has reports whether path exists in the store.
func (s *Store) Has(path string) bool {
	s.mu.RLock()
	_, ok := s.files[path]
	s.mu.RUnlock()
	return ok
}

// Delete removes the file at path. Deleting an absent path is an error so
// callers cannot silently mistype a path.
func (s *Store) Delete(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[path]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	delete(s.files, path)
	return nil
}

// Len returns the number of files.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// Paths returns all paths in lexicographic order. The ordering is part of
// the contract: explorer listings and preview assembly both depend on it.
func (s *Store) Paths() []string {
	s.mu.RLock()
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	s.mu.RUnlock()
	sort.Strings(paths)
	return paths
}

// Snapshot returns a read-only copy of the whole store, usable by exporters
// and the preview assembler without exposing store internals.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(map[string]string, len(s.files))
	for p, c := range s.files {
		snap[p] = c
	}
	return snap
}

// Replace discards all files and installs the given bundle. Used when
// applying a template.
func (s *Store) Replace(files []models.File) error {
	for _, f := range files {
		if f.Path == "" {
			return fmt.Errorf("%w: template bundle contains an empty path", ErrInvalidPath)
		}
	}
	fresh := make(map[string]string, len(files))
	for _, f := range files {
		fresh[f.Path] = f.Content
	}
	s.mu.Lock()
	s.files = fresh
	s.mu.Unlock()
	return nil
}
