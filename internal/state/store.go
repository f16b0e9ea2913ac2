package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/bbqstudio/merchterm/internal/catalog"
)

// Snapshot is the catalog load state the UI renders from.
type Snapshot struct {
	Catalog   *catalog.Catalog
	Loaded    bool
	Source    string
	LoadedAt  time.Time
	LastError error
	Attempts  int
}

// Failed reports whether the latest load ended in an error.
func (s Snapshot) Failed() bool {
	return s.Loaded && s.LastError != nil
}

// SourceLabel names where the catalog came from.
func (s Snapshot) SourceLabel() string {
	if s.Source == "" {
		return "built-in catalog"
	}
	return s.Source
}

// Store coordinates the loader goroutine and the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records a finished load. On error the catalog becomes empty so the
// UI shows its empty state, and the error is kept for display.
func (s *Store) Update(source string, cat *catalog.Catalog, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Loaded = true
	s.snapshot.Source = source
	s.snapshot.LoadedAt = time.Now()
	s.snapshot.Attempts++

	if err != nil || cat == nil {
		s.snapshot.Catalog = catalog.Empty()
		s.snapshot.LastError = err
		return
	}
	s.snapshot.Catalog = cat
	s.snapshot.LastError = nil
}

// Snapshot returns a copy of the current snapshot. The catalog is immutable
// and shared.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if snap.Catalog == nil {
		snap.Catalog = catalog.Empty()
	}
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
