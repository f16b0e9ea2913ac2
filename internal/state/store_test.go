package state

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bbqstudio/merchterm/internal/catalog"
)

func TestStore_ZeroValueIsNotLoaded(t *testing.T) {
	var s Store
	snap := s.Snapshot()
	if snap.Loaded || snap.Failed() {
		t.Fatalf("zero store should be unloaded: %+v", snap)
	}
	if snap.Catalog == nil || snap.Catalog.Len() != 0 {
		t.Fatalf("zero store should expose an empty catalog")
	}
	if snap.SourceLabel() != "built-in catalog" {
		t.Fatalf("SourceLabel = %q", snap.SourceLabel())
	}
}

func TestStore_UpdateSuccess(t *testing.T) {
	var s Store
	cat := catalog.New([]catalog.Product{{Title: "Soren Pin", Category: "Pins"}}, nil)

	before := time.Now()
	s.Update("shop.toml", cat, nil)

	snap := s.Snapshot()
	if !snap.Loaded || snap.Failed() {
		t.Fatalf("snapshot = %+v, want loaded without error", snap)
	}
	if snap.Catalog.Len() != 1 || snap.Source != "shop.toml" {
		t.Fatalf("snapshot catalog=%d source=%q", snap.Catalog.Len(), snap.Source)
	}
	if snap.LoadedAt.Before(before) {
		t.Fatalf("LoadedAt = %v, want >= %v", snap.LoadedAt, before)
	}
	if snap.SourceLabel() != "shop.toml" {
		t.Fatalf("SourceLabel = %q", snap.SourceLabel())
	}
}

func TestStore_UpdateErrorFallsBackToEmptyCatalog(t *testing.T) {
	var s Store
	s.Update("", catalog.Default(), nil)

	origErr := errors.New("boom")
	s.Update("https://shop.example/c.json", nil, origErr)

	snap := s.Snapshot()
	if !snap.Failed() {
		t.Fatalf("Failed should be true")
	}
	if snap.Catalog.Len() != 0 {
		t.Fatalf("catalog should be empty after a failed load, got %d", snap.Catalog.Len())
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError = %v, want wrapping %v", snap.LastError, origErr)
	}
	if snap.Attempts != 2 {
		t.Fatalf("Attempts = %d, want 2", snap.Attempts)
	}

	s.Update("", catalog.Default(), nil)
	if snap := s.Snapshot(); snap.LastError != nil || snap.Catalog.Len() == 0 {
		t.Fatalf("successful update should clear the error: %+v", snap)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	var s Store
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				s.Update("", catalog.Default(), nil)
			} else {
				s.Update("x", nil, errors.New("fail"))
			}
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()
	if s.Snapshot().Attempts != 8 {
		t.Fatalf("Attempts = %d, want 8", s.Snapshot().Attempts)
	}
}
