package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bbqstudio/merchterm/internal/catalog"
	"github.com/bbqstudio/merchterm/internal/state"
)

type fakeLoader struct {
	cat    *catalog.Catalog
	err    error
	source string
}

func (f *fakeLoader) Load(_ context.Context, source string) (*catalog.Catalog, error) {
	f.source = source
	return f.cat, f.err
}

func waitLoaded(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("loader did not finish")
	}
}

func TestStartLoader_PublishesCatalog(t *testing.T) {
	store := &state.Store{}
	loader := &fakeLoader{cat: catalog.Default()}
	core, logs := observer.New(zapcore.InfoLevel)

	waitLoaded(t, StartLoader(context.Background(), store, loader, "shop.toml", zap.New(core)))

	snap := store.Snapshot()
	if !snap.Loaded || snap.LastError != nil || snap.Catalog.Len() != 8 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if loader.source != "shop.toml" || snap.Source != "shop.toml" {
		t.Fatalf("source = %q / %q", loader.source, snap.Source)
	}
	if logs.FilterMessage("catalog loaded").Len() != 1 {
		t.Fatalf("expected a catalog loaded entry, got %v", logs.All())
	}
}

func TestStartLoader_FailureFallsBackToEmpty(t *testing.T) {
	store := &state.Store{}
	loader := &fakeLoader{err: errors.New("connection refused")}
	core, logs := observer.New(zapcore.WarnLevel)

	waitLoaded(t, StartLoader(context.Background(), store, loader, "https://shop.example/c.json", zap.New(core)))

	snap := store.Snapshot()
	if !snap.Failed() || snap.Catalog.Len() != 0 {
		t.Fatalf("snapshot = %+v, want failed and empty", snap)
	}
	entries := logs.FilterMessage("catalog load failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one failure entry, got %v", logs.All())
	}
	if got := entries[0].ContextMap()["source"]; got != "https://shop.example/c.json" {
		t.Fatalf("logged source = %v", got)
	}
}

func TestStartLoader_LogsCatalogWarnings(t *testing.T) {
	store := &state.Store{}
	cat := catalog.New([]catalog.Product{{Title: "A"}, {Title: "A"}}, nil)
	core, logs := observer.New(zapcore.WarnLevel)

	waitLoaded(t, StartLoader(context.Background(), store, &fakeLoader{cat: cat}, "", zap.New(core)))

	if logs.FilterMessage("catalog entry skipped").Len() != 1 {
		t.Fatalf("expected the duplicate to be logged, got %v", logs.All())
	}
}

func TestStartLoader_NilLogger(t *testing.T) {
	store := &state.Store{}
	waitLoaded(t, StartLoader(context.Background(), store, &fakeLoader{cat: catalog.Empty()}, "", nil))
	if !store.Snapshot().Loaded {
		t.Fatalf("store should be loaded")
	}
}
