// Package state shares the catalog load result between the loader goroutine
// and the UI.
//
// # Architecture
//
//	Producer (Loader):             Consumer (UI):
//	┌────────────────┐            ┌──────────────────┐
//	│ catalog.Load() │            │ tick             │
//	│      ↓         │            │      ↓           │
//	│ store.Update() │───────────→│ store.Snapshot() │
//	│  (once)        │  (mutex)   │ build engine     │
//	└────────────────┘            └──────────────────┘
//
// The loader writes exactly once per run. The UI polls Snapshot until Loaded
// is true and then builds its storefront engine from the catalog.
//
// # Core Types
//
// Store:
//   - Uses sync.RWMutex; the zero value is ready to use
//   - A failed load stores catalog.Empty() together with the error
//
// Snapshot:
//   - Returned by value; the catalog inside is immutable and shared
//   - LastError is re-wrapped so callers cannot alias the stored error
//   - Failed() and SourceLabel() feed the store view's status line
package state
