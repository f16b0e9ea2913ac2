// Package app provides the orchestration layer for merchterm.
//
// # Overview
//
// This package wires together configuration, logging, the preference store,
// the catalog loader and the UI. It is the composition root where all
// dependencies are initialized and connected.
//
// # Run Modes
//
//   - Run: the interactive Bubble Tea storefront
//   - List: prints the visible catalog as a table and exits
//   - Reveal: plays the scramble animation for one line of text
//
// All three share setup(), which loads config, applies CLI overrides, builds
// the zap logger and opens the preference file.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()       Read merchterm config
//	       ├─────> logging.New()       JSON log file
//	       ├─────> prefs.Open()        Favorites and theme
//	       ├─────> state.Store{}       Shared load state
//	       ├─────> StartLoader()       One-shot catalog load
//	       └─────> ui.Run()            Start TUI (blocks)
//
// # Error Handling
//
// Startup errors (unparseable config, unusable log file) are returned and
// make main exit 1. A catalog that fails to load does not stop the TUI: the
// loader records the error, the store falls back to an empty catalog and the
// UI shows it. List is stricter and returns the load error, since a headless
// listing of nothing is not useful.
package app
