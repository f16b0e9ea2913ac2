package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testCatalog = `
categories = ["Pins", "Stickers"]

[[products]]
title = "Soren Pin"
category = "Pins"
room = "Room 306"
price = { min = 25, max = 30 }

[[products]]
title = "Boss Sticker"
category = "Stickers"
room = "Room 205"
price = { min = 15, max = 20 }
`

// testOptions writes a catalog and isolates HOME so nothing touches the real
// config, prefs or log files.
func testOptions(t *testing.T) Options {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("LOG_LEVEL", "")

	catalogPath := filepath.Join(home, "catalog.toml")
	if err := os.WriteFile(catalogPath, []byte(testCatalog), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return Options{
		ConfigPath:    filepath.Join(home, "missing.toml"),
		CatalogSource: catalogPath,
		PrefsPath:     filepath.Join(home, "prefs.toml"),
		LogFile:       filepath.Join(home, "merchterm.log"),
	}
}

func TestList_PrintsVisibleProducts(t *testing.T) {
	opts := testOptions(t)

	var out bytes.Buffer
	if err := List(context.Background(), opts, ListOptions{Sort: "asc"}, &out); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	text := out.String()
	boss := strings.Index(text, "Boss Sticker")
	soren := strings.Index(text, "Soren Pin")
	if boss < 0 || soren < 0 || boss > soren {
		t.Fatalf("ascending list should show Boss Sticker before Soren Pin:\n%s", text)
	}
	if !strings.Contains(text, "₱25–30") || !strings.Contains(text, "Room 306") {
		t.Fatalf("list is missing price or room:\n%s", text)
	}
}

func TestList_FiltersByCategoryAndSearch(t *testing.T) {
	opts := testOptions(t)

	var out bytes.Buffer
	if err := List(context.Background(), opts, ListOptions{Category: "Pins"}, &out); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if strings.Contains(out.String(), "Boss Sticker") || !strings.Contains(out.String(), "Soren Pin") {
		t.Fatalf("category filter not applied:\n%s", out.String())
	}

	out.Reset()
	if err := List(context.Background(), opts, ListOptions{Search: "nothing-like-this"}, &out); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if !strings.Contains(out.String(), "No products match") {
		t.Fatalf("expected empty message, got:\n%s", out.String())
	}
}

func TestList_FavoritesOnlyReadsPrefs(t *testing.T) {
	opts := testOptions(t)
	content := "[values]\nfavorites = '{\"Boss Sticker\":true}'\n"
	if err := os.WriteFile(opts.PrefsPath, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out bytes.Buffer
	if err := List(context.Background(), opts, ListOptions{FavoritesOnly: true}, &out); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Boss Sticker") || strings.Contains(out.String(), "Soren Pin") {
		t.Fatalf("favorites filter not applied:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "★") {
		t.Fatalf("favorite marker missing:\n%s", out.String())
	}
}

func TestList_InvalidSortFails(t *testing.T) {
	opts := testOptions(t)
	if err := List(context.Background(), opts, ListOptions{Sort: "cheapest"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("List should reject an unknown sort order")
	}
}

func TestList_MissingCatalogFails(t *testing.T) {
	opts := testOptions(t)
	opts.CatalogSource = filepath.Join(t.TempDir(), "nope.toml")
	err := List(context.Background(), opts, ListOptions{}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "load catalog") {
		t.Fatalf("List err = %v, want load catalog error", err)
	}
}

func TestSetup_InvalidConfigFails(t *testing.T) {
	opts := testOptions(t)
	if err := os.WriteFile(opts.ConfigPath, []byte("catalog = ["), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := setup(opts); err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("setup err = %v, want load config error", err)
	}
}

func TestReveal_EndsOnTarget(t *testing.T) {
	opts := testOptions(t)
	config := "[scramble]\ntotal_frames = 4\nframe_interval_ms = 1\n"
	if err := os.WriteFile(opts.ConfigPath, []byte(config), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	if err := Reveal(ctx, opts, "STORE", &out); err != nil {
		t.Fatalf("Reveal returned error: %v", err)
	}
	frames := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\r")
	if last := frames[len(frames)-1]; last != "STORE" {
		t.Fatalf("last frame = %q, want STORE (output %q)", last, out.String())
	}
	if got := len(frames) - 1; got != 5 {
		t.Fatalf("rendered %d frames, want 5", got)
	}
}

func TestReveal_StaggersWords(t *testing.T) {
	opts := testOptions(t)
	config := "[scramble]\ntotal_frames = 4\nframe_interval_ms = 1\nstagger_ms = 40\n"
	if err := os.WriteFile(opts.ConfigPath, []byte(config), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	if err := Reveal(ctx, opts, "HOME STORE", &out); err != nil {
		t.Fatalf("Reveal returned error: %v", err)
	}
	frames := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\r")[1:]
	if first := frames[0]; !strings.HasSuffix(first, "  —————") {
		t.Fatalf("first frame = %q, want STORE still hidden", first)
	}
	if last := frames[len(frames)-1]; last != "HOME  STORE" {
		t.Fatalf("last frame = %q, want %q", last, "HOME  STORE")
	}
}

func TestReveal_BlankTextEndsLine(t *testing.T) {
	opts := testOptions(t)
	var out bytes.Buffer
	if err := Reveal(context.Background(), opts, "   ", &out); err != nil {
		t.Fatalf("Reveal returned error: %v", err)
	}
	if out.String() != "\n" {
		t.Fatalf("output = %q, want a bare newline", out.String())
	}
}
