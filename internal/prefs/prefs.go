// Package prefs is merchterm's durable key-value store.
// Values live in ~/.config/merchterm/prefs.toml next to the selected theme.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Store is a string key-value store. Get reports absence with ok=false.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// document is the on-disk layout.
type document struct {
	Theme  string            `toml:"theme"`
	Values map[string]string `toml:"values"`
}

const (
	defaultPrefsPath = "~/.config/merchterm/prefs.toml"
	defaultTheme     = "Dracula"
)

// File is a Store persisted as a TOML document. Every Set rewrites the file.
// It is not safe for concurrent use.
type File struct {
	path string
	doc  document
}

var _ Store = (*File)(nil)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Open reads the store at path, falling back to an empty store when the file
// is missing or unreadable. It never fails; write problems surface from Set.
func Open(path string) *File {
	f := &File{doc: document{Theme: defaultTheme, Values: map[string]string{}}}

	resolved, err := resolvePath(path)
	if err != nil {
		return f // Graceful degradation
	}
	f.path = resolved

	file, err := os.Open(resolved)
	if err != nil {
		return f
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return f
	}

	var doc document
	if err := toml.Unmarshal(bytes, &doc); err != nil {
		return f
	}

	if strings.TrimSpace(doc.Theme) != "" {
		f.doc.Theme = doc.Theme
	}
	for k, v := range doc.Values {
		f.doc.Values[k] = v
	}
	return f
}

// Path returns the resolved file path, or "" if it could not be resolved.
func (f *File) Path() string {
	return f.path
}

// Get implements Store.
func (f *File) Get(key string) (string, bool) {
	v, ok := f.doc.Values[key]
	return v, ok
}

// Set implements Store. The in-memory value is updated even when the write
// fails so the current session stays consistent.
func (f *File) Set(key, value string) error {
	f.doc.Values[key] = value
	return f.save()
}

// Theme returns the stored theme name.
func (f *File) Theme() string {
	return f.doc.Theme
}

// SetTheme stores the theme name.
func (f *File) SetTheme(name string) error {
	if strings.TrimSpace(name) == "" {
		name = defaultTheme
	}
	f.doc.Theme = name
	return f.save()
}

func (f *File) save() error {
	if f.path == "" {
		return errors.New("prefs path unavailable")
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(f.doc)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("create temp prefs: %w", err)
	}
	if _, err := tmp.Write(bytes); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close prefs: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("chmod prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
