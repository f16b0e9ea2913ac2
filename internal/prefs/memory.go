package prefs

import "strings"

// Memory is a map-backed Store. When Err is set, Set fails with it and leaves
// the stored values untouched, which mimics an unavailable or full store.
type Memory struct {
	values map[string]string
	theme  string
	Err    error
	Writes int
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

// Get implements Store.
func (m *Memory) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set implements Store.
func (m *Memory) Set(key, value string) error {
	m.Writes++
	if m.Err != nil {
		return m.Err
	}
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

// Theme returns the theme set with SetTheme, or the default.
func (m *Memory) Theme() string {
	if m.theme == "" {
		return defaultTheme
	}
	return m.theme
}

// SetTheme records name. It fails with Err like Set does.
func (m *Memory) SetTheme(name string) error {
	m.Writes++
	if m.Err != nil {
		return m.Err
	}
	m.theme = strings.TrimSpace(name)
	return nil
}
