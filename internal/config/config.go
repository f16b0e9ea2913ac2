package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the merchterm runtime configuration.
type Config struct {
	Catalog     string // file path or http(s) URL; empty uses the embedded catalog
	PrefsPath   string
	LogFile     string
	LogLevel    string
	Theme       string
	DefaultSort string
	Scramble    Scramble
}

// Scramble tunes the label reveal animation.
type Scramble struct {
	TotalFrames   int
	FrameInterval time.Duration
	Stagger       time.Duration
}

const (
	defaultConfigPath    = "~/.config/merchterm/config.toml"
	defaultPrefsPath     = "~/.config/merchterm/prefs.toml"
	defaultLogFile       = "~/.local/share/merchterm/merchterm.log"
	defaultLogLevel      = "info"
	defaultTotalFrames   = 15
	defaultFrameInterval = 16 * time.Millisecond
	defaultStagger       = 100 * time.Millisecond
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		PrefsPath: mustExpand(defaultPrefsPath),
		LogFile:   mustExpand(defaultLogFile),
		LogLevel:  defaultLogLevel,
		Scramble: Scramble{
			TotalFrames:   defaultTotalFrames,
			FrameInterval: defaultFrameInterval,
			Stagger:       defaultStagger,
		},
	}
}

// Load locates and parses the merchterm config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Catalog     string `toml:"catalog"`
		PrefsPath   string `toml:"prefs_path"`
		LogFile     string `toml:"log_file"`
		LogLevel    string `toml:"log_level"`
		Theme       string `toml:"theme"`
		DefaultSort string `toml:"default_sort"`
		Scramble    struct {
			TotalFrames     int `toml:"total_frames"`
			FrameIntervalMS int `toml:"frame_interval_ms"`
			StaggerMS       int `toml:"stagger_ms"`
		} `toml:"scramble"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Catalog = ResolveSource(raw.Catalog)
	if p := strings.TrimSpace(raw.PrefsPath); p != "" {
		cfg.PrefsPath = mustExpand(p)
	}
	if p := strings.TrimSpace(raw.LogFile); p != "" {
		cfg.LogFile = mustExpand(p)
	}
	if lvl := strings.TrimSpace(raw.LogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}
	cfg.Theme = strings.TrimSpace(raw.Theme)
	cfg.DefaultSort = strings.TrimSpace(raw.DefaultSort)

	if raw.Scramble.TotalFrames > 0 {
		cfg.Scramble.TotalFrames = raw.Scramble.TotalFrames
	}
	if raw.Scramble.FrameIntervalMS > 0 {
		cfg.Scramble.FrameInterval = time.Duration(raw.Scramble.FrameIntervalMS) * time.Millisecond
	}
	if raw.Scramble.StaggerMS > 0 {
		cfg.Scramble.Stagger = time.Duration(raw.Scramble.StaggerMS) * time.Millisecond
	}

	return cfg, nil
}

// ResolveSource trims a catalog source and expands it when it is a local
// path. URLs are returned as given.
func ResolveSource(source string) string {
	source = strings.TrimSpace(source)
	if source == "" || IsURL(source) {
		return source
	}
	return mustExpand(source)
}

// IsURL reports whether source names an http or https resource.
func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
