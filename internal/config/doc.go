// Package config loads the merchterm configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/merchterm/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing or blank, use defaults
//
// A file that exists but does not parse is an error; merchterm refuses to
// start with a config it cannot read.
//
// # Default Values
//
//   - Config file: ~/.config/merchterm/config.toml
//   - Catalog: empty (the catalog embedded in the binary)
//   - Preferences: ~/.config/merchterm/prefs.toml
//   - Log file: ~/.local/share/merchterm/merchterm.log
//   - Log level: info (LOG_LEVEL overrides it at logger build time)
//   - Scramble: 15 frames, 16ms per frame, 100ms stagger between nav labels
//
// # TOML Format
//
//	catalog = "https://shop.example/catalog.json"
//	prefs_path = "~/.config/merchterm/prefs.toml"
//	log_file = "~/.local/share/merchterm/merchterm.log"
//	log_level = "info"
//	theme = "Dracula"
//	default_sort = "asc"
//
//	[scramble]
//	total_frames = 15
//	frame_interval_ms = 16
//	stagger_ms = 100
//
// Every field is optional. Non-positive scramble values keep their defaults.
//
// # Path Expansion
//
//   - Absolute paths: used as-is
//   - Tilde paths: expanded to the home directory
//   - Relative paths: made absolute against the working directory
//   - Catalog URLs (http:// or https://): left untouched
package config
