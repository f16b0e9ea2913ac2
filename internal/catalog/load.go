package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

//go:embed default.toml
var defaultDocument []byte

const (
	defaultUserAgent = "merchterm/0.1"
	fetchTimeout     = 10 * time.Second
	maxDocumentBytes = 4 << 20
)

// Default returns the catalog bundled with the binary.
func Default() *Catalog {
	cat, err := Parse(defaultDocument, FormatTOML)
	if err != nil {
		return Empty()
	}
	return cat
}

// Loader reads a catalog once from the bundled document, a local file or an
// HTTP(S) URL. It never retries.
type Loader struct {
	http      *http.Client
	userAgent string
}

// NewLoader builds a Loader with a bounded HTTP timeout.
func NewLoader() *Loader {
	return &Loader{
		http:      &http.Client{Timeout: fetchTimeout},
		userAgent: defaultUserAgent,
	}
}

// Load resolves source to a catalog. An empty source yields the bundled
// catalog. File paths are used as given; callers expand "~" beforehand.
func (l *Loader) Load(ctx context.Context, source string) (*Catalog, error) {
	source = strings.TrimSpace(source)
	switch {
	case source == "":
		return Default(), nil
	case isURL(source):
		return l.fetch(ctx, source)
	default:
		return readFile(source)
	}
}

// Load is a convenience wrapper around NewLoader().Load.
func Load(ctx context.Context, source string) (*Catalog, error) {
	return NewLoader().Load(ctx, source)
}

func isURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func readFile(path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data, format)
}

func (l *Loader) fetch(ctx context.Context, rawURL string) (*Catalog, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch catalog: unexpected status %s", resp.Status)
	}

	format, err := FormatFromPath(u.Path)
	if err != nil {
		if format, err = formatFromContentType(resp.Header.Get("Content-Type")); err != nil {
			return nil, err
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("read catalog body: %w", err)
	}
	return Parse(data, format)
}
