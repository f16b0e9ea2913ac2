package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a catalog document encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
	FormatJSON
)

// ErrUnknownFormat is returned when a document format cannot be determined.
var ErrUnknownFormat = errors.New("unknown catalog format")

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// FormatFromPath picks a format from a file path or URL path extension.
func FormatFromPath(p string) (Format, error) {
	switch strings.ToLower(path.Ext(strings.TrimSpace(p))) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, p)
	}
}

// formatFromContentType maps an HTTP Content-Type onto a Format.
func formatFromContentType(contentType string) (Format, error) {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "json"):
		return FormatJSON, nil
	case strings.Contains(ct, "yaml"):
		return FormatYAML, nil
	case strings.Contains(ct, "toml"):
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: content type %q", ErrUnknownFormat, contentType)
	}
}

type document struct {
	Categories []string     `toml:"categories" yaml:"categories" json:"categories"`
	Products   []rawProduct `toml:"products" yaml:"products" json:"products"`
}

type rawProduct struct {
	Title       string `toml:"title" yaml:"title" json:"title"`
	Description string `toml:"description" yaml:"description" json:"description"`
	ImageURL    string `toml:"image_url" yaml:"image_url" json:"image_url"`
	Price       any    `toml:"price" yaml:"price" json:"price"`
	Category    string `toml:"category" yaml:"category" json:"category"`
	Room        string `toml:"room" yaml:"room" json:"room"`
}

// Parse decodes a catalog document. Syntax errors fail the whole document;
// products with an unusable price are skipped and reported as warnings.
func Parse(data []byte, format Format) (*Catalog, error) {
	var doc document
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s catalog: %w", format, err)
	}

	var warnings []string
	products := make([]Product, 0, len(doc.Products))
	for i, raw := range doc.Products {
		price, err := priceFromValue(raw.Price)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("product #%d (%s): %v; skipped", i+1, strings.TrimSpace(raw.Title), err))
			continue
		}
		products = append(products, Product{
			Title:       raw.Title,
			Description: strings.TrimSpace(raw.Description),
			ImageURL:    strings.TrimSpace(raw.ImageURL),
			Price:       price,
			Category:    raw.Category,
			Room:        strings.TrimSpace(raw.Room),
		})
	}

	cat := New(products, doc.Categories)
	cat.warnings = append(warnings, cat.warnings...)
	return cat, nil
}
