package catalog

import (
	"fmt"
	"strings"
)

// All is the reserved meta-category that disables category filtering.
const All = "All"

// Product is a single catalog record. Title is unique within a catalog.
type Product struct {
	Title       string
	Description string
	ImageURL    string
	Price       Price
	Category    string
	Room        string
}

// Catalog is an immutable, ordered product list. A nil *Catalog behaves like
// an empty one.
type Catalog struct {
	products   []Product
	index      map[string]int
	categories []string
	warnings   []string
}

// New builds a catalog from products in the given order. Products without a
// title and repeated titles are dropped (first one wins) and reported through
// Warnings. When categories is empty they are derived from the products in
// first-seen order.
func New(products []Product, categories []string) *Catalog {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}

	for i, p := range products {
		p.Title = strings.TrimSpace(p.Title)
		p.Category = strings.TrimSpace(p.Category)
		if p.Title == "" {
			c.warnings = append(c.warnings, fmt.Sprintf("product #%d has no title; skipped", i+1))
			continue
		}
		if _, dup := c.index[p.Title]; dup {
			c.warnings = append(c.warnings, fmt.Sprintf("duplicate title %q; keeping the first entry", p.Title))
			continue
		}
		c.index[p.Title] = len(c.products)
		c.products = append(c.products, p)
	}

	seen := map[string]bool{All: true}
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		c.categories = append(c.categories, name)
	}
	for _, name := range categories {
		add(name)
	}
	if len(c.categories) == 0 {
		for _, p := range c.products {
			add(p.Category)
		}
	}
	return c
}

// Empty returns a catalog with no products. Used when loading fails.
func Empty() *Catalog {
	return New(nil, nil)
}

// Products returns a copy of the products in catalog order.
func (c *Catalog) Products() []Product {
	if c == nil || len(c.products) == 0 {
		return nil
	}
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len reports the number of products.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

// Categories returns All followed by the catalog's categories.
func (c *Catalog) Categories() []string {
	out := []string{All}
	if c == nil {
		return out
	}
	return append(out, c.categories...)
}

// Lookup finds a product by title.
func (c *Catalog) Lookup(title string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	i, ok := c.index[title]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Warnings lists non-fatal problems found while building the catalog.
func (c *Catalog) Warnings() []string {
	if c == nil || len(c.warnings) == 0 {
		return nil
	}
	return append([]string(nil), c.warnings...)
}
