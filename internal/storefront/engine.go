// Package storefront implements the catalog query engine: filtering, search,
// price sorting, the favorites set and the product detail selection.
//
// An Engine is owned by a single goroutine (the UI update loop). The favorite
// set has exactly one writer, ToggleFavorite, which also persists it.
package storefront

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bbqstudio/merchterm/internal/catalog"
)

// DefaultFavoritesKey is the store key holding the serialized FavoriteSet.
const DefaultFavoritesKey = "favorites"

// Store is the durable key-value store the engine persists favorites to.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for persistence problems.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithFavoritesKey overrides the store key for favorites.
func WithFavoritesKey(key string) Option {
	return func(e *Engine) {
		if strings.TrimSpace(key) != "" {
			e.key = key
		}
	}
}

// Engine holds the query, favorites and selection for one catalog.
type Engine struct {
	catalog  *catalog.Catalog
	products []catalog.Product
	store    Store
	key      string
	logger   *zap.Logger

	query     Query
	favorites FavoriteSet
	selected  *catalog.Product
}

// New builds an engine over cat and hydrates favorites from store. A nil
// store keeps favorites in memory only.
func New(cat *catalog.Catalog, store Store, opts ...Option) *Engine {
	e := &Engine{
		catalog:  cat,
		products: cat.Products(),
		store:    store,
		key:      DefaultFavoritesKey,
		logger:   zap.NewNop(),
		query:    DefaultQuery(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.favorites = e.loadFavorites()
	return e
}

// Catalog returns the catalog the engine derives from.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Query returns a copy of the current query.
func (e *Engine) Query() Query {
	return e.query
}

// SetCategory selects a category. A blank name means All. Unknown names are
// accepted and simply match nothing.
func (e *Engine) SetCategory(name string) {
	if strings.TrimSpace(name) == "" {
		name = catalog.All
	}
	e.query.Category = name
}

// SetSearch stores the search text verbatim.
func (e *Engine) SetSearch(text string) {
	e.query.Search = text
}

// SetSort changes the price order. Invalid orders are rejected and the
// previous order is kept.
func (e *Engine) SetSort(order SortOrder) error {
	if !order.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSortOrder, int(order))
	}
	e.query.Sort = order
	return nil
}

// ToggleFavoritesOnly flips the favorites-only filter.
func (e *Engine) ToggleFavoritesOnly() {
	e.query.FavoritesOnly = !e.query.FavoritesOnly
}

// DeriveVisible returns the products visible under the current query.
func (e *Engine) DeriveVisible() []catalog.Product {
	return Derive(e.products, e.query, e.favorites)
}

// IsFavorite reports whether title is favorited.
func (e *Engine) IsFavorite(title string) bool {
	return e.favorites[title]
}

// Favorites returns a copy of the favorite set.
func (e *Engine) Favorites() FavoriteSet {
	return e.favorites.clone()
}

// ToggleFavorite flips title's flag, writes the whole set to the store and
// returns the new flag. Write failures are logged and otherwise ignored; the
// in-memory set stays authoritative for the session.
func (e *Engine) ToggleFavorite(title string) bool {
	next := !e.favorites[title]
	if next {
		e.favorites[title] = true
	} else {
		delete(e.favorites, title)
	}
	e.persistFavorites()
	return next
}

// Select shows p in the detail view. Passing nil clears the selection.
func (e *Engine) Select(p *catalog.Product) {
	if p == nil {
		e.selected = nil
		return
	}
	dup := *p
	e.selected = &dup
}

// ClearSelection closes the detail view.
func (e *Engine) ClearSelection() {
	e.selected = nil
}

// Selected returns the product in the detail view, or nil.
func (e *Engine) Selected() *catalog.Product {
	if e.selected == nil {
		return nil
	}
	dup := *e.selected
	return &dup
}

// Locate returns the "find in store" hint for title.
func (e *Engine) Locate(title string) (string, bool) {
	p, ok := e.catalog.Lookup(title)
	if !ok || p.Room == "" {
		return "", false
	}
	return fmt.Sprintf("You can find this item in the %s.", p.Room), true
}

func (e *Engine) loadFavorites() FavoriteSet {
	set := FavoriteSet{}
	if e.store == nil {
		return set
	}
	raw, ok := e.store.Get(e.key)
	if !ok || strings.TrimSpace(raw) == "" {
		return set
	}

	var decoded map[string]bool
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		e.logger.Warn("ignoring malformed favorites",
			zap.String("key", e.key),
			zap.Error(err))
		return set
	}
	for title, on := range decoded {
		if on {
			set[title] = true
		}
	}
	return set
}

func (e *Engine) persistFavorites() {
	if e.store == nil {
		return
	}
	payload, err := json.Marshal(e.favorites)
	if err != nil {
		e.logger.Warn("encode favorites", zap.Error(err))
		return
	}
	if err := e.store.Set(e.key, string(payload)); err != nil {
		e.logger.Warn("persist favorites",
			zap.String("key", e.key),
			zap.Int("count", len(e.favorites)),
			zap.Error(err))
	}
}
