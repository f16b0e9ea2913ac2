package storefront

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bbqstudio/merchterm/internal/catalog"
)

// SortOrder controls price ordering of the visible list.
type SortOrder int

const (
	SortDefault SortOrder = iota
	SortAscending
	SortDescending
)

// ErrInvalidSortOrder is returned by SetSort and ParseSortOrder for values
// outside the three known orders.
var ErrInvalidSortOrder = errors.New("invalid sort order")

func (s SortOrder) String() string {
	switch s {
	case SortDefault:
		return "default"
	case SortAscending:
		return "ascending"
	case SortDescending:
		return "descending"
	default:
		return fmt.Sprintf("SortOrder(%d)", int(s))
	}
}

// Label is the human-facing name used by the store view.
func (s SortOrder) Label() string {
	switch s {
	case SortAscending:
		return "Price: Low → High"
	case SortDescending:
		return "Price: High → Low"
	default:
		return "Sort by"
	}
}

// Valid reports whether s is one of the known orders.
func (s SortOrder) Valid() bool {
	return s >= SortDefault && s <= SortDescending
}

// Next cycles default → ascending → descending → default.
func (s SortOrder) Next() SortOrder {
	switch s {
	case SortDefault:
		return SortAscending
	case SortAscending:
		return SortDescending
	default:
		return SortDefault
	}
}

// ParseSortOrder accepts default, ascending, descending and the short forms
// asc and desc, case-insensitively.
func ParseSortOrder(value string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "default":
		return SortDefault, nil
	case "ascending", "asc":
		return SortAscending, nil
	case "descending", "desc":
		return SortDescending, nil
	default:
		return SortDefault, fmt.Errorf("%w: %q", ErrInvalidSortOrder, value)
	}
}

// Query is the mutable view state the engine derives the visible list from.
type Query struct {
	Category      string
	Search        string
	Sort          SortOrder
	FavoritesOnly bool
}

// DefaultQuery shows every product in catalog order.
func DefaultQuery() Query {
	return Query{Category: catalog.All, Sort: SortDefault}
}

// FavoriteSet maps product titles to their favorited flag.
type FavoriteSet map[string]bool

func (f FavoriteSet) clone() FavoriteSet {
	out := make(FavoriteSet, len(f))
	for k, v := range f {
		if v {
			out[k] = true
		}
	}
	return out
}
