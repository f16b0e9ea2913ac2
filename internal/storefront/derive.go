package storefront

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/bbqstudio/merchterm/internal/catalog"
)

// Derive computes the visible products for q. It does not modify its inputs
// and always returns a fresh slice. Stages run in a fixed order: category,
// search text, favorites, then price sort. Sorting never sees rows the
// filters removed.
func Derive(products []catalog.Product, q Query, favorites FavoriteSet) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	out = append(out, products...)

	out = filterCategory(out, q.Category)
	out = filterSearch(out, q.Search)
	if q.FavoritesOnly {
		out = filterFavorites(out, favorites)
	}
	sortByPrice(out, q.Sort)
	return out
}

func filterCategory(items []catalog.Product, category string) []catalog.Product {
	if category == catalog.All {
		return items
	}
	return slices.DeleteFunc(items, func(p catalog.Product) bool {
		return p.Category != category
	})
}

func filterSearch(items []catalog.Product, search string) []catalog.Product {
	if search == "" {
		return items
	}
	folder := cases.Fold()
	needle := folder.String(search)
	return slices.DeleteFunc(items, func(p catalog.Product) bool {
		if strings.Contains(folder.String(p.Title), needle) {
			return false
		}
		return p.Description == "" || !strings.Contains(folder.String(p.Description), needle)
	})
}

func filterFavorites(items []catalog.Product, favorites FavoriteSet) []catalog.Product {
	return slices.DeleteFunc(items, func(p catalog.Product) bool {
		return !favorites[p.Title]
	})
}

// sortByPrice orders ascending by minimum price or descending by maximum
// price. Both sorts are stable; SortDefault keeps catalog order.
func sortByPrice(items []catalog.Product, order SortOrder) {
	switch order {
	case SortAscending:
		slices.SortStableFunc(items, func(a, b catalog.Product) int {
			return cmp.Compare(a.Price.Min, b.Price.Min)
		})
	case SortDescending:
		slices.SortStableFunc(items, func(a, b catalog.Product) int {
			return cmp.Compare(b.Price.Max, a.Price.Max)
		})
	}
}
