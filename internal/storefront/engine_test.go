package storefront

import (
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bbqstudio/merchterm/internal/catalog"
	"github.com/bbqstudio/merchterm/internal/prefs"
)

func sampleCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Product{
		{Title: "Soren Pin", Category: "Pins", Price: catalog.Range(25, 30), Room: "Room 306"},
		{Title: "Boss Sticker", Category: "Stickers", Price: catalog.Range(15, 20), Room: "Room 205"},
	}, nil)
}

func titles(items []catalog.Product) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Title)
	}
	return out
}

func TestDeriveVisible_Examples(t *testing.T) {
	cases := []struct {
		name  string
		apply func(e *Engine)
		want  []string
	}{
		{"default", func(e *Engine) {}, []string{"Soren Pin", "Boss Sticker"}},
		{"category", func(e *Engine) { e.SetCategory("Pins") }, []string{"Soren Pin"}},
		{"search", func(e *Engine) { e.SetSearch("sticker") }, []string{"Boss Sticker"}},
		{"ascending", func(e *Engine) { _ = e.SetSort(SortAscending) }, []string{"Boss Sticker", "Soren Pin"}},
		{"descending", func(e *Engine) { _ = e.SetSort(SortDescending) }, []string{"Soren Pin", "Boss Sticker"}},
		{"unknown_category", func(e *Engine) { e.SetCategory("Hoodies") }, []string{}},
		{"blank_category_is_all", func(e *Engine) { e.SetCategory(" ") }, []string{"Soren Pin", "Boss Sticker"}},
		{"search_case_insensitive", func(e *Engine) { e.SetSearch("SOREN") }, []string{"Soren Pin"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := New(sampleCatalog(), prefs.NewMemory())
			tc.apply(e)
			if got := titles(e.DeriveVisible()); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("DeriveVisible = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDeriveVisible_SearchesDescription(t *testing.T) {
	cat := catalog.New([]catalog.Product{
		{Title: "Virel Pin", Description: "Limited enamel run", Category: "Pins"},
		{Title: "Meme Sticker", Category: "Stickers"},
	}, nil)
	e := New(cat, nil)
	e.SetSearch("ENAMEL")
	if got := titles(e.DeriveVisible()); !reflect.DeepEqual(got, []string{"Virel Pin"}) {
		t.Fatalf("DeriveVisible = %v, want [Virel Pin]", got)
	}
}

func TestSetSort_RejectsInvalidAndKeepsPrevious(t *testing.T) {
	e := New(sampleCatalog(), nil)
	if err := e.SetSort(SortDescending); err != nil {
		t.Fatalf("SetSort returned error: %v", err)
	}
	if err := e.SetSort(SortOrder(7)); !errors.Is(err, ErrInvalidSortOrder) {
		t.Fatalf("SetSort(7) err = %v, want ErrInvalidSortOrder", err)
	}
	if e.Query().Sort != SortDescending {
		t.Fatalf("Sort = %v, want descending kept", e.Query().Sort)
	}
}

func TestSetCategory_BlankMeansAll(t *testing.T) {
	e := New(sampleCatalog(), prefs.NewMemory())
	e.SetCategory("Pins")
	for _, blank := range []string{"", " ", "\t"} {
		e.SetCategory(blank)
		if got := e.Query().Category; got != catalog.All {
			t.Fatalf("SetCategory(%q) category = %q, want %q", blank, got, catalog.All)
		}
		if got := titles(e.DeriveVisible()); len(got) != 2 {
			t.Fatalf("SetCategory(%q) visible = %v, want every product", blank, got)
		}
	}
}

func TestParseSortOrder(t *testing.T) {
	cases := map[string]SortOrder{
		"":          SortDefault,
		"default":   SortDefault,
		"asc":       SortAscending,
		"Ascending": SortAscending,
		"desc":      SortDescending,
		"DESC":      SortDescending,
	}
	for in, want := range cases {
		got, err := ParseSortOrder(in)
		if err != nil || got != want {
			t.Fatalf("ParseSortOrder(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseSortOrder("price"); !errors.Is(err, ErrInvalidSortOrder) {
		t.Fatalf("ParseSortOrder(price) err = %v, want ErrInvalidSortOrder", err)
	}
}

func TestSortOrderNextCycles(t *testing.T) {
	order := SortDefault
	seen := []SortOrder{order}
	for range 3 {
		order = order.Next()
		seen = append(seen, order)
	}
	want := []SortOrder{SortDefault, SortAscending, SortDescending, SortDefault}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("Next cycle = %v, want %v", seen, want)
	}
}

func TestToggleFavorite_PersistsAndFiltersImmediately(t *testing.T) {
	store := prefs.NewMemory()
	e := New(sampleCatalog(), store)

	if on := e.ToggleFavorite("Boss Sticker"); !on {
		t.Fatalf("ToggleFavorite should return true on first toggle")
	}
	raw, ok := store.Get(DefaultFavoritesKey)
	if !ok || raw != `{"Boss Sticker":true}` {
		t.Fatalf("stored favorites = %q, %v", raw, ok)
	}

	e.ToggleFavoritesOnly()
	if got := titles(e.DeriveVisible()); !reflect.DeepEqual(got, []string{"Boss Sticker"}) {
		t.Fatalf("DeriveVisible = %v, want [Boss Sticker]", got)
	}

	if on := e.ToggleFavorite("Boss Sticker"); on {
		t.Fatalf("second toggle should return false")
	}
	if raw, _ := store.Get(DefaultFavoritesKey); raw != `{}` {
		t.Fatalf("stored favorites = %q, want {}", raw)
	}
	if got := e.DeriveVisible(); len(got) != 0 {
		t.Fatalf("DeriveVisible = %v, want empty", titles(got))
	}
}

func TestNew_HydratesFavorites(t *testing.T) {
	store := prefs.NewMemory()
	_ = store.Set(DefaultFavoritesKey, `{"Soren Pin":true,"Boss Sticker":false}`)

	e := New(sampleCatalog(), store)
	if !e.IsFavorite("Soren Pin") || e.IsFavorite("Boss Sticker") {
		t.Fatalf("Favorites = %v", e.Favorites())
	}
	if len(e.Favorites()) != 1 {
		t.Fatalf("false entries should be dropped, got %v", e.Favorites())
	}
}

func TestNew_MalformedFavoritesYieldEmptySet(t *testing.T) {
	for _, raw := range []string{"not json", `{"Soren Pin":"yes"}`, `[1,2]`, `null`, ""} {
		store := prefs.NewMemory()
		_ = store.Set(DefaultFavoritesKey, raw)

		core, logs := observer.New(zapcore.WarnLevel)
		e := New(sampleCatalog(), store, WithLogger(zap.New(core)))
		if len(e.Favorites()) != 0 {
			t.Fatalf("raw %q: Favorites = %v, want empty", raw, e.Favorites())
		}
		if raw == "not json" && logs.FilterMessage("ignoring malformed favorites").Len() != 1 {
			t.Fatalf("expected malformed favorites to be logged")
		}
	}
}

func TestToggleFavorite_PersistenceFailureIsSwallowedAndLogged(t *testing.T) {
	store := prefs.NewMemory()
	store.Err = errors.New("quota exceeded")

	core, logs := observer.New(zapcore.WarnLevel)
	e := New(sampleCatalog(), store, WithLogger(zap.New(core)))

	if on := e.ToggleFavorite("Soren Pin"); !on {
		t.Fatalf("ToggleFavorite should still flip in memory")
	}
	if !e.IsFavorite("Soren Pin") {
		t.Fatalf("favorite should remain set in memory")
	}
	if logs.FilterMessage("persist favorites").Len() != 1 {
		t.Fatalf("expected persistence failure to be logged, got %v", logs.All())
	}
}

func TestWithFavoritesKey(t *testing.T) {
	store := prefs.NewMemory()
	e := New(sampleCatalog(), store, WithFavoritesKey("store.favorites"))
	e.ToggleFavorite("Soren Pin")
	if _, ok := store.Get("store.favorites"); !ok {
		t.Fatalf("expected favorites under custom key")
	}
	if _, ok := store.Get(DefaultFavoritesKey); ok {
		t.Fatalf("default key should be untouched")
	}
}

func TestNilStoreKeepsFavoritesInMemory(t *testing.T) {
	e := New(sampleCatalog(), nil)
	e.ToggleFavorite("Soren Pin")
	if !e.IsFavorite("Soren Pin") {
		t.Fatalf("favorite should be kept in memory without a store")
	}
}

func TestSelection(t *testing.T) {
	e := New(sampleCatalog(), nil)
	if e.Selected() != nil {
		t.Fatalf("Selected should start nil")
	}

	p := e.DeriveVisible()[0]
	e.Select(&p)
	p.Title = "mutated"
	got := e.Selected()
	if got == nil || got.Title != "Soren Pin" {
		t.Fatalf("Selected = %#v, want Soren Pin copy", got)
	}

	e.ClearSelection()
	if e.Selected() != nil {
		t.Fatalf("ClearSelection should clear")
	}
	e.Select(&p)
	e.Select(nil)
	if e.Selected() != nil {
		t.Fatalf("Select(nil) should clear")
	}
}

func TestLocate(t *testing.T) {
	e := New(sampleCatalog(), nil)
	msg, ok := e.Locate("Soren Pin")
	if !ok || msg != "You can find this item in the Room 306." {
		t.Fatalf("Locate = %q, %v", msg, ok)
	}
	if _, ok := e.Locate("Nope"); ok {
		t.Fatalf("Locate should miss unknown titles")
	}
}

func TestFavoritesReturnsCopy(t *testing.T) {
	e := New(sampleCatalog(), nil)
	e.ToggleFavorite("Soren Pin")
	favs := e.Favorites()
	favs["Boss Sticker"] = true
	if e.IsFavorite("Boss Sticker") {
		t.Fatalf("Favorites should return a copy")
	}
}
