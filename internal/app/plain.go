package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/bbqstudio/merchterm/internal/catalog"
	"github.com/bbqstudio/merchterm/internal/scramble"
	"github.com/bbqstudio/merchterm/internal/storefront"
)

// ListOptions is the query applied by List.
type ListOptions struct {
	Category      string
	Search        string
	Sort          string // default, asc or desc; empty uses default_sort from config
	FavoritesOnly bool
}

// List prints the visible catalog as a table without starting the TUI.
// Unlike the TUI, a catalog load failure is returned to the caller.
func List(ctx context.Context, opts Options, list ListOptions, w io.Writer) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	cat, err := catalog.NewLoader().Load(ctx, rt.cfg.Catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	for _, warning := range cat.Warnings() {
		rt.logger.Warn("catalog entry skipped", zap.String("detail", warning))
	}

	engine := storefront.New(cat, rt.prefs, storefront.WithLogger(rt.logger))
	engine.SetCategory(list.Category)
	engine.SetSearch(list.Search)

	order := rt.defaultSort()
	if strings.TrimSpace(list.Sort) != "" {
		if order, err = storefront.ParseSortOrder(list.Sort); err != nil {
			return err
		}
	}
	if err := engine.SetSort(order); err != nil {
		return err
	}
	if list.FavoritesOnly {
		engine.ToggleFavoritesOnly()
	}

	_, err = io.WriteString(w, renderTable(engine)+"\n")
	return err
}

func renderTable(engine *storefront.Engine) string {
	visible := engine.DeriveVisible()
	if len(visible) == 0 {
		return "No products match the current filters."
	}

	rows := make([][]string, 0, len(visible))
	for _, p := range visible {
		fav := ""
		if engine.IsFavorite(p.Title) {
			fav = "★"
		}
		rows = append(rows, []string{fav, p.Title, p.Category, p.Price.String(), p.Room})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "TITLE", "CATEGORY", "PRICE", "ROOM").
		Rows(rows...).
		String()
}

// Reveal plays the scramble animation on w using the configured frame
// timing, then ends the line. Each word of text is its own label; labels
// start one stagger interval apart and share the line, so labels that have
// not started yet show placeholder dashes.
func Reveal(ctx context.Context, opts Options, text string, w io.Writer) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	labels := revealLabels(text)
	if len(labels) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := scramble.NewFrameLoop(rt.cfg.Scramble.FrameInterval)
	go loop.Run(ctx)

	engine := scramble.New(scramble.WithTotalFrames(rt.cfg.Scramble.TotalFrames))
	finished := make(chan error, 1)
	stopped := false
	stop := func(err error) {
		stopped = true
		for _, l := range labels {
			engine.Cancel(l.ID)
		}
		finished <- err
	}

	onFrame := func(string, string) {
		if stopped {
			return
		}
		if _, err := fmt.Fprintf(w, "\r%s", revealLine(engine, labels)); err != nil {
			stop(err)
			return
		}
		if revealDone(engine, labels) {
			_, err := fmt.Fprintln(w)
			stop(err)
		}
	}

	loop.Do(func() {
		scramble.Stagger(engine, loop, labels, rt.cfg.Scramble.Stagger, onFrame)
	})

	select {
	case err := <-finished:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func revealLabels(text string) []scramble.Label {
	words := strings.Fields(text)
	labels := make([]scramble.Label, len(words))
	for i, word := range words {
		labels[i] = scramble.Label{ID: fmt.Sprintf("reveal.%d", i), Text: word}
	}
	return labels
}

func revealLine(engine *scramble.Engine, labels []scramble.Label) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = engine.DisplayOr(l.ID, l.Text)
	}
	return strings.Join(parts, "  ")
}

// revealDone reports whether every label has started and settled.
func revealDone(engine *scramble.Engine, labels []scramble.Label) bool {
	for _, l := range labels {
		if _, started := engine.Display(l.ID); !started || engine.Active(l.ID) {
			return false
		}
	}
	return true
}
