package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bbqstudio/merchterm/internal/catalog"
	"github.com/bbqstudio/merchterm/internal/state"
)

// CatalogLoader fetches a catalog for a source string.
type CatalogLoader interface {
	Load(ctx context.Context, source string) (*catalog.Catalog, error)
}

// StartLoader launches a background goroutine that loads the catalog once and
// publishes the result to the store. It returns a channel that is closed when
// the load has been recorded. There is no retry; a failure leaves the empty
// catalog in place for the rest of the session.
func StartLoader(ctx context.Context, store *state.Store, loader CatalogLoader, source string, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		refresh(ctx, store, loader, source, logger)
	}()
	return done
}

func refresh(ctx context.Context, store *state.Store, loader CatalogLoader, source string, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	started := time.Now()
	cat, err := loader.Load(ctx, source)
	if err != nil {
		store.Update(source, nil, err)
		logger.Warn("catalog load failed",
			zap.String("source", source),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err))
		return
	}

	for _, warning := range cat.Warnings() {
		logger.Warn("catalog entry skipped", zap.String("source", source), zap.String("detail", warning))
	}
	store.Update(source, cat, nil)
	logger.Info("catalog loaded",
		zap.String("source", source),
		zap.Int("products", cat.Len()),
		zap.Duration("elapsed", time.Since(started)))
}
