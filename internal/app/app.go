package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bbqstudio/merchterm/internal/catalog"
	"github.com/bbqstudio/merchterm/internal/config"
	"github.com/bbqstudio/merchterm/internal/logging"
	"github.com/bbqstudio/merchterm/internal/prefs"
	"github.com/bbqstudio/merchterm/internal/state"
	"github.com/bbqstudio/merchterm/internal/storefront"
	"github.com/bbqstudio/merchterm/internal/ui"
)

// Options configure the merchterm application. Non-empty fields override the
// config file.
type Options struct {
	ConfigPath    string
	CatalogSource string // file path or URL
	PrefsPath     string // empty uses prefs_path from config
	LogFile       string
	LogLevel      string
}

// env is everything the run modes share after startup.
type env struct {
	cfg    config.Config
	logger *zap.Logger
	prefs  *prefs.File
}

func setup(opts Options) (env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return env{}, fmt.Errorf("load config: %w", err)
	}
	if src := strings.TrimSpace(opts.CatalogSource); src != "" {
		cfg.Catalog = config.ResolveSource(src)
	}
	if p := strings.TrimSpace(opts.PrefsPath); p != "" {
		cfg.PrefsPath = p
	}
	if p := strings.TrimSpace(opts.LogFile); p != "" {
		if expanded, err := config.ExpandPath(p); err == nil {
			p = expanded
		}
		cfg.LogFile = p
	}
	if lvl := strings.TrimSpace(opts.LogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return env{}, fmt.Errorf("init logger: %w", err)
	}

	return env{
		cfg:    cfg,
		logger: logger,
		prefs:  prefs.Open(cfg.PrefsPath),
	}, nil
}

// defaultSort parses the configured sort order, logging and ignoring bad values.
func (e env) defaultSort() storefront.SortOrder {
	order, err := storefront.ParseSortOrder(e.cfg.DefaultSort)
	if err != nil {
		e.logger.Warn("ignoring default_sort", zap.Error(err))
		return storefront.SortDefault
	}
	return order
}

// themeName prefers the theme pinned in config over the last one chosen in
// the UI.
func (e env) themeName() string {
	if e.cfg.Theme != "" {
		return e.cfg.Theme
	}
	return e.prefs.Theme()
}

// Run boots the merchterm TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()
	restore := zap.RedirectStdLog(rt.logger)
	defer restore()

	rt.logger.Info("starting merchterm",
		zap.String("catalog", rt.cfg.Catalog),
		zap.String("prefs", rt.prefs.Path()))

	store := &state.Store{}

	// Start background catalog load
	StartLoader(ctx, store, catalog.NewLoader(), rt.cfg.Catalog, rt.logger)

	uiOpts := ui.Options{
		Context:   ctx,
		Store:     store,
		Prefs:     rt.prefs,
		Logger:    rt.logger,
		ThemeName: rt.themeName(),
		Sort:      rt.defaultSort(),
		Scramble:  rt.cfg.Scramble,
	}
	return ui.Run(uiOpts)
}
