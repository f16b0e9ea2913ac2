package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bbqstudio/merchterm/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/merchterm/config.toml)")
	catalogSource := flag.String("catalog", "", "catalog file or URL (optional, defaults to the built-in catalog)")
	prefsPath := flag.String("prefs", "", "preferences file path (optional)")
	logFile := flag.String("log-file", "", "log file path (optional)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")

	list := flag.Bool("list", false, "print the catalog as a table and exit")
	category := flag.String("category", "", "category filter for -list")
	search := flag.String("search", "", "search text for -list")
	sortOrder := flag.String("sort", "", "price sort for -list: default, asc or desc")
	favorites := flag.Bool("favorites", false, "only favorites for -list")
	reveal := flag.String("reveal", "", "play the scramble reveal of the given words, one label per word, and exit")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:    *configPath,
		CatalogSource: *catalogSource,
		PrefsPath:     *prefsPath,
		LogFile:       *logFile,
		LogLevel:      *logLevel,
	}

	var err error
	switch {
	case *reveal != "":
		err = app.Reveal(ctx, opts, *reveal, os.Stdout)
	case *list:
		err = app.List(ctx, opts, app.ListOptions{
			Category:      *category,
			Search:        *search,
			Sort:          *sortOrder,
			FavoritesOnly: *favorites,
		}, os.Stdout)
	default:
		err = app.Run(ctx, opts)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "merchterm: %v\n", err)
		return 1
	}
	return 0
}
