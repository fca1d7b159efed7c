package app

import (
	"context"
	"fmt"

	"github.com/mthorley/starcat/internal/catalog"
	"github.com/mthorley/starcat/internal/config"
	"github.com/mthorley/starcat/internal/engine"
	"github.com/mthorley/starcat/internal/fetch"
	"github.com/mthorley/starcat/internal/prefs"
	"github.com/mthorley/starcat/internal/ui"
)

// The catalog client backs both fetchers.
var (
	_ fetch.PortionSource = (*catalog.Client)(nil)
	_ fetch.ItemSource    = (*catalog.Client)(nil)
)

// Options configure the starcat application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/starcat/prefs.toml
}

// Run boots the starcat TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := catalog.NewClient(cfg.APIURL, cfg.Timeout())
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	// The saved preference wins over the configured default when it is one
	// of the offered sizes.
	pageSize := cfg.PageSize
	if config.ValidPageSize(userPrefs.PageSize) {
		pageSize = userPrefs.PageSize
	}

	eng := engine.New(client, pageSize)
	defer eng.Close()

	uiOpts := ui.Options{
		Engine:    eng,
		Items:     fetch.NewItems(client),
		Config:    cfg,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(ctx, uiOpts)
}
