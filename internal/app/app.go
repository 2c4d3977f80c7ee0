package app

import (
	"context"
	"fmt"
	"os"

	"github.com/five82/pullview/internal/config"
	"github.com/five82/pullview/internal/haptic"
	"github.com/five82/pullview/internal/logging"
	"github.com/five82/pullview/internal/prefs"
	"github.com/five82/pullview/internal/source"
	"github.com/five82/pullview/internal/state"
	"github.com/five82/pullview/internal/ui"
)

// Options configure the pullview application. Zero values leave the
// configured setting in place.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/pullview/prefs.toml
	Source     string // file path or http(s) URL; overrides config source
	Threshold  float64
	Haptics    *bool
	Indicator  string
}

// Run boots the pullview TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := settings(opts)
	if err != nil {
		return err
	}

	logPath, err := logging.Setup(logging.Options{Dir: cfg.LogDir, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer logging.Close()
	log := logging.New("app")
	log.WithField("log_file", logPath).Debug("logging initialised")

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.WithError(err).Warn("prefs unreadable, using defaults")
	}
	if opts.Haptics != nil {
		userPrefs = userPrefs.WithHaptics(*opts.Haptics)
	}

	src, err := source.Open(cfg.Source, cfg.TailLines)
	if err != nil {
		return err
	}

	store := &state.Store{}
	store.SetSource(src.Name())

	// Populate the store before the UI starts so the first frame has content.
	preload(ctx, store, src, log)

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Source:    src,
		Config:    cfg,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Haptics:   &haptic.Bell{W: os.Stderr},
		Logger:    logging.New("refresh"),
	})
}

// settings loads config.toml and applies command-line overrides.
func settings(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	if opts.Source != "" {
		cfg.Source = opts.Source
	}
	if opts.Threshold != 0 {
		cfg.Threshold = opts.Threshold
	}
	if opts.Indicator != "" {
		cfg.Indicator = opts.Indicator
	}
	if opts.Haptics != nil {
		cfg.HapticsEnabled = *opts.Haptics
	}
	if cfg.Source == "" {
		return config.Config{}, fmt.Errorf("no source: pass a file or URL, or set source in config")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
