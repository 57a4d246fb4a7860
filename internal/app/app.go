package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/ctxlog"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/hostpath"
)

// App encapsulates the converter's dependencies, configuration, and
// lifecycle.
type App struct {
	outW       io.Writer
	errW       io.Writer
	logger     *slog.Logger
	translator *hostpath.Translator
	config     *Config
}

// NewApp is the constructor for the converter. It builds the app's isolated
// logger, resolves the configuration (defaults, then the optional config
// file, then flags) and validates everything that can be validated before
// any file is touched.
func NewApp(ctx context.Context, outW, errW io.Writer, opts *Options) (*App, error) {
	logger := newLogger(opts.LogLevel, opts.LogFormat, outW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	translator := hostpath.New()

	cfg, err := resolveConfig(ctx, opts, translator)
	if err != nil {
		return nil, err
	}

	return &App{
		outW:       outW,
		errW:       errW,
		logger:     logger,
		translator: translator,
		config:     cfg,
	}, nil
}

// Config returns the resolved configuration. This is primarily for testing.
func (a *App) Config() *Config {
	return a.config
}
