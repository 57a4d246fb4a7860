package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/config"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/ctxlog"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/hostpath"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/retarget"
)

// Options carries the raw command-line selections before the built-in
// defaults and the optional config file are folded in. Empty string fields
// mean "not set on the command line".
type Options struct {
	InputPath    string
	OutputDir    string
	Name         string
	RetocPath    string
	Version      string
	ProjectName  string
	RetargetFrom string
	RetargetTo   string
	Install      bool
	ModsDir      string
	ConfigPath   string
	DryRun       bool

	LogFormat string
	LogLevel  string
}

// Config is the fully resolved run configuration: flags layered over the
// config file layered over built-in defaults, with every path expressed in
// the host's native convention.
type Config struct {
	InputPath       string
	OutputDir       string
	ModName         string // explicit name, "" means derive from the input
	RetocPath       string // explicit path, "" means probe
	RetocCandidates []string
	Version         string
	ProjectName     string
	Retarget        retarget.Pair
	Install         bool
	ModsDir         string
	DryRun          bool
	AssetExtensions []string
	PatchExtensions []string
}

// resolveConfig merges options over settings and normalizes every path. It
// performs no disk mutation; validation failures here surface before any
// scratch directory exists.
func resolveConfig(ctx context.Context, opts *Options, translator *hostpath.Translator) (*Config, error) {
	logger := ctxlog.FromContext(ctx)

	settings := config.Default()
	if file, err := loadConfigFile(ctx, opts.ConfigPath); err != nil {
		return nil, err
	} else if file != nil {
		settings.Apply(file)
	}

	cfg := &Config{
		InputPath:       opts.InputPath,
		OutputDir:       override(opts.OutputDir, settings.OutputDir),
		ModName:         opts.Name,
		RetocPath:       override(opts.RetocPath, settings.RetocPath),
		RetocCandidates: settings.RetocCandidates,
		Version:         override(opts.Version, settings.Version),
		ProjectName:     override(opts.ProjectName, settings.ProjectName),
		Retarget:        retarget.Pair{From: opts.RetargetFrom, To: opts.RetargetTo},
		Install:         opts.Install,
		ModsDir:         override(opts.ModsDir, settings.ModsDir),
		DryRun:          opts.DryRun,
		AssetExtensions: settings.AssetExtensions,
		PatchExtensions: settings.PatchExtensions,
	}

	if err := cfg.Retarget.Validate(); err != nil {
		return nil, err
	}

	var err error
	if cfg.InputPath, err = nativePath(translator, cfg.InputPath); err != nil {
		return nil, err
	}
	if cfg.OutputDir, err = nativeAbsPath(translator, cfg.OutputDir); err != nil {
		return nil, err
	}
	if cfg.ModsDir, err = nativeAbsPath(translator, cfg.ModsDir); err != nil {
		return nil, err
	}
	if cfg.RetocPath != "" {
		if cfg.RetocPath, err = nativePath(translator, cfg.RetocPath); err != nil {
			return nil, err
		}
	}
	for i, candidate := range cfg.RetocCandidates {
		if cfg.RetocCandidates[i], err = nativePath(translator, candidate); err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(cfg.InputPath); err != nil {
		return nil, fmt.Errorf("input path does not exist: %s", cfg.InputPath)
	}

	logger.Debug("Configuration resolved.",
		"output_dir", cfg.OutputDir,
		"version", cfg.Version,
		"project", cfg.ProjectName,
		"install", cfg.Install,
	)
	return cfg, nil
}

// loadConfigFile loads the overrides file. An explicit --config path must
// exist; with no explicit path the default file is used only when present.
func loadConfigFile(ctx context.Context, explicit string) (*config.File, error) {
	path := explicit
	if path == "" {
		if _, err := os.Stat(config.DefaultFileName); err != nil {
			return nil, nil
		}
		path = config.DefaultFileName
	}
	return config.LoadFile(ctx, path)
}

// override returns value unless it is unset.
func override(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// nativePath translates a foreign-convention path and cleans it.
func nativePath(translator *hostpath.Translator, path string) (string, error) {
	native, err := translator.ToNative(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(native), nil
}

// nativeAbsPath additionally makes the path absolute, so it survives being
// handed to the external tool in another host convention.
func nativeAbsPath(translator *hostpath.Translator, path string) (string, error) {
	native, err := nativePath(translator, path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(native)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", native, err)
	}
	return abs, nil
}
