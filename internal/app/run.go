package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/ctxlog"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/install"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/modname"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/retarget"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/retoc"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/scratch"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/source"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/stage"
)

// Run executes the conversion pipeline strictly in order: locate retoc,
// normalize the input, derive the mod name, stage, retarget when requested,
// convert, and optionally install. The first failing stage aborts the run,
// and scratch directories are released on every exit path.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	cfg := a.config

	toolPath, err := retoc.Locate(ctx, a.translator, cfg.RetocPath, cfg.RetocCandidates)
	if err != nil {
		return err
	}

	src, err := source.Normalize(ctx, cfg.InputPath, cfg.AssetExtensions)
	if err != nil {
		return err
	}
	defer a.release(src.Extracted)

	name, err := modname.Derive(a.nameCandidate(src))
	if err != nil {
		return err
	}
	outputBase := filepath.Join(cfg.OutputDir, name)

	if cfg.DryRun {
		a.printPlan(toolPath, src, name, retoc.TripleFor(outputBase))
		return nil
	}

	staged, err := stage.Stage(ctx, src.ContentRoot, cfg.ProjectName, a.outW)
	if err != nil {
		return err
	}
	defer a.release(staged.Dir)

	if cfg.Retarget.Enabled() {
		stats, err := retarget.Apply(ctx, staged.ContentDir, cfg.Retarget, cfg.PatchExtensions, a.outW)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "Retargeted %q -> %q: %d files renamed, %d files patched\n",
			cfg.Retarget.From, cfg.Retarget.To, stats.Renamed, stats.Patched)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	triple, err := retoc.Convert(ctx, a.translator, retoc.Invocation{
		Tool:       toolPath,
		Version:    cfg.Version,
		StageDir:   staged.Dir.Path(),
		OutputBase: outputBase,
	}, a.outW, a.errW)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.outW, "Converted %d files into:\n  %s\n  %s\n  %s\n",
		staged.Files, triple.Pak, triple.Ucas, triple.Utoc)

	if cfg.Install {
		if err := install.Install(ctx, triple, cfg.ModsDir); err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "Installed into %s\n", cfg.ModsDir)
	}

	return nil
}

// nameCandidate picks the raw name the deriver works from: the explicit
// --name value, the archive's file name, or the normalized working root's
// folder name (so pointing at an inner Content folder still names the mod
// after its parent).
func (a *App) nameCandidate(src *source.Input) string {
	if a.config.ModName != "" {
		return a.config.ModName
	}
	if src.Extracted != nil {
		return filepath.Base(filepath.Clean(a.config.InputPath))
	}
	return filepath.Base(src.WorkingRoot)
}

// printPlan reports what a real run would do, for --dry-run.
func (a *App) printPlan(toolPath string, src *source.Input, name string, triple retoc.Triple) {
	fmt.Fprintf(a.outW, "Dry run, nothing converted.\n")
	fmt.Fprintf(a.outW, "  input:        %s\n", a.config.InputPath)
	fmt.Fprintf(a.outW, "  content root: %s\n", src.ContentRoot)
	fmt.Fprintf(a.outW, "  mod name:     %s\n", name)
	fmt.Fprintf(a.outW, "  retoc:        %s\n", toolPath)
	fmt.Fprintf(a.outW, "  version:      %s\n", a.config.Version)
	fmt.Fprintf(a.outW, "  outputs:      %s, %s, %s\n", triple.Pak, triple.Ucas, triple.Utoc)
	if a.config.Install {
		fmt.Fprintf(a.outW, "  install into: %s\n", a.config.ModsDir)
	}
}

// release removes a scratch directory, logging rather than failing the run
// when the removal itself goes wrong.
func (a *App) release(dir *scratch.Dir) {
	if err := dir.Release(); err != nil {
		a.logger.Warn("Failed to remove scratch directory.", "error", err)
	}
}
