package retoc

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/ctxlog"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/hostpath"
)

// Triple is the set of sibling files retoc produces for one mod. The three
// are a unit: the run only succeeds when all of them exist and are non-empty.
type Triple struct {
	Pak  string
	Ucas string
	Utoc string
}

// TripleFor returns the triple for an output base path (no extension).
func TripleFor(outputBase string) Triple {
	return Triple{
		Pak:  outputBase + ".pak",
		Ucas: outputBase + ".ucas",
		Utoc: outputBase + ".utoc",
	}
}

// Paths lists the triple's members in output order.
func (t Triple) Paths() []string {
	return []string{t.Pak, t.Ucas, t.Utoc}
}

// Invocation is one retoc run.
type Invocation struct {
	Tool       string // resolved binary path
	Version    string // engine version tag, e.g. UE5_3
	StageDir   string // scratch directory holding <project>/Content
	OutputBase string // output path without extension
}

// Convert runs retoc over the staged tree and verifies the output triple.
// The stage and output paths are translated to the Windows convention when
// the binary runs on that side of the host boundary; everything else stays
// native. retoc's own output streams through outW and errW, and its exit
// code gates success.
func Convert(ctx context.Context, translator *hostpath.Translator, inv Invocation, outW, errW io.Writer) (Triple, error) {
	logger := ctxlog.FromContext(ctx)
	triple := TripleFor(inv.OutputBase)

	stageArg := inv.StageDir
	utocArg := triple.Utoc
	if translator.ToolRequiresWindowsPaths(inv.Tool) {
		var err error
		if stageArg, err = translator.ToWindows(inv.StageDir); err != nil {
			return triple, err
		}
		if utocArg, err = translator.ToWindows(triple.Utoc); err != nil {
			return triple, err
		}
	}

	args := []string{"to-zen", "--version", inv.Version, stageArg, utocArg}
	logger.Info("Invoking retoc.", "tool", inv.Tool, "args", args)

	cmd := exec.CommandContext(ctx, inv.Tool, args...)
	cmd.Stdout = outW
	cmd.Stderr = errW
	if err := cmd.Run(); err != nil {
		return triple, fmt.Errorf("retoc failed: %w", err)
	}

	for _, path := range triple.Paths() {
		info, err := os.Stat(path)
		if err != nil {
			return triple, fmt.Errorf("retoc reported success but %s is missing", path)
		}
		if info.Size() == 0 {
			return triple, fmt.Errorf("retoc produced an empty %s", path)
		}
	}

	logger.Info("Conversion finished.", "utoc", triple.Utoc)
	return triple, nil
}
