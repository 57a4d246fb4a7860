// Package retoc locates and drives the external retoc binary, the
// closed-source converter that packs a staged tree into the game's
// utoc/ucas/pak container triple. This repository never parses that format
// itself; everything the container's structure requires is retoc's problem.
package retoc

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/ctxlog"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/hostpath"
)

// lookupNames are tried on the search path, in order, after the candidate
// locations are exhausted.
var lookupNames = []string{"retoc.exe", "retoc"}

// Locate finds the retoc binary. An explicit path must point at an existing
// file. Otherwise the candidate locations are probed in order, then the
// search path. When the located binary runs on the Windows side, host path
// translation capability is verified here so the run fails before any
// staging work.
func Locate(ctx context.Context, translator *hostpath.Translator, explicit string, candidates []string) (string, error) {
	logger := ctxlog.FromContext(ctx)

	path, err := find(ctx, explicit, candidates)
	if err != nil {
		return "", err
	}

	if translator.ToolRequiresWindowsPaths(path) && !translator.CanProduceWindowsPaths() {
		return "", fmt.Errorf("%s is a Windows binary but host path translation is unavailable; install wslpath or set WSL_DISTRO_NAME", path)
	}

	logger.Info("Using retoc.", "path", path)
	return path, nil
}

func find(ctx context.Context, explicit string, candidates []string) (string, error) {
	logger := ctxlog.FromContext(ctx)

	if explicit != "" {
		if !isFile(explicit) {
			return "", fmt.Errorf("retoc not found at %s", explicit)
		}
		return explicit, nil
	}

	for _, candidate := range candidates {
		if isFile(candidate) {
			return candidate, nil
		}
		logger.Debug("retoc candidate not present.", "path", candidate)
	}

	for _, name := range lookupNames {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("retoc binary not found (probed %s and the search path); pass --retoc /path/to/retoc",
		strings.Join(candidates, ", "))
}

// isFile reports whether path exists and is a regular file.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
