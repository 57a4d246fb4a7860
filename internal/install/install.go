// Package install copies a converted mod's container triple into the game's
// mods folder. Install is a destructive overwrite: same-named files already
// in place are replaced without backup.
package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/ctxlog"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/fsutil"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/retoc"
)

// Install copies the triple into destDir, creating it if missing. The
// originals stay where the converter wrote them.
func Install(ctx context.Context, triple retoc.Triple, destDir string) error {
	logger := ctxlog.FromContext(ctx)

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to create mods directory %s: %w", destDir, err)
	}

	for _, src := range triple.Paths() {
		dst := filepath.Join(destDir, filepath.Base(src))
		if err := fsutil.CopyFile(src, dst); err != nil {
			return fmt.Errorf("failed to install %s: %w", filepath.Base(src), err)
		}
		logger.Info("Installed.", "file", dst)
	}

	return nil
}
