// Package stage lays a mod's content root out in the folder structure retoc
// expects. retoc derives the container's internal asset paths from the
// staged layout, so the copy must land at <scratch>/<project>/Content for
// the game to resolve the repacked files at runtime.
package stage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"

	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/ctxlog"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/fsutil"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/scratch"
)

// Result describes a populated stage directory.
type Result struct {
	// Dir owns the staging scratch directory. The caller releases it.
	Dir *scratch.Dir

	// ContentDir is <scratch>/<project>/Content, the tree handed to retoc.
	ContentDir string

	// Files is the number of files staged.
	Files int
}

// Stage copies contentRoot into a fresh scratch directory under
// <projectName>/Content, preserving relative structure and file bytes
// exactly. Progress is drawn on outW. On error no scratch directory is left
// behind.
func Stage(ctx context.Context, contentRoot, projectName string, outW io.Writer) (_ *Result, err error) {
	logger := ctxlog.FromContext(ctx)

	dir, err := scratch.New("rivals-mod-stage-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if relErr := dir.Release(); relErr != nil {
				logger.Warn("Failed to remove scratch directory.", "error", relErr)
			}
		}
	}()

	contentDir := dir.Join(projectName, "Content")
	if err := os.MkdirAll(filepath.Dir(contentDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create project folder in %s: %w", dir.Path(), err)
	}

	total, err := fsutil.CountFiles(contentRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to count files under %s: %w", contentRoot, err)
	}

	logger.Info("Staging content.", "from", contentRoot, "to", contentDir, "files", total)

	bar := pb.New(total).SetWriter(outW).Start()
	copied := 0
	err = fsutil.CopyTree(contentRoot, contentDir, func(string) {
		copied++
		bar.Increment()
	})
	bar.Finish()
	if err != nil {
		return nil, fmt.Errorf("failed to stage %s: %w", contentRoot, err)
	}

	return &Result{Dir: dir, ContentDir: contentDir, Files: copied}, nil
}
