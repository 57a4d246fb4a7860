// Package source normalizes the user's input - a loose mod folder or a zip
// archive - into the content root the stager consumes.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/ctxlog"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/fsutil"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/scratch"
)

// contentFolder is the conventional name of the folder holding loose assets.
const contentFolder = "Content"

// Input is the normalized working set derived from the user's input path.
type Input struct {
	// WorkingRoot is the directory the asset scan and content-root
	// resolution ran against.
	WorkingRoot string

	// ContentRoot is the directory staged as Content.
	ContentRoot string

	// Extracted owns the extraction scratch directory when the input was a
	// zip archive, nil when the input was already a directory. The caller
	// releases it.
	Extracted *scratch.Dir
}

// Normalize resolves inputPath into a content root. A file input must be a
// zip archive and is extracted into a scratch directory; a directory input is
// used in place and never written to. The tree must contain at least one file
// carrying one of assetExtensions, and a folder named Content must be
// locatable at the root, as the root itself, or nested exactly one project
// folder deep.
func Normalize(ctx context.Context, inputPath string, assetExtensions []string) (_ *Input, err error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("input path does not exist: %s", inputPath)
	}

	in := &Input{}
	defer func() {
		if err != nil {
			if relErr := in.Extracted.Release(); relErr != nil {
				logger.Warn("Failed to remove scratch directory.", "error", relErr)
			}
		}
	}()

	if info.IsDir() {
		in.WorkingRoot = inputPath
	} else {
		if !strings.EqualFold(filepath.Ext(inputPath), ".zip") {
			return nil, fmt.Errorf("input file is not a zip archive: %s", inputPath)
		}
		in.Extracted, err = scratch.New("rivals-mod-extract-*")
		if err != nil {
			return nil, err
		}
		logger.Info("Extracting archive.", "input", inputPath)
		if err := extractZip(ctx, inputPath, in.Extracted.Path()); err != nil {
			return nil, err
		}
		in.WorkingRoot = in.Extracted.Path()
	}

	// Users often point straight at the inner Content folder; step up to its
	// parent so the resolution below sees the usual layout.
	if filepath.Base(in.WorkingRoot) == contentFolder {
		in.WorkingRoot = filepath.Dir(in.WorkingRoot)
		logger.Debug("Input is a Content folder, using its parent.", "root", in.WorkingRoot)
	}

	hasAssets, err := fsutil.HasFileWithExtensions(in.WorkingRoot, assetExtensions)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for asset files: %w", in.WorkingRoot, err)
	}
	if !hasAssets {
		return nil, fmt.Errorf("no asset files (%s) found under %s; is this really a loose-asset mod?",
			strings.Join(assetExtensions, "/"), in.WorkingRoot)
	}

	in.ContentRoot, err = resolveContentRoot(in.WorkingRoot)
	if err != nil {
		return nil, err
	}

	logger.Info("Resolved content root.", "path", in.ContentRoot)
	return in, nil
}

// resolveContentRoot locates the Content folder: directly under root, root
// itself, or nested exactly one project folder deep. Anything else is
// ambiguous and rejected rather than guessed.
func resolveContentRoot(root string) (string, error) {
	direct := filepath.Join(root, contentFolder)
	if isDir(direct) {
		return direct, nil
	}

	if filepath.Base(root) == contentFolder {
		return root, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("failed to search %s for a %s folder: %w", root, contentFolder, err)
	}
	var nested []string
	for _, entry := range entries {
		candidate := filepath.Join(root, entry.Name(), contentFolder)
		if isDir(candidate) {
			nested = append(nested, candidate)
		}
	}
	switch len(nested) {
	case 1:
		return nested[0], nil
	case 0:
		return "", fmt.Errorf("no %s folder found under %s (looked for %s, and */%s one level down)",
			contentFolder, root, direct, contentFolder)
	default:
		return "", fmt.Errorf("found %d */%s folders under %s; point at a single mod folder",
			len(nested), contentFolder, root)
	}
}

// isDir reports whether path exists and is a directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
