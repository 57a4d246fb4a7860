package source

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/ctxlog"
)

// extractZip unpacks the archive at zipPath into destDir. Entries overwrite
// existing files silently; entries whose names would escape destDir are
// rejected.
func extractZip(ctx context.Context, zipPath, destDir string) error {
	logger := ctxlog.FromContext(ctx)

	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("failed to open %s as a zip archive: %w", zipPath, err)
	}
	defer reader.Close()

	files := 0
	for _, entry := range reader.File {
		if err := extractEntry(entry, destDir); err != nil {
			return err
		}
		if !entry.FileInfo().IsDir() {
			files++
		}
	}

	logger.Debug("Archive extracted.", "archive", zipPath, "files", files)
	return nil
}

// extractEntry writes a single archive entry below destDir.
func extractEntry(entry *zip.File, destDir string) error {
	rel := filepath.FromSlash(entry.Name)
	if !filepath.IsLocal(rel) {
		return fmt.Errorf("archive entry escapes the extraction root: %s", entry.Name)
	}
	target := filepath.Join(destDir, rel)

	if entry.FileInfo().IsDir() {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", target, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", target, err)
	}

	in, err := entry.Open()
	if err != nil {
		return fmt.Errorf("failed to read archive entry %s: %w", entry.Name, err)
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(target)
		return fmt.Errorf("failed to extract %s: %w", entry.Name, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", target, err)
	}

	return nil
}
