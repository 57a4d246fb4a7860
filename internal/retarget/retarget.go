// Package retarget rewrites a legacy identifier token across a staged mod:
// once in file paths and once inside serialized asset metadata. Both passes
// apply the same literal byte substitution. Serialized assets embed offsets
// that depend on path lengths, so the token pair must be the same length:
// the rewrite may change bytes, never shift them.
package retarget

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"

	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/ctxlog"
	"github.com/Volpestyle/marvel-rivals-mod-converter/internal/fsutil"
)

// Pair is the (from, to) token pair substituted across the staged tree.
type Pair struct {
	From string
	To   string
}

// Enabled reports whether a substitution was requested at all.
func (p Pair) Enabled() bool {
	return p.From != "" || p.To != ""
}

// Validate enforces the consistency rules: both tokens present and of equal
// byte length. It runs before any file is touched.
func (p Pair) Validate() error {
	if !p.Enabled() {
		return nil
	}
	if p.From == "" || p.To == "" {
		return fmt.Errorf("retarget requires both --retarget-from and --retarget-to")
	}
	if len(p.From) != len(p.To) {
		return fmt.Errorf("retarget tokens must be the same length: %q is %d bytes, %q is %d bytes",
			p.From, len(p.From), p.To, len(p.To))
	}
	return nil
}

// Stats reports what a retarget run touched.
type Stats struct {
	Renamed int // files moved because their path contained the token
	Patched int // files whose contents contained the token
}

// Apply runs the rename pass and then the content pass over the staged
// content directory. Patch progress is drawn on outW.
func Apply(ctx context.Context, contentDir string, pair Pair, patchExtensions []string, outW io.Writer) (Stats, error) {
	var stats Stats

	if err := pair.Validate(); err != nil {
		return stats, err
	}
	if !pair.Enabled() {
		return stats, nil
	}

	logger := ctxlog.FromContext(ctx)
	logger.Info("Retargeting staged files.", "from", pair.From, "to", pair.To)

	renamed, err := renamePaths(ctx, contentDir, pair)
	if err != nil {
		return stats, err
	}
	stats.Renamed = renamed

	if err := pruneEmptyDirs(contentDir); err != nil {
		return stats, err
	}

	patched, err := patchContents(ctx, contentDir, pair, patchExtensions, outW)
	if err != nil {
		return stats, err
	}
	stats.Patched = patched

	return stats, nil
}

// renamePaths moves every file whose path below contentDir contains the from
// token. The substitution runs against the relative path only: the scratch
// prefix above the staged tree is ephemeral and must never be rewritten.
func renamePaths(ctx context.Context, contentDir string, pair Pair) (int, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.ListFiles(contentDir)
	if err != nil {
		return 0, fmt.Errorf("failed to list staged files: %w", err)
	}

	renamed := 0
	for _, path := range files {
		rel, err := filepath.Rel(contentDir, path)
		if err != nil {
			return renamed, err
		}
		newRel := strings.ReplaceAll(rel, pair.From, pair.To)
		if newRel == rel {
			continue
		}

		newPath := filepath.Join(contentDir, newRel)
		if err := os.MkdirAll(filepath.Dir(newPath), 0o755); err != nil {
			return renamed, fmt.Errorf("failed to create directory for %s: %w", newPath, err)
		}
		if err := os.Rename(path, newPath); err != nil {
			return renamed, fmt.Errorf("failed to move %s to %s: %w", path, newPath, err)
		}
		logger.Debug("Renamed staged file.", "from", rel, "to", newRel)
		renamed++
	}

	return renamed, nil
}

// pruneEmptyDirs removes directories left empty by the rename pass. Passes
// repeat until stable so parents emptied by a child's removal go too.
func pruneEmptyDirs(contentDir string) error {
	for {
		removed := 0

		var dirs []string
		err := filepath.WalkDir(contentDir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && path != contentDir {
				dirs = append(dirs, path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to scan for empty directories: %w", err)
		}

		for _, dir := range dirs {
			entries, err := os.ReadDir(dir)
			if err != nil {
				continue
			}
			if len(entries) == 0 {
				if err := os.Remove(dir); err == nil {
					removed++
				}
			}
		}

		if removed == 0 {
			return nil
		}
	}
}

// patchContents substitutes the token pair inside every staged file carrying
// one of patchExtensions. Files are replaced atomically: the rewritten bytes
// land in a sibling temp file that is renamed over the original.
func patchContents(ctx context.Context, contentDir string, pair Pair, patchExtensions []string, outW io.Writer) (int, error) {
	logger := ctxlog.FromContext(ctx)

	candidates, err := fsutil.FindFilesByExtensions(contentDir, patchExtensions)
	if err != nil {
		return 0, fmt.Errorf("failed to list patchable files: %w", err)
	}

	from := []byte(pair.From)
	to := []byte(pair.To)

	bar := pb.New(len(candidates)).SetWriter(outW).Start()
	defer bar.Finish()

	patched := 0
	for _, path := range candidates {
		bar.Increment()

		changed, err := patchFile(path, from, to)
		if err != nil {
			return patched, err
		}
		if changed {
			logger.Debug("Patched asset metadata.", "file", path)
			patched++
		}
	}

	return patched, nil
}

// patchFile rewrites one file, reporting whether it contained the token.
func patchFile(path string, from, to []byte) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !bytes.Contains(data, from) {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".retarget-*")
	if err != nil {
		return false, fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(bytes.ReplaceAll(data, from, to))
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(tmpPath)
		if writeErr == nil {
			writeErr = closeErr
		}
		return false, fmt.Errorf("failed to write patched copy of %s: %w", path, writeErr)
	}

	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("failed to set permissions on patched copy of %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("failed to replace %s with patched copy: %w", path, err)
	}

	return true, nil
}
