// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// extensionSet builds a lookup table of lower-cased extensions.
func extensionSet(extensions []string) map[string]bool {
	if len(extensions) == 0 {
		panic("extensions must not be empty")
	}
	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = true
	}
	return set
}

// FindFilesByExtensions recursively searches the given root path for all files
// carrying one of the specified extensions. Extensions are matched
// case-insensitively. The returned paths are sorted so callers process files
// in a deterministic order.
func FindFilesByExtensions(rootPath string, extensions []string) ([]string, error) {
	set := extensionSet(extensions)

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && set[strings.ToLower(filepath.Ext(d.Name()))] {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// HasFileWithExtensions reports whether at least one file under rootPath
// carries one of the specified extensions. The walk stops at the first hit.
func HasFileWithExtensions(rootPath string, extensions []string) (bool, error) {
	set := extensionSet(extensions)

	found := false
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && set[strings.ToLower(filepath.Ext(d.Name()))] {
			found = true
			return fs.SkipAll
		}
		return nil
	})

	if err != nil {
		return false, err
	}

	return found, nil
}

// ListFiles recursively collects every regular file under rootPath. The
// returned paths are sorted.
func ListFiles(rootPath string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// CountFiles returns the number of regular files under rootPath.
func CountFiles(rootPath string) (int, error) {
	count := 0
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})

	if err != nil {
		return 0, err
	}

	return count, nil
}
