// Package modname derives the canonical output name for a converted mod.
package modname

import (
	"fmt"
	"regexp"
	"strings"
)

// Suffix is appended to every derived name. The game's loader only picks up
// container files whose base name ends in this marker; the numeric part is an
// opaque load-order convention, not derived from anything in this repository.
const Suffix = "_9999999_P"

// strippedExtensions are archive and container extensions removed from the
// end of a candidate name, case-insensitively.
var strippedExtensions = []string{".zip", ".utoc", ".ucas", ".pak"}

// strippedSuffixes are loader naming conventions removed from the end of a
// candidate name so that re-converting an already-converted mod does not
// stack suffixes. Order matters: the longest form is tried first.
var strippedSuffixes = []string{Suffix, "_9999999", "_P"}

// disallowedRe matches every character outside the loader's accepted set.
var disallowedRe = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)

// Derive turns a candidate name (an explicit --name value or an input's base
// name) into the final mod name: disallowed characters become underscores,
// then known extensions, loader suffixes and leading/trailing underscore runs
// are stripped until stable, and Suffix is appended. Deriving from an
// already-derived name yields the same result.
func Derive(candidate string) (string, error) {
	name := disallowedRe.ReplaceAllString(strings.TrimSpace(candidate), "_")

	for {
		next := strings.Trim(stripOnce(name), "_")
		if next == name {
			break
		}
		name = next
	}

	if name == "" {
		return "", fmt.Errorf("cannot derive a mod name from %q; pass --name", candidate)
	}

	return name + Suffix, nil
}

// stripOnce removes at most one trailing extension and one trailing loader
// suffix from name.
func stripOnce(name string) string {
	for _, ext := range strippedExtensions {
		if len(name) > len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext) {
			name = name[:len(name)-len(ext)]
			break
		}
	}
	for _, suffix := range strippedSuffixes {
		if len(name) > len(suffix) && strings.HasSuffix(name, suffix) {
			name = strings.TrimSuffix(name, suffix)
			break
		}
	}
	return name
}
