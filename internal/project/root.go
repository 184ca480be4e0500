// Package project locates the project root and computes paths relative to it.
package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// Markers are the directory entries that identify a project root, checked in
// order at each ancestor. Only the ancestor's depth matters: the closest
// directory containing any marker wins.
var Markers = []string{".scrub", ".git", "Makefile"}

// Options configures root resolution. The cmd layer populates it once from
// the process environment; the resolver itself never reads env vars.
type Options struct {
	// RootOverride, when non-empty, short-circuits marker discovery. It must
	// name an existing directory.
	RootOverride string
}

// Resolver finds project roots according to its Options.
type Resolver struct {
	opts Options
}

// NewResolver creates a resolver with the given options.
func NewResolver(opts Options) *Resolver {
	return &Resolver{opts: opts}
}

// Resolve returns the project root for startDir.
//
// An override takes priority and is validated: it must exist and be a
// directory. Otherwise the resolver walks startDir and its ancestors for the
// first directory containing any marker. With no marker anywhere, startDir
// itself is the root.
func (r *Resolver) Resolve(startDir string) (string, error) {
	if r.opts.RootOverride != "" {
		return validateOverride(r.opts.RootOverride)
	}

	if root, found := findMarker(startDir); found {
		return root, nil
	}

	return startDir, nil
}

// validateOverride checks that the override names an existing directory.
func validateOverride(override string) (string, error) {
	abs, err := filepath.Abs(override)
	if err != nil {
		return "", fmt.Errorf("invalid SCRUB_ROOT %q: %w", override, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("invalid SCRUB_ROOT %q: %w", override, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("invalid SCRUB_ROOT %q: not a directory", override)
	}

	return abs, nil
}

// findMarker searches for project markers starting from startDir, walking up
// through its ancestors.
func findMarker(startDir string) (string, bool) {
	currentDir := startDir

	for {
		if hasMarker(currentDir) {
			return currentDir, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", false
}

// hasMarker checks if any recognized marker exists in dir.
func hasMarker(dir string) bool {
	for _, marker := range Markers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
