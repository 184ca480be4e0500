package project

import (
	"path/filepath"
	"strings"
)

// RelativeTo expresses dir relative to root with forward-slash separators.
//
// It returns "." when dir is root itself. When dir is not a descendant of
// root (possible with a root override), it reports the situation through
// warnf and falls back to "." rather than failing.
func RelativeTo(root, dir string, warnf func(format string, args ...any)) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		if warnf != nil {
			warnf("directory %s is not under project root %s, using \".\"", dir, root)
		}
		return "."
	}

	return filepath.ToSlash(rel)
}
