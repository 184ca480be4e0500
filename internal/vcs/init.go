package vcs

import (
	"fmt"
	"path/filepath"
)

// Init creates a git repository inside root/.scrub. Used only by scrub init;
// the auto-commit path never initializes.
func (t *Tracker) Init(root string) error {
	storeDir := filepath.Join(root, ".scrub")

	if t.hasRepo(storeDir) {
		return nil
	}

	if err := t.run(storeDir, "init"); err != nil {
		return fmt.Errorf("failed to initialize configuration history: %w", err)
	}

	return nil
}
