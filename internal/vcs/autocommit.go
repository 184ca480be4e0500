// Package vcs snapshots the .scrub configuration directory into its private
// git history.
package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Synthetic identity used when the store has no author configured, so a
// commit never fails purely for lack of user.name/user.email.
const (
	commitAuthorName  = "scrub"
	commitAuthorEmail = "scrub@localhost"
)

// Tracker auto-commits changes in a project's .scrub directory.
type Tracker struct {
	// GitPath is the git binary, normally just "git".
	GitPath string
}

// NewTracker creates a tracker using git from PATH.
func NewTracker() *Tracker {
	return &Tracker{GitPath: "git"}
}

// AutoCommit snapshots root/.scrub if it is a dirty git work tree.
//
// It is a no-op when .scrub does not exist, is not a git repository, or has
// no uncommitted changes. It never initializes a repository; scrub init owns
// that. Callers treat any returned error as a warning, never as a failure of
// the overall invocation.
func (t *Tracker) AutoCommit(ctx context.Context, root string) error {
	logger := zerolog.Ctx(ctx)
	storeDir := filepath.Join(root, ".scrub")

	info, err := os.Stat(storeDir)
	if err != nil || !info.IsDir() {
		logger.Debug().Str("dir", storeDir).Msg("no config store, skipping auto-commit")
		return nil
	}

	if !t.hasRepo(storeDir) {
		logger.Debug().Str("dir", storeDir).Msg("config store is not a git repository, skipping auto-commit")
		return nil
	}

	dirty, err := t.hasChanges(storeDir)
	if err != nil {
		return err
	}
	if !dirty {
		logger.Debug().Str("dir", storeDir).Msg("config store is clean, skipping auto-commit")
		return nil
	}

	if err := t.run(storeDir, "add", "-A"); err != nil {
		return fmt.Errorf("failed to stage configuration changes: %w", err)
	}

	message := fmt.Sprintf("Auto-commit: configuration snapshot %s",
		time.Now().Format(time.RFC3339))
	commitArgs := []string{
		"-c", "user.name=" + commitAuthorName,
		"-c", "user.email=" + commitAuthorEmail,
		"commit", "-m", message,
	}
	if err := t.run(storeDir, commitArgs...); err != nil {
		return fmt.Errorf("failed to commit configuration changes: %w", err)
	}

	logger.Info().Str("dir", storeDir).Str("message", message).Msg("auto-committed configuration changes")
	return nil
}

// hasRepo reports whether dir itself is a git repository. The probe is for
// dir's own .git entry, not an enclosing work tree: a project that is itself
// under git must not have its .scrub changes staged into the outer repo.
func (t *Tracker) hasRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// hasChanges reports whether the work tree has any new, modified, deleted or
// renamed entries, staged or not.
func (t *Tracker) hasChanges(dir string) (bool, error) {
	cmd := exec.Command(t.GitPath, "status", "--porcelain")
	cmd.Dir = dir

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return false, fmt.Errorf("failed to get status of %s: %w", dir, err)
	}

	return strings.TrimSpace(stdout.String()) != "", nil
}

func (t *Tracker) run(dir string, args ...string) error {
	cmd := exec.Command(t.GitPath, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("git: %s", strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}

	return nil
}
