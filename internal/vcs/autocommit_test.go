package vcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// setupStore creates root/.scrub with an initialized git repository and one
// unstaged file.
func setupStore(t *testing.T) (root, storeDir string) {
	t.Helper()
	requireGit(t)

	root = t.TempDir()
	storeDir = filepath.Join(root, ".scrub")
	require.NoError(t, os.Mkdir(storeDir, 0o750))

	cmd := exec.Command("git", "init")
	cmd.Dir = storeDir
	require.NoError(t, cmd.Run())

	writeStoreFile(t, storeDir, "config.json", `{"build_dir":"sub"}`)
	return root, storeDir
}

func writeStoreFile(t *testing.T, storeDir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(storeDir, name), []byte(content), 0o600))
}

func commitCount(t *testing.T, storeDir string) int {
	t.Helper()

	cmd := exec.Command("git", "rev-list", "--count", "HEAD")
	cmd.Dir = storeDir
	out, err := cmd.Output()
	if err != nil {
		// No HEAD yet means no commits.
		return 0
	}

	count, err := strconv.Atoi(strings.TrimSpace(string(out)))
	require.NoError(t, err)
	return count
}

func TestAutoCommitNoStore(t *testing.T) {
	t.Parallel()

	require.NoError(t, NewTracker().AutoCommit(context.Background(), t.TempDir()))
}

func TestAutoCommitStoreWithoutRepo(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	storeDir := filepath.Join(root, ".scrub")
	require.NoError(t, os.Mkdir(storeDir, 0o750))
	writeStoreFile(t, storeDir, "config.json", "{}")

	require.NoError(t, NewTracker().AutoCommit(context.Background(), root))

	// Never auto-initialize on the commit path.
	_, err := os.Stat(filepath.Join(storeDir, ".git"))
	assert.True(t, os.IsNotExist(err))
}

func TestAutoCommitDirtyRepo(t *testing.T) {
	t.Parallel()

	root, storeDir := setupStore(t)

	require.NoError(t, NewTracker().AutoCommit(context.Background(), root))
	assert.Equal(t, 1, commitCount(t, storeDir))

	// The commit message must be identifiable as automated.
	cmd := exec.Command("git", "log", "-1", "--format=%s")
	cmd.Dir = storeDir
	out, err := cmd.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "Auto-commit")
}

func TestAutoCommitIdempotent(t *testing.T) {
	t.Parallel()

	root, storeDir := setupStore(t)
	tracker := NewTracker()

	require.NoError(t, tracker.AutoCommit(context.Background(), root))
	require.NoError(t, tracker.AutoCommit(context.Background(), root))

	// No filesystem change between calls: exactly one revision, not two.
	assert.Equal(t, 1, commitCount(t, storeDir))
}

func TestAutoCommitPicksUpLaterChanges(t *testing.T) {
	t.Parallel()

	root, storeDir := setupStore(t)
	tracker := NewTracker()

	require.NoError(t, tracker.AutoCommit(context.Background(), root))
	writeStoreFile(t, storeDir, "config.json", `{"build_dir":"other"}`)
	require.NoError(t, tracker.AutoCommit(context.Background(), root))

	assert.Equal(t, 2, commitCount(t, storeDir))
}

//nolint:paralleltest // mutates process environment
func TestAutoCommitWorksWithoutConfiguredIdentity(t *testing.T) {
	root, storeDir := setupStore(t)

	// Point git at empty config locations so no user identity resolves.
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(t.TempDir(), "gitconfig"))
	t.Setenv("GIT_CONFIG_SYSTEM", os.DevNull)

	require.NoError(t, NewTracker().AutoCommit(context.Background(), root))
	assert.Equal(t, 1, commitCount(t, storeDir))
}

func TestInitCreatesRepoOnce(t *testing.T) {
	t.Parallel()

	requireGit(t)
	root := t.TempDir()
	storeDir := filepath.Join(root, ".scrub")
	require.NoError(t, os.Mkdir(storeDir, 0o750))

	tracker := NewTracker()
	require.NoError(t, tracker.Init(root))
	require.NoError(t, tracker.Init(root))

	info, err := os.Stat(filepath.Join(storeDir, ".git"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
