package config

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Backend abstracts the persistence mechanism behind the Store so the core
// logic can be tested against an in-memory fake instead of a spawned
// process.
type Backend interface {
	// Check verifies the backend is usable. Called once per invocation
	// before any Set or Get.
	Check() error

	// Set persists one key/value pair under the given feature namespace.
	Set(key, value, feature string) error

	// Get returns the raw value for key under feature. The second result is
	// false when the key is absent, which is not an error.
	Get(key, feature string) (string, bool, error)
}

// ToolBackend persists configuration by invoking the external scrub-config
// tool as a subprocess inside the project root.
type ToolBackend struct {
	// ToolPath is the scrub-config binary, either a bare name resolved via
	// PATH or an explicit path from SCRUB_CONFIG.
	ToolPath string

	// Root is the project root the tool runs in.
	Root string
}

// NewToolBackend creates a backend running toolPath inside root.
func NewToolBackend(toolPath, root string) *ToolBackend {
	return &ToolBackend{ToolPath: toolPath, Root: root}
}

// Check probes the tool with --help. Exit 0 is required.
func (b *ToolBackend) Check() error {
	cmd := exec.Command(b.ToolPath, "--help")
	if err := cmd.Run(); err != nil {
		return ErrToolNotFound
	}
	return nil
}

// Set runs `scrub-config config --make [--feature F] --set key value`.
func (b *ToolBackend) Set(key, value, feature string) error {
	args := []string{"config", "--make"}
	args = append(args, featureArgs(feature)...)
	args = append(args, "--set", key, value)

	cmd := exec.Command(b.ToolPath, args...)
	cmd.Dir = b.Root

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("%s: %s", b.ToolPath, strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("failed to execute %s: %w", b.ToolPath, err)
	}

	return nil
}

// Get runs `scrub-config config --make [--feature F] --list key`. A non-zero
// exit means the key is absent; only a spawn failure is an error.
func (b *ToolBackend) Get(key, feature string) (string, bool, error) {
	args := []string{"config", "--make"}
	args = append(args, featureArgs(feature)...)
	args = append(args, "--list", key)

	cmd := exec.Command(b.ToolPath, args...)
	cmd.Dir = b.Root

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to execute %s: %w", b.ToolPath, err)
	}

	return strings.TrimSpace(stdout.String()), true, nil
}

func featureArgs(feature string) []string {
	if feature == "" {
		return nil
	}
	return []string{"--feature", feature}
}
