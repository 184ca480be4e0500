// Package executor runs the user's clean command in a resolved directory.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// ErrEmptyCommand is returned when no command tokens are given.
var ErrEmptyCommand = errors.New("no command provided")

// Runner spawns the clean command and relays its output.
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner creates a runner writing relayed output to the given streams.
func NewRunner(stdout, stderr io.Writer) *Runner {
	return &Runner{Stdout: stdout, Stderr: stderr}
}

// Run executes command in dir and returns the child's exit code.
//
// The command is opaque: no timeout is imposed and signals are left to the
// operating system's default delivery. A non-zero exit is reported through
// the error with the exit code preserved; a spawn failure has exit code -1.
func (r *Runner) Run(ctx context.Context, dir string, command []string) (int, error) {
	if len(command) == 0 {
		return -1, ErrEmptyCommand
	}

	commandStr := strings.Join(command, " ")
	zerolog.Ctx(ctx).Info().Str("command", commandStr).Str("dir", dir).Msg("executing command")

	cmd := exec.Command(command[0], command[1:]...) //nolint:gosec // the command is the user's own
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			return code, fmt.Errorf("command %q failed with exit code %d", commandStr, code)
		}
		return -1, fmt.Errorf("failed to execute command %q: %w", commandStr, err)
	}

	return 0, nil
}
