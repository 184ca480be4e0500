package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := run(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}

		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return createRootCommand().Execute()
}

// ExitError carries an explicit process exit code, used to relay the clean
// command's own exit status.
type ExitError struct {
	Message string
	Code    int
}

func (e *ExitError) Error() string { return e.Message }
