package config

import (
	"os"
	"strings"
)

// Environment variable names recognized by scrub.
const (
	// EnvRoot overrides project-root discovery. Validated by the resolver.
	EnvRoot = "SCRUB_ROOT"

	// EnvConfigTool overrides the scrub-config binary location. Defaults to
	// a bare command name resolved via PATH.
	EnvConfigTool = "SCRUB_CONFIG"

	// EnvNoAutoCommit disables the auto-commit step when set to anything
	// other than "0" or "false" (case-insensitive).
	EnvNoAutoCommit = "SCRUB_NO_AUTOCOMMIT"
)

// DefaultToolName is the scrub-config command name used when no override is
// set.
const DefaultToolName = "scrub-config"

// Env carries the environment-derived settings. It is populated exactly once
// by the cmd layer so that resolver, store and tracker never read ambient
// process state themselves.
type Env struct {
	RootOverride       string
	ToolPath           string
	AutoCommitDisabled bool
}

// EnvFromProcess reads the scrub environment variables.
func EnvFromProcess() Env {
	toolPath := os.Getenv(EnvConfigTool)
	if toolPath == "" {
		toolPath = DefaultToolName
	}

	return Env{
		RootOverride:       os.Getenv(EnvRoot),
		ToolPath:           toolPath,
		AutoCommitDisabled: disabledByValue(os.Getenv(EnvNoAutoCommit)),
	}
}

// disabledByValue interprets the auto-commit kill switch: any non-empty
// value except "0" and "false" disables auto-commit.
func disabledByValue(value string) bool {
	if value == "" {
		return false
	}
	lower := strings.ToLower(value)
	return lower != "0" && lower != "false"
}
