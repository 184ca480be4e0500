package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SettingsFilename is the optional per-project defaults file inside .scrub.
const SettingsFilename = "scrub.yml"

// ScrubDir is the hidden per-project directory holding scrub state.
const ScrubDir = ".scrub"

// Settings are project-level defaults read from .scrub/scrub.yml. Flags and
// environment variables take precedence over them.
type Settings struct {
	// Feature is the default feature namespace for this project.
	Feature string `yaml:"feature,omitempty"`

	// AutoCommit toggles configuration auto-commit. Defaults to true.
	AutoCommit *bool `yaml:"auto_commit,omitempty"`
}

// LoadSettings reads .scrub/scrub.yml at root. A missing file yields zero
// settings without error.
func LoadSettings(root string) (Settings, error) {
	path := filepath.Join(root, ScrubDir, SettingsFilename)

	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the resolved root
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return settings, nil
}

// AutoCommitEnabled reports the file's auto-commit preference, defaulting to
// enabled when unset.
func (s Settings) AutoCommitEnabled() bool {
	if s.AutoCommit == nil {
		return true
	}
	return *s.AutoCommit
}
