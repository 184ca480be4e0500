// Package config persists the clean configuration for a project through the
// external scrub-config tool.
package config

// Keys used in the scrub-config store. Load uses the structured record key
// and parses the inline map it returns.
const (
	keyDir    = "clean.dir"
	keyCmd    = "clean.cmd"
	keyRecord = "clean"
)

// DefaultFeature is the namespace used when none is given.
const DefaultFeature = "default"

// CleanConfig is the persisted record: where the clean command runs,
// relative to the project root, and what the command is.
type CleanConfig struct {
	Dir     string
	Command string
	Feature string
}

// Store reads and writes CleanConfig records through a Backend.
type Store struct {
	backend Backend
}

// NewStore creates a store over the given backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Check runs the backend preflight. Must be called once per invocation
// before Save or Load.
func (s *Store) Check() error {
	return s.backend.Check()
}

// Save persists cfg under its feature namespace. Fields are written one at a
// time; the first failure short-circuits and reports which field failed.
func (s *Store) Save(cfg CleanConfig) error {
	feature := cfg.Feature
	if feature == "" {
		feature = DefaultFeature
	}

	fields := []struct {
		key   string
		value string
	}{
		{keyDir, cfg.Dir},
		{keyCmd, cfg.Command},
	}

	for _, field := range fields {
		if err := s.backend.Set(field.key, field.value, feature); err != nil {
			return &SaveError{Field: field.key, Err: err}
		}
	}

	return nil
}

// Load reads the record for feature. The second result is false when no
// record has been saved yet, which is not an error.
func (s *Store) Load(feature string) (CleanConfig, bool, error) {
	if feature == "" {
		feature = DefaultFeature
	}

	raw, found, err := s.backend.Get(keyRecord, feature)
	if err != nil {
		return CleanConfig{}, false, &ReadError{Err: err}
	}
	if !found {
		return CleanConfig{}, false, nil
	}

	record := parseRecord(raw)
	cfg := CleanConfig{
		Dir:     record["dir"],
		Command: record["cmd"],
		Feature: feature,
	}
	if cfg.Dir == "" && cfg.Command == "" {
		return CleanConfig{}, false, nil
	}

	return cfg, true, nil
}
