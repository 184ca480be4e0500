package config

import (
	"errors"
	"fmt"
)

// ErrToolNotFound means the scrub-config binary could not be located or
// executed during the preflight check. Nothing has been persisted when this
// is returned.
var ErrToolNotFound = errors.New(
	"scrub-config not found. Please install scrub-config or point SCRUB_CONFIG at it")

// SaveError reports which configuration field failed to persist.
type SaveError struct {
	Err   error
	Field string
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save %s: %v", e.Field, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// ReadError reports a configuration query that could not be executed. A key
// that is merely absent is not a ReadError.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read configuration: %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
