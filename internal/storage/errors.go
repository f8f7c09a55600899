package storage

import "errors"

// ErrNoRun is returned when a run directory or its metadata is missing.
var ErrNoRun = errors.New("storage: no such run")
