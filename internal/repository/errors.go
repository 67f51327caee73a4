package repository

import "errors"

// ErrNotFound is returned when a row addressed by ID (and owner) does not exist.
var ErrNotFound = errors.New("not found")
