package service

import "errors"

// ErrInvalidInput marks caller mistakes (missing user, empty title, ...).
var ErrInvalidInput = errors.New("invalid input")
