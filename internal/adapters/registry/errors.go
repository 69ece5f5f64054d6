package registry

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrNotFound      = errors.New("foal not found")
	ErrDuplicateFoal = errors.New("foal already recorded")
)
