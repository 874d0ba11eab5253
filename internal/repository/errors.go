package repository

import "errors"

// ErrNotFound is returned when no record is stored under the requested key.
//
// Callers check for it with errors.Is instead of matching driver errors such
// as sql.ErrNoRows or redis.Nil, which keeps the store backend-agnostic.
var ErrNotFound = errors.New("repository: not found")
