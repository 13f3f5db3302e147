package repository

import "errors"

// ErrNotFound is returned when a requested entity does not exist. Callers
// check it with errors.Is; a stale-reference mutation (acting on an id
// deleted since the last fetch) surfaces as this error and the caller is
// expected to re-fetch rather than retry.
var ErrNotFound = errors.New("not found")
