package store

import "errors"

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("record already exists")

// ErrUnknownTable is returned for inserts against a table outside the whitelist.
var ErrUnknownTable = errors.New("unknown table")
