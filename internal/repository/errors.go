package repository

import "errors"

// ErrNotFound is returned when a query for a single entity finds no rows, or
// a delete matched nothing. Services translate it into app_errors.ErrNotFound
// so business logic never sees sql.ErrNoRows.
var ErrNotFound = errors.New("repository: not found")
