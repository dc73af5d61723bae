package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound     = errors.New("university not found")
	ErrEmptyCatalog = errors.New("catalog is empty")
	ErrMissingField = errors.New("required catalog field missing")
	ErrInvalidEntry = errors.New("invalid catalog entry")
	ErrLoadCatalog  = errors.New("load catalog failed")
	ErrInvalidLimit = errors.New("invalid catalog limit")
)
