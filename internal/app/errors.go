package app

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoCatalog  = errors.New("no catalog configured")
	ErrNoModel    = errors.New("no probability model configured")
	ErrNotStarted = errors.New("service not started")
)
