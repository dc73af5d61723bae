package profile

import "errors"

// Sentinel kinds for profile errors.
var (
	ErrInvalidProfile = errors.New("invalid profile")
)
