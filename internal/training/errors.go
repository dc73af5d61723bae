package training

import "errors"

// Sentinel kinds for training pipeline errors.
var (
	ErrBadConfig    = errors.New("invalid training config")
	ErrHoldoutEmpty = errors.New("holdout split is empty")
)
