package model

import "errors"

// Sentinel kinds for model errors.
var (
	ErrInsufficientData = errors.New("insufficient training data")
	ErrDegenerateLabels = errors.New("degenerate label distribution")
	ErrNotFitted        = errors.New("model not fitted")
	ErrInference        = errors.New("model inference failed")
	ErrBadArtifact      = errors.New("malformed model artifact")
	ErrLoadArtifact     = errors.New("load model artifact failed")
)
