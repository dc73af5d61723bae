package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact format constants.
const (
	artifactVersion    = 1
	artifactPermission = 0600
)

// artifact is the on-disk JSON shape of a fitted model.
type artifact struct {
	Version int       `json:"version"`
	Weights []float64 `json:"weights"`
	Means   []float64 `json:"means"`
	Stds    []float64 `json:"stds"`
}

// Save writes the fitted model to path atomically (write temp, then rename).
func (m *Logistic) Save(path string) error {
	if len(m.weights) != basisSize {
		return ErrNotFitted
	}

	data, err := json.MarshalIndent(artifact{
		Version: artifactVersion,
		Weights: m.weights,
		Means:   m.means,
		Stds:    m.stds,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, artifactPermission); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("publish artifact: %w", err)
	}
	return nil
}

// LoadArtifact reads a fitted model from path. A missing or malformed
// artifact is a configuration fault; callers must not serve queries on it.
func LoadArtifact(path string) (*Logistic, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadArtifact, err)
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadArtifact, err)
	}
	if a.Version != artifactVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadArtifact, a.Version)
	}
	if len(a.Weights) != basisSize || len(a.Means) != basisSize || len(a.Stds) != basisSize {
		return nil, fmt.Errorf("%w: expected %d coefficients, got %d/%d/%d",
			ErrBadArtifact, basisSize, len(a.Weights), len(a.Means), len(a.Stds))
	}
	for _, s := range a.Stds {
		if s == 0 {
			return nil, fmt.Errorf("%w: zero deviation column", ErrBadArtifact)
		}
	}

	return &Logistic{weights: a.Weights, means: a.Means, stds: a.Stds}, nil
}
