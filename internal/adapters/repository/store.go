// Package repository defines the read-only university catalog store and errors.
package repository

import "context"

// Entry represents one university in the catalog. Difficulty is a fixed
// per-institution calibration constant set when the catalog is curated; it is
// consumed during training-set synthesis and passed through to inference as a
// feature, never recomputed at runtime.
type Entry struct {
	University    string
	Country       string
	Rank          int
	Difficulty    float64
	ResearchScore *int
	Tuition       string
}

// Store provides read access to the catalog. Implementations are immutable
// after construction and safe for concurrent readers.
type Store interface {
	// All returns every catalog entry ordered by rank ascending.
	// The returned slice is a copy owned by the caller.
	All(ctx context.Context) []Entry

	// Get returns the entry for a university name.
	// Returns ErrNotFound if the university is unknown.
	Get(ctx context.Context, university string) (Entry, error)

	// Count returns the number of universities in the catalog.
	Count(ctx context.Context) int
}
