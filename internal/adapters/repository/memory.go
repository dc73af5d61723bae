package repository

import (
	"context"
	"fmt"
	"sort"
)

// InMemoryStore implements Store over a validated, rank-ordered slice.
type InMemoryStore struct {
	entries []Entry
	byName  map[string]int
}

// NewInMemoryStore validates the entries and builds an immutable store.
// Required fields are university name, country, rank and difficulty; the
// constructor fails fast on the first violation.
func NewInMemoryStore(entries []Entry) (*InMemoryStore, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Rank != sorted[j].Rank {
			return sorted[i].Rank < sorted[j].Rank
		}
		return sorted[i].University < sorted[j].University
	})

	byName := make(map[string]int, len(sorted))
	for i, e := range sorted {
		switch {
		case e.University == "":
			return nil, fmt.Errorf("%w: university name (entry %d)", ErrMissingField, i)
		case e.Country == "":
			return nil, fmt.Errorf("%w: country for %q", ErrMissingField, e.University)
		case e.Rank <= 0:
			return nil, fmt.Errorf("%w: %q has non-positive rank %d", ErrInvalidEntry, e.University, e.Rank)
		case e.Difficulty <= 0:
			return nil, fmt.Errorf("%w: %q has non-positive difficulty %.2f", ErrInvalidEntry, e.University, e.Difficulty)
		}
		if _, dup := byName[e.University]; dup {
			return nil, fmt.Errorf("%w: duplicate university %q", ErrInvalidEntry, e.University)
		}
		byName[e.University] = i
	}

	return &InMemoryStore{entries: sorted, byName: byName}, nil
}

// All returns a copy of every entry ordered by rank ascending.
func (s *InMemoryStore) All(_ context.Context) []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry for a university name.
func (s *InMemoryStore) Get(_ context.Context, university string) (Entry, error) {
	i, ok := s.byName[university]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, university)
	}
	return s.entries[i], nil
}

// Count returns the number of universities in the catalog.
func (s *InMemoryStore) Count(_ context.Context) int {
	return len(s.entries)
}
