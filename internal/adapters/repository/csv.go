package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names recognized in catalog CSV headers (case-insensitive).
const (
	colUniversity = "university"
	colCountry    = "country"
	colRank       = "rank"
	colDifficulty = "difficulty"
	colResearch   = "research_score"
	colTuition    = "tuition_type"
)

// LoadCSV reads a catalog CSV file and builds a validated store.
// The first row must be a header naming at least the required columns
// (university, country, rank, difficulty); research_score and tuition_type
// are optional.
func LoadCSV(ctx context.Context, path string) (*InMemoryStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadCatalog, err)
	}
	defer f.Close()

	store, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadCatalog, path, err)
	}
	return store, nil
}

// ReadCSV parses catalog rows from r and builds a validated store.
func ReadCSV(_ context.Context, r io.Reader) (*InMemoryStore, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colUniversity, colCountry, colRank, colDifficulty} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: column %q", ErrMissingField, required)
		}
	}

	var entries []Entry
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		entry, err := parseRow(record, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		entries = append(entries, entry)
	}

	return NewInMemoryStore(entries)
}

func parseRow(record []string, cols map[string]int) (Entry, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rankStr := field(colRank)
	if rankStr == "" {
		return Entry{}, fmt.Errorf("%w: rank", ErrMissingField)
	}
	rank, err := strconv.Atoi(rankStr)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: rank %q", ErrInvalidEntry, rankStr)
	}

	diffStr := field(colDifficulty)
	if diffStr == "" {
		return Entry{}, fmt.Errorf("%w: difficulty", ErrMissingField)
	}
	difficulty, err := strconv.ParseFloat(diffStr, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: difficulty %q", ErrInvalidEntry, diffStr)
	}

	entry := Entry{
		University: field(colUniversity),
		Country:    field(colCountry),
		Rank:       rank,
		Difficulty: difficulty,
		Tuition:    field(colTuition),
	}

	if s := field(colResearch); s != "" {
		score, err := strconv.Atoi(s)
		if err != nil {
			return Entry{}, fmt.Errorf("%w: research_score %q", ErrInvalidEntry, s)
		}
		entry.ResearchScore = &score
	}

	return entry, nil
}
