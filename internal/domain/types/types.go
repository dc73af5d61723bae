// Package types contains common read shapes used across the application
package types

// University mirrors a catalog row as exposed by read queries.
type University struct {
	University    string `json:"university"`
	Country       string `json:"country"`
	Rank          int    `json:"rank"`
	ResearchScore *int   `json:"research_score,omitempty"`
	Tuition       string `json:"tuition,omitempty"`
}

// Candidate is a university scored against one student profile.
// Chance is always clamped to [0, 99] and rounded to one decimal.
type Candidate struct {
	University
	Chance float64 `json:"chance"`
}

// Rejection reports the eligibility floor that terminated a query.
type Rejection struct {
	Rule      string  `json:"rule"`
	Threshold float64 `json:"threshold"`
	Value     float64 `json:"value"`
}

// Shortlist is the full outcome of one admission query. A non-nil
// Rejection means the query stopped before scoring and all bands are empty.
type Shortlist struct {
	QueryID   string      `json:"query_id"`
	Rejection *Rejection  `json:"rejection,omitempty"`
	Dream     []Candidate `json:"dream"`
	Target    []Candidate `json:"target"`
	Safety    []Candidate `json:"safety"`
}
