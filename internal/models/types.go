package models

import "math"

// SearchMode selects the request shape used for movie search
type SearchMode string

const (
	SearchModeLexical  SearchMode = "lexical"
	SearchModeSemantic SearchMode = "semantic"
)

// ParseSearchMode maps a query-string value to a SearchMode, defaulting to lexical
func ParseSearchMode(s string) SearchMode {
	if s == string(SearchModeSemantic) {
		return SearchModeSemantic
	}
	return SearchModeLexical
}

// Rating bounds: half-point steps between 0.5 and 5 stars
const (
	RatingMin  = 0.5
	RatingMax  = 5.0
	RatingStep = 0.5
)

// ValidRating reports whether v is a half-point rating between 0.5 and 5
func ValidRating(v float64) bool {
	if v < RatingMin || v > RatingMax {
		return false
	}
	scaled := v / RatingStep
	return scaled == math.Trunc(scaled)
}
