package timestamps

// Candidate is a parsed block together with its validation outcome. Only
// candidates with Scored set are eligible for selection.
type Candidate struct {
	Block   Block
	Markers []Marker
	Style   Style
	Score   float64
	Scored  bool
}
