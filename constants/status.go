package constants

// MatchMethod records which strategy produced a reconciliation's pairs.
type MatchMethod string

const (
	MatchMethodContent  MatchMethod = "content_based"  // oracle-proposed pairs
	MatchMethodPosition MatchMethod = "position_based" // deterministic index walk
	MatchMethodNone     MatchMethod = "no_items"       // one or both sides empty
)

// ComparisonType classifies a single pair within a report.
type ComparisonType string

const (
	ComparisonMatched       ComparisonType = "matched"
	ComparisonCandidateOnly ComparisonType = "candidate_only"
	ComparisonReferenceOnly ComparisonType = "reference_only"
)
