package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/invoiceflow/po-reconciler/constants"
)

// FieldDiff records the two raw values of a field that disagreed between
// a candidate and its matched reference item.
type FieldDiff struct {
	CandidateValue any `json:"candidate_value"`
	ReferenceValue any `json:"reference_value"`
}

// MatchPair is one row of a comparison report. At most one of Candidate
// and Reference is nil (an item unmatched on one side); never both.
type MatchPair struct {
	Candidate    *LineItem                `json:"candidate,omitempty"`
	Reference    *LineItem                `json:"reference,omitempty"`
	Type         constants.ComparisonType `json:"comparison_type"`
	Confidence   constants.Confidence     `json:"confidence"`
	MatchScore   float64                  `json:"match_score"`
	MatchReasons []string                 `json:"match_reasons,omitempty"`
	Notes        string                   `json:"notes,omitempty"`
	FieldDiffs   map[string]FieldDiff     `json:"field_differences,omitempty"`
}

// Matched reports whether the pair has items on both sides.
func (p *MatchPair) Matched() bool {
	return p.Candidate != nil && p.Reference != nil
}

// Summary is the roll-up of a reconciliation run.
type Summary struct {
	TotalLines         int     `json:"total_lines"`
	PerfectMatches     int     `json:"perfect_matches"`
	PartialMatches     int     `json:"partial_matches"`
	NoMatches          int     `json:"no_matches"`
	OverallScore       float64 `json:"overall_score"`
	AccuracyPercentage float64 `json:"accuracy_percentage"`
}

// ComparisonReport is the full result handed to the persistence layer.
// Plain data, no cycles, serializable as-is.
type ComparisonReport struct {
	ID          uuid.UUID             `json:"id"`
	PONumber    string                `json:"po_number"`
	Found       bool                  `json:"found"`
	Note        string                `json:"note,omitempty"`
	MatchMethod constants.MatchMethod `json:"match_method"`
	Pairs       []MatchPair           `json:"comparisons"`
	Summary     Summary               `json:"summary"`
	CreatedAt   time.Time             `json:"created_at"`
}
