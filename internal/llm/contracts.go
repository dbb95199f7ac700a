package llm

import (
	"context"

	"github.com/invoiceflow/po-reconciler/internal/entity"
)

// MatchRequest carries the two item lists handed to the content-matching
// oracle. Items are addressed by list position only; the oracle never sees
// ledger identities beyond what is needed for matching.
type MatchRequest struct {
	PONumber   string
	Candidates []entity.LineItem
	References []entity.LineItem
}

// ProposedMatch is one index-to-index pairing from the oracle, 0-based on
// both sides.
type ProposedMatch struct {
	CandidateIndex int      `json:"candidate_index"`
	ReferenceIndex int      `json:"reference_index"`
	Confidence     string   `json:"confidence"`
	MatchReasons   []string `json:"match_reasons,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// MatchProposal is the oracle's full answer. The matcher re-validates all
// of it; nothing here is trusted as-is.
type MatchProposal struct {
	Matches                   []ProposedMatch `json:"matches"`
	UnmatchedCandidateIndices []int           `json:"unmatched_candidate_indices,omitempty"`
	UnmatchedReferenceIndices []int           `json:"unmatched_reference_indices,omitempty"`
	AnalysisSummary           string          `json:"analysis_summary,omitempty"`
}

// MatchOracle is the interface the matcher depends on.
type MatchOracle interface {
	ProposeMatches(ctx context.Context, req MatchRequest) (*MatchProposal, error)
}

// ExtractRequest carries raw document text into header/detail extraction.
type ExtractRequest struct {
	DocumentText string
	FilenameHint string
}

// ExtractResult is the extractor's raw output before field cleaning:
// generic maps, exactly as decoded from the model's JSON.
type ExtractResult struct {
	Header     map[string]any              `json:"header"`
	LineItems  []map[string]any            `json:"line_items"`
	Confidence entity.ExtractionConfidence `json:"extraction_confidence"`
}

// HeaderDetailExtractor is the interface the extraction flow depends on.
type HeaderDetailExtractor interface {
	ExtractHeaderDetail(ctx context.Context, req ExtractRequest) (*ExtractResult, []byte /*rawJSON*/, error)
}
