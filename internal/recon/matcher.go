package recon

import (
	"context"
	"log/slog"

	"github.com/invoiceflow/po-reconciler/constants"
	"github.com/invoiceflow/po-reconciler/internal/entity"
	"github.com/invoiceflow/po-reconciler/internal/llm"
)

// ProposedPair is one accepted candidate/reference pairing before field
// comparison and scoring.
type ProposedPair struct {
	Candidate  entity.LineItem
	Reference  entity.LineItem
	Confidence constants.Confidence
	Reasons    []string
	Notes      string
}

// MatchOutcome is the matcher's answer: a 1:1 partial assignment plus the
// leftovers on each side. len(Matches)+len(UnmatchedCandidates) always
// equals the candidate list length, and likewise on the reference side.
type MatchOutcome struct {
	Matches             []ProposedPair
	UnmatchedCandidates []entity.LineItem
	UnmatchedReferences []entity.LineItem
	Method              constants.MatchMethod
	AnalysisSummary     string
}

// Matcher pairs candidate line items with reference line items. The
// primary strategy asks the content-matching oracle; any oracle failure
// falls back to deterministic position matching and is never surfaced.
type Matcher struct {
	logger *slog.Logger
	oracle llm.MatchOracle
}

// NewMatcher builds a Matcher. A nil oracle is allowed and means position
// matching only.
func NewMatcher(oracle llm.MatchOracle, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{logger: logger, oracle: oracle}
}

// Match pairs the two lists. It never returns an error: every failure mode
// of the content strategy degrades to position matching.
func (m *Matcher) Match(ctx context.Context, poNumber string, candidates, references []entity.LineItem) MatchOutcome {
	if len(candidates) == 0 || len(references) == 0 {
		return MatchOutcome{
			UnmatchedCandidates: append([]entity.LineItem(nil), candidates...),
			UnmatchedReferences: append([]entity.LineItem(nil), references...),
			Method:              constants.MatchMethodNone,
		}
	}

	if m.oracle != nil {
		proposal, err := m.oracle.ProposeMatches(ctx, llm.MatchRequest{
			PONumber:   poNumber,
			Candidates: candidates,
			References: references,
		})
		if err == nil {
			return m.applyProposal(proposal, candidates, references)
		}
		m.logger.Warn("recon.match.fallback",
			"po_number", poNumber,
			"reason", err.Error(),
		)
	} else {
		m.logger.Info("recon.match.no_oracle", "po_number", poNumber)
	}

	return positionMatch(candidates, references)
}

// applyProposal turns an oracle proposal into an outcome, enforcing the
// invariants the oracle is asked for but not trusted with: indices in
// range, 1:1 assignment (first seen wins on duplicates), and a minimum
// confidence of FAIR.
func (m *Matcher) applyProposal(proposal *llm.MatchProposal, candidates, references []entity.LineItem) MatchOutcome {
	out := MatchOutcome{
		Method:          constants.MatchMethodContent,
		AnalysisSummary: proposal.AnalysisSummary,
	}

	usedCandidates := make(map[int]bool, len(candidates))
	usedReferences := make(map[int]bool, len(references))

	for _, pm := range proposal.Matches {
		if pm.CandidateIndex < 0 || pm.CandidateIndex >= len(candidates) ||
			pm.ReferenceIndex < 0 || pm.ReferenceIndex >= len(references) {
			m.logger.Warn("recon.match.invalid_indices",
				"candidate_index", pm.CandidateIndex,
				"reference_index", pm.ReferenceIndex,
			)
			continue
		}
		if usedCandidates[pm.CandidateIndex] || usedReferences[pm.ReferenceIndex] {
			m.logger.Warn("recon.match.duplicate_pair",
				"candidate_index", pm.CandidateIndex,
				"reference_index", pm.ReferenceIndex,
			)
			continue
		}
		conf, known := constants.ParseConfidence(pm.Confidence)
		if !known {
			m.logger.Warn("recon.match.unknown_confidence", "label", pm.Confidence)
			continue
		}
		if !conf.AtLeast(constants.ConfidenceFair) {
			continue
		}

		out.Matches = append(out.Matches, ProposedPair{
			Candidate:  candidates[pm.CandidateIndex],
			Reference:  references[pm.ReferenceIndex],
			Confidence: conf,
			Reasons:    pm.MatchReasons,
			Notes:      pm.Notes,
		})
		usedCandidates[pm.CandidateIndex] = true
		usedReferences[pm.ReferenceIndex] = true
	}

	for i, c := range candidates {
		if !usedCandidates[i] {
			out.UnmatchedCandidates = append(out.UnmatchedCandidates, c)
		}
	}
	for i, r := range references {
		if !usedReferences[i] {
			out.UnmatchedReferences = append(out.UnmatchedReferences, r)
		}
	}
	return out
}

// positionMatch walks both lists in parallel by index. Pairs are rated
// FAIR with a position_based reason; the longer list's tail is unmatched.
// This strategy cannot fail.
func positionMatch(candidates, references []entity.LineItem) MatchOutcome {
	out := MatchOutcome{Method: constants.MatchMethodPosition}

	n := max(len(candidates), len(references))
	for i := 0; i < n; i++ {
		switch {
		case i < len(candidates) && i < len(references):
			out.Matches = append(out.Matches, ProposedPair{
				Candidate:  candidates[i],
				Reference:  references[i],
				Confidence: constants.ConfidenceFair,
				Reasons:    []string{"position_based"},
				Notes:      "Fallback position-based matching",
			})
		case i < len(candidates):
			out.UnmatchedCandidates = append(out.UnmatchedCandidates, candidates[i])
		default:
			out.UnmatchedReferences = append(out.UnmatchedReferences, references[i])
		}
	}
	return out
}
