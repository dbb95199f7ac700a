package recon

import (
	"math"
	"testing"

	"github.com/invoiceflow/po-reconciler/constants"
	"github.com/invoiceflow/po-reconciler/internal/entity"
)

func matchedPair(score float64) entity.MatchPair {
	return entity.MatchPair{
		Candidate:  &entity.LineItem{},
		Reference:  &entity.LineItem{},
		Type:       constants.ComparisonMatched,
		MatchScore: score,
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s != (entity.Summary{}) {
		t.Fatalf("empty input should yield zero summary, got %+v", s)
	}
}

func TestSummarize_Mixed(t *testing.T) {
	pairs := []entity.MatchPair{
		matchedPair(1.0),
		matchedPair(0.67),
		matchedPair(0.0), // matched but nothing agreed: counts as no match
		{Candidate: &entity.LineItem{}, Type: constants.ComparisonCandidateOnly},
		{Reference: &entity.LineItem{}, Type: constants.ComparisonReferenceOnly},
	}
	s := Summarize(pairs)

	if s.TotalLines != 5 {
		t.Fatalf("total = %d, want 5", s.TotalLines)
	}
	if s.PerfectMatches != 1 || s.PartialMatches != 1 || s.NoMatches != 3 {
		t.Fatalf("counts = perfect %d, partial %d, none %d", s.PerfectMatches, s.PartialMatches, s.NoMatches)
	}
	if want := (1.0 + 0.67) / 5; math.Abs(s.OverallScore-want) > 1e-9 {
		t.Fatalf("overall = %v, want %v", s.OverallScore, want)
	}
	if want := 1.0 / 5 * 100; math.Abs(s.AccuracyPercentage-want) > 1e-9 {
		t.Fatalf("accuracy = %v, want %v", s.AccuracyPercentage, want)
	}
}

func TestSummarize_AllPerfect(t *testing.T) {
	s := Summarize([]entity.MatchPair{matchedPair(1.0), matchedPair(1.0), matchedPair(1.0)})
	if s.OverallScore != 1.0 || s.AccuracyPercentage != 100 {
		t.Fatalf("overall = %v, accuracy = %v", s.OverallScore, s.AccuracyPercentage)
	}
}
