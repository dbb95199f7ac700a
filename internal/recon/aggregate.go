package recon

import "github.com/invoiceflow/po-reconciler/internal/entity"

// Summarize rolls a pair list (matched and unmatched) up into portfolio
// statistics. Each unmatched item counts as one line. Matched pairs
// contribute their score to the overall sum; unmatched lines contribute 0
// but still widen the denominator. Zero pairs yields an all-zero summary.
func Summarize(pairs []entity.MatchPair) entity.Summary {
	var s entity.Summary
	s.TotalLines = len(pairs)
	if s.TotalLines == 0 {
		return s
	}

	var totalScore float64
	for i := range pairs {
		p := &pairs[i]
		if !p.Matched() {
			s.NoMatches++
			continue
		}
		totalScore += p.MatchScore
		switch {
		case p.MatchScore >= 1.0:
			s.PerfectMatches++
		case p.MatchScore > 0.0:
			s.PartialMatches++
		default:
			s.NoMatches++
		}
	}

	s.OverallScore = totalScore / float64(s.TotalLines)
	s.AccuracyPercentage = float64(s.PerfectMatches) / float64(s.TotalLines) * 100
	return s
}
