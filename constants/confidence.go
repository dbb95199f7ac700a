package constants

// Confidence is the quality label the matcher assigns to a candidate/reference pair.
type Confidence string

// Stable values (store these exact strings in DB and reports).
const (
	ConfidencePerfect Confidence = "PERFECT"  // item codes match exactly AND quantities/prices match
	ConfidenceGood    Confidence = "GOOD"     // same item by description AND quantities/prices match
	ConfidenceFair    Confidence = "FAIR"     // similar description AND quantity or price matches
	ConfidencePoor    Confidence = "POOR"     // partial description similarity only
	ConfidenceNoMatch Confidence = "NO_MATCH" // no counterpart on the other side
)

var confidenceRank = map[Confidence]int{
	ConfidenceNoMatch: 0,
	ConfidencePoor:    1,
	ConfidenceFair:    2,
	ConfidenceGood:    3,
	ConfidencePerfect: 4,
}

// ParseConfidence maps a free-form label to a known Confidence.
// Unknown labels come back as NO_MATCH with ok=false.
func ParseConfidence(s string) (Confidence, bool) {
	c := Confidence(s)
	if _, ok := confidenceRank[c]; ok {
		return c, true
	}
	return ConfidenceNoMatch, false
}

// AtLeast reports whether c is rated at or above min.
func (c Confidence) AtLeast(min Confidence) bool {
	return confidenceRank[c] >= confidenceRank[min]
}
