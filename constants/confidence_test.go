package constants

import "testing"

func TestParseConfidence(t *testing.T) {
	for _, label := range []string{"PERFECT", "GOOD", "FAIR", "POOR", "NO_MATCH"} {
		c, ok := ParseConfidence(label)
		if !ok || string(c) != label {
			t.Fatalf("ParseConfidence(%q) = (%s, %v)", label, c, ok)
		}
	}
	if c, ok := ParseConfidence("perfect"); ok || c != ConfidenceNoMatch {
		t.Fatalf("labels are case-sensitive, got (%s, %v)", c, ok)
	}
	if _, ok := ParseConfidence("AMAZING"); ok {
		t.Fatal("unknown label should not parse")
	}
}

func TestConfidenceAtLeast(t *testing.T) {
	ordered := []Confidence{ConfidenceNoMatch, ConfidencePoor, ConfidenceFair, ConfidenceGood, ConfidencePerfect}
	for i, lo := range ordered {
		for j, hi := range ordered {
			want := i >= j
			if got := lo.AtLeast(hi); got != want {
				t.Fatalf("%s.AtLeast(%s) = %v, want %v", lo, hi, got, want)
			}
		}
	}
}
