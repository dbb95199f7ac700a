package llm

import (
	"encoding/json"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"bare object", `{"matches": []}`},
		{"json fence", "```json\n{\"matches\": []}\n```"},
		{"plain fence", "```\n{\"matches\": []}\n```"},
		{"surrounding prose", "Here is the result:\n{\"matches\": []}\nLet me know."},
		{"braces inside strings", `{"notes": "uses {curly} text", "matches": []}`},
		{"nested objects", `{"a": {"b": {"c": 1}}, "matches": []}`},
	}
	for _, tc := range cases {
		got, err := ExtractJSONObject(tc.in)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !json.Valid(got) {
			t.Fatalf("%s: extracted invalid JSON %s", tc.name, got)
		}
	}
}

func TestExtractJSONObject_Failures(t *testing.T) {
	for _, in := range []string{"", "no json here", `{"unbalanced": `} {
		if got, err := ExtractJSONObject(in); err == nil {
			t.Fatalf("ExtractJSONObject(%q) = %s, want error", in, got)
		}
	}
}

func TestValidateJSONAgainstSchema_MatchProposal(t *testing.T) {
	schema := BuildMatchProposalSchema()

	valid := []byte(`{
		"matches": [
			{"candidate_index": 0, "reference_index": 1, "confidence": "PERFECT",
			 "match_reasons": ["exact item code"], "notes": ""}
		],
		"unmatched_candidate_indices": [],
		"unmatched_reference_indices": [2],
		"analysis_summary": "one pair"
	}`)
	if err := ValidateJSONAgainstSchema(schema, valid); err != nil {
		t.Fatalf("valid proposal rejected: %v", err)
	}

	missingIndex := []byte(`{"matches": [{"confidence": "PERFECT"}]}`)
	if err := ValidateJSONAgainstSchema(schema, missingIndex); err == nil {
		t.Fatal("proposal with missing indices should fail validation")
	}

	badConfidence := []byte(`{"matches": [{"candidate_index": 0, "reference_index": 0, "confidence": "AMAZING"}]}`)
	if err := ValidateJSONAgainstSchema(schema, badConfidence); err == nil {
		t.Fatal("unknown confidence label should fail validation")
	}
}

func TestProposedMatchRoundTrip(t *testing.T) {
	raw := []byte(`{"matches":[{"candidate_index":1,"reference_index":0,"confidence":"GOOD","match_reasons":["similar description"]}],"analysis_summary":"ok"}`)
	var p MatchProposal
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(p.Matches) != 1 || p.Matches[0].CandidateIndex != 1 || p.Matches[0].ReferenceIndex != 0 {
		t.Fatalf("decoded %+v", p)
	}
}
