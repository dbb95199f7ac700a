package llm

// BuildMatchProposalSchema returns the JSON-Schema (draft 2020-12 subset)
// a match proposal must satisfy before the matcher will look at it.
func BuildMatchProposalSchema() map[string]any {
	indexProp := map[string]any{"type": "integer", "minimum": 0}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"matches": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"candidate_index": indexProp,
						"reference_index": indexProp,
						"confidence": map[string]any{
							"type": "string",
							"enum": []string{"PERFECT", "GOOD", "FAIR", "POOR"},
						},
						"match_reasons": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"notes": map[string]any{"type": "string"},
					},
					"required": []string{"candidate_index", "reference_index", "confidence"},
				},
			},
			"unmatched_candidate_indices": map[string]any{"type": "array", "items": indexProp},
			"unmatched_reference_indices": map[string]any{"type": "array", "items": indexProp},
			"analysis_summary":            map[string]any{"type": "string"},
		},
		"required": []string{"matches"},
	}
}

// BuildHeaderDetailSchema returns the schema for header/detail extraction
// output. Field values stay loose (string/number/null) because cleaning
// happens downstream; the structure is what we enforce here.
func BuildHeaderDetailSchema() map[string]any {
	loose := map[string]any{
		"type": []string{"string", "number", "null"},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"header": map[string]any{
				"type":                 "object",
				"additionalProperties": loose,
			},
			"line_items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": loose,
				},
			},
			"extraction_confidence": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"header_confidence":     map[string]any{"type": "number"},
					"line_items_confidence": map[string]any{"type": "number"},
					"overall_confidence":    map[string]any{"type": "number"},
				},
			},
		},
		"required": []string{"header", "line_items"},
	}
}
