package recon

import (
	"testing"

	"github.com/invoiceflow/po-reconciler/internal/entity"
)

func diffsFor(fields ...string) map[string]entity.FieldDiff {
	m := make(map[string]entity.FieldDiff, len(fields))
	for _, f := range fields {
		m[f] = entity.FieldDiff{}
	}
	return m
}

func TestScore(t *testing.T) {
	cases := []struct {
		name     string
		diffs    map[string]entity.FieldDiff
		expected float64
	}{
		{"all key fields match", diffsFor(), 1.0},
		{"one mismatch rounds up", diffsFor(FieldQuantity), 0.67},
		{"two mismatches round up", diffsFor(FieldQuantity, FieldUnitPrice), 0.34},
		{"all key fields differ", diffsFor(FieldQuantity, FieldUnitPrice, FieldDeliveryDate), 0.0},
	}
	for _, tc := range cases {
		if got := Score(tc.diffs); got != tc.expected {
			t.Fatalf("%s: Score = %v, want %v", tc.name, got, tc.expected)
		}
	}
}

func TestScore_ItemCodeDoesNotAffectScore(t *testing.T) {
	if got := Score(diffsFor(FieldItemCode)); got != 1.0 {
		t.Fatalf("item_code diff alone should keep score 1.0, got %v", got)
	}
	if got := Score(diffsFor(FieldItemCode, FieldQuantity)); got != 0.67 {
		t.Fatalf("got %v, want 0.67", got)
	}
}
