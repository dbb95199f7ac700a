package recon

import (
	"math"

	"github.com/invoiceflow/po-reconciler/internal/entity"
)

// keyFields are the three fields that determine the match score. Item code
// and everything else are reported for diagnostics only.
var keyFields = []string{FieldQuantity, FieldUnitPrice, FieldDeliveryDate}

// Score computes the 0..1 match score for a pair from its field diffs.
// A key field matches when it is absent from the diff map. Partial results
// round UP to the next whole percentage point before dividing by 100, so
// 2 of 3 matching is 66.67% -> 67% -> 0.67. This asymmetric rounding feeds
// the accuracy metric and must not be changed casually.
func Score(diffs map[string]entity.FieldDiff) float64 {
	matched := 0
	for _, f := range keyFields {
		if _, differs := diffs[f]; !differs {
			matched++
		}
	}

	switch matched {
	case len(keyFields):
		return 1.0
	case 0:
		return 0.0
	default:
		pct := math.Ceil(float64(matched) / float64(len(keyFields)) * 100)
		return pct / 100
	}
}
