package recon

import (
	"github.com/shopspring/decimal"

	"github.com/invoiceflow/po-reconciler/internal/entity"
	"github.com/invoiceflow/po-reconciler/internal/extract"
)

// Field names used as keys in MatchPair.FieldDiffs.
const (
	FieldQuantity     = "quantity"
	FieldUnitPrice    = "unit_price"
	FieldDeliveryDate = "delivery_date"
	FieldItemCode     = "item_code"
)

// Extraction reads quantities off low-quality scans, so equality carries a
// small absolute tolerance; prices get cent-level tolerance.
var (
	quantityTolerance  = decimal.New(1, -3) // 0.001
	unitPriceTolerance = decimal.New(1, -2) // 0.01
)

// QuantityEqual reports agreement under the quantity tolerance. Two absent
// quantities agree; absent vs present does not.
func QuantityEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Sub(*b).Abs().LessThanOrEqual(quantityTolerance)
}

// UnitPriceEqual reports agreement under the price tolerance.
func UnitPriceEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Sub(*b).Abs().LessThanOrEqual(unitPriceTolerance)
}

// DeliveryDateEqual compares two dates after normalizing each to ISO form.
// A date that fails to normalize is compared as its raw text. Two absent
// dates agree; absent vs present does not.
func DeliveryDateEqual(a, b *string) bool {
	return normalizedDate(a) == normalizedDate(b)
}

func normalizedDate(s *string) string {
	if s == nil {
		return ""
	}
	if iso, ok := extract.NormalizeDate(*s); ok {
		return iso
	}
	return *s
}

// ItemCodesConflict reports a definite item-code disagreement. Codes are
// only compared when both sides supply one; absent-vs-present and
// both-absent are not mismatches.
func ItemCodesConflict(a, b *string) bool {
	if a == nil || b == nil {
		return false
	}
	return *a != *b
}

// CompareLineItems runs every field comparison for a matched pair and
// returns the fields that disagreed, keyed by field name, with both raw
// values for reporting. An empty map means full agreement.
func CompareLineItems(candidate, reference *entity.LineItem) map[string]entity.FieldDiff {
	diffs := make(map[string]entity.FieldDiff)

	if !QuantityEqual(candidate.Quantity, reference.Quantity) {
		diffs[FieldQuantity] = entity.FieldDiff{
			CandidateValue: decimalValue(candidate.Quantity),
			ReferenceValue: decimalValue(reference.Quantity),
		}
	}
	if !UnitPriceEqual(candidate.UnitPrice, reference.UnitPrice) {
		diffs[FieldUnitPrice] = entity.FieldDiff{
			CandidateValue: decimalValue(candidate.UnitPrice),
			ReferenceValue: decimalValue(reference.UnitPrice),
		}
	}
	if !DeliveryDateEqual(candidate.DeliveryDate, reference.DeliveryDate) {
		diffs[FieldDeliveryDate] = entity.FieldDiff{
			CandidateValue: stringValue(candidate.DeliveryDate),
			ReferenceValue: stringValue(reference.DeliveryDate),
		}
	}
	if ItemCodesConflict(candidate.ItemCode, reference.ItemCode) {
		diffs[FieldItemCode] = entity.FieldDiff{
			CandidateValue: stringValue(candidate.ItemCode),
			ReferenceValue: stringValue(reference.ItemCode),
		}
	}
	return diffs
}

func decimalValue(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func stringValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
