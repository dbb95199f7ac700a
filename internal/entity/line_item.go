package entity

import "github.com/shopspring/decimal"

// LineItem is one line of a business document, on either side of a
// reconciliation. Candidate items come out of PDF extraction and carry no
// stable identity; reference items come from the ledger and always carry
// ReferenceID.
type LineItem struct {
	LineNumber            int              `json:"line_number,omitempty"`
	ItemCode              *string          `json:"item_code,omitempty"`
	Description           *string          `json:"description,omitempty"`
	Quantity              *decimal.Decimal `json:"quantity,omitempty"`
	UnitOfMeasure         *string          `json:"unit_of_measure,omitempty"`
	UnitPrice             *decimal.Decimal `json:"unit_price,omitempty"`
	LineTotal             *decimal.Decimal `json:"line_total,omitempty"`
	DeliveryDate          *string          `json:"delivery_date,omitempty"` // ISO calendar date
	DeliveryDateInherited bool             `json:"delivery_date_inherited"`

	// ReferenceID is the ledger's opaque row identity, present on
	// reference items only. Used for later updates.
	ReferenceID *int64 `json:"reference_id,omitempty"`
}

// EffectiveLineTotal returns the stored line total, or quantity*unit_price
// when the document did not print one.
func (li *LineItem) EffectiveLineTotal() *decimal.Decimal {
	if li.LineTotal != nil {
		return li.LineTotal
	}
	if li.Quantity != nil && li.UnitPrice != nil {
		t := li.Quantity.Mul(*li.UnitPrice)
		return &t
	}
	return nil
}
