package entity

import "github.com/shopspring/decimal"

// Header holds document-level fields extracted from a purchase order or
// invoice. Only DeliveryDate participates in reconciliation (it seeds the
// line-item date inheritance); the rest is carried for storage and display.
type Header struct {
	PONumber        *string          `json:"po_number,omitempty"`
	VendorName      *string          `json:"vendor_name,omitempty"`
	CustomerName    *string          `json:"customer_name,omitempty"`
	InvoiceNumber   *string          `json:"invoice_number,omitempty"`
	InvoiceDate     *string          `json:"invoice_date,omitempty"`
	DeliveryDate    *string          `json:"delivery_date,omitempty"` // ISO calendar date
	PaymentTerms    *string          `json:"payment_terms,omitempty"`
	Currency        *string          `json:"currency,omitempty"`
	TaxRate         *decimal.Decimal `json:"tax_rate,omitempty"`
	TaxAmount       *decimal.Decimal `json:"tax_amount,omitempty"`
	Subtotal        *decimal.Decimal `json:"subtotal,omitempty"`
	TotalAmount     *decimal.Decimal `json:"total_amount,omitempty"`
	ContactEmail    *string          `json:"contact_email,omitempty"`
	ContactPhone    *string          `json:"contact_phone,omitempty"`
	ShippingAddress *string          `json:"shipping_address,omitempty"`
	BillingAddress  *string          `json:"billing_address,omitempty"`
}

// PurchaseOrder is the reference side of a reconciliation as loaded from
// the ledger: the order header plus its detail lines.
type PurchaseOrder struct {
	Header    Header     `json:"header"`
	LineItems []LineItem `json:"line_items"`
}
