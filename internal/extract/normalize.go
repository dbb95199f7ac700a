package extract

import (
	"log/slog"

	"github.com/invoiceflow/po-reconciler/internal/entity"
)

// CleanHeader builds a typed Header from the extractor's raw key/value map.
// Every field degrades independently: one bad value never drops the record.
func CleanHeader(raw map[string]any, logger *slog.Logger) entity.Header {
	if logger == nil {
		logger = slog.Default()
	}
	h := entity.Header{
		PONumber:        CleanText(raw["po_number"], 100),
		VendorName:      CleanText(raw["vendor_name"], 255),
		CustomerName:    CleanText(raw["customer_name"], 255),
		InvoiceNumber:   CleanText(raw["invoice_number"], 100),
		PaymentTerms:    CleanText(raw["payment_terms"], 100),
		Currency:        CleanText(raw["currency"], 10),
		ContactEmail:    CleanText(raw["contact_email"], 255),
		ContactPhone:    CleanText(raw["contact_phone"], 50),
		ShippingAddress: CleanText(raw["shipping_address"], 0),
		BillingAddress:  CleanText(raw["billing_address"], 0),
	}

	h.InvoiceDate, _ = CleanDate(raw["invoice_date"])
	if d, st := CleanDate(raw["delivery_date"]); st == ParseOK {
		h.DeliveryDate = d
	} else if st == ParseInvalid {
		logger.Warn("extract.clean.bad_header_date", "field", "delivery_date", "value", raw["delivery_date"])
	}

	h.TaxRate, _ = CleanNumeric(raw["tax_rate"])
	h.TaxAmount, _ = CleanNumeric(raw["tax_amount"])
	h.Subtotal, _ = CleanNumeric(raw["subtotal"])
	h.TotalAmount, _ = CleanNumeric(raw["total_amount"])
	return h
}

// CleanLineItem builds a typed LineItem from one raw extracted line.
func CleanLineItem(raw map[string]any, logger *slog.Logger) entity.LineItem {
	if logger == nil {
		logger = slog.Default()
	}
	li := entity.LineItem{
		ItemCode:      CleanText(raw["item_code"], 100),
		Description:   CleanText(raw["description"], 500),
		UnitOfMeasure: CleanText(raw["unit_of_measure"], 20),
	}

	li.LineNumber, _ = CleanInt(raw["line_number"])

	var st ParseStatus
	if li.Quantity, st = CleanNumeric(raw["quantity"]); st == ParseInvalid {
		logger.Warn("extract.clean.bad_numeric", "field", "quantity", "value", raw["quantity"])
	}
	if li.UnitPrice, st = CleanNumeric(raw["unit_price"]); st == ParseInvalid {
		logger.Warn("extract.clean.bad_numeric", "field", "unit_price", "value", raw["unit_price"])
	}
	li.LineTotal, _ = CleanNumeric(raw["line_total"])

	// Extractors label a line's own date either way depending on the prompt
	// generation; accept both keys.
	dateRaw, ok := raw["line_delivery_date"]
	if !ok {
		dateRaw = raw["delivery_date"]
	}
	if d, st := CleanDate(dateRaw); st == ParseOK {
		li.DeliveryDate = d
	} else if st == ParseInvalid {
		logger.Warn("extract.clean.bad_line_date", "value", dateRaw)
	}
	return li
}

// CleanLineItems cleans a whole extracted line-item list, preserving order.
func CleanLineItems(raws []map[string]any, logger *slog.Logger) []entity.LineItem {
	items := make([]entity.LineItem, 0, len(raws))
	for _, raw := range raws {
		items = append(items, CleanLineItem(raw, logger))
	}
	return items
}
