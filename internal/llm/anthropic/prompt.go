package anthropic

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/invoiceflow/po-reconciler/internal/llm"
)

func orNA(s *string) string {
	if s == nil {
		return "N/A"
	}
	return *s
}

func orZero(d *decimal.Decimal) string {
	if d == nil {
		return "0.00"
	}
	return d.StringFixed(2)
}

func buildMatchingPrompt(req llm.MatchRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are a purchase order line item matching expert. Your task is to match line items extracted from a PDF document with corresponding line items from the business ledger for PO %s.

IMPORTANT: Items should match based on content similarity, NOT position. The same physical item may appear in different positions in the PDF vs the ledger.

## PDF LINE ITEMS:
`, req.PONumber)

	for i, item := range req.Candidates {
		fmt.Fprintf(&b, `
PDF Item %d:
  - Item Code: %s
  - Description: %s
  - Quantity: %s
  - Unit Price: $%s
  - Line Total: $%s
  - Unit of Measure: %s
`, i+1, orNA(item.ItemCode), orNA(item.Description), quantityOrNA(item.Quantity),
			orZero(item.UnitPrice), orZero(item.EffectiveLineTotal()), orNA(item.UnitOfMeasure))
	}

	b.WriteString("\n## LEDGER LINE ITEMS:\n")
	for i, item := range req.References {
		fmt.Fprintf(&b, `
Ledger Item %d:
  - Item Code: %s
  - Description: %s
  - Quantity: %s
  - Unit Price: $%s
  - Line Total: $%s
`, i+1, orNA(item.ItemCode), orNA(item.Description), quantityOrNA(item.Quantity),
			orZero(item.UnitPrice), orZero(item.EffectiveLineTotal()))
	}

	b.WriteString(`
## MATCHING RULES:

1. Primary criteria, in order of importance:
   - Item codes / part numbers (exact or similar)
   - Product descriptions (semantic similarity)
   - Quantities (exact or close)
   - Unit prices (exact or close)

2. Matching logic:
   - Look for exact item code matches first
   - Then similar descriptions (same product, different wording)
   - Use quantity and price as confirmation
   - Account for minor OCR errors in the PDF extraction
   - One PDF item matches at most one ledger item (1:1 mapping)

3. Quality thresholds:
   - PERFECT: item codes match exactly AND quantities/prices match
   - GOOD: descriptions clearly describe the same item AND quantities/prices match
   - FAIR: descriptions similar AND either quantity OR price matches
   - POOR: only partial similarity in description

## OUTPUT FORMAT:

Return a JSON object with this exact structure:

` + "```json" + `
{
  "matches": [
    {
      "candidate_index": 0,
      "reference_index": 1,
      "confidence": "PERFECT|GOOD|FAIR|POOR",
      "match_reasons": ["item_code_exact", "quantity_match", "price_match"],
      "notes": "Brief explanation of why these items match"
    }
  ],
  "unmatched_candidate_indices": [2],
  "unmatched_reference_indices": [0, 2],
  "analysis_summary": "Brief summary of matching results"
}
` + "```" + `

CRITICAL:
- Use 0-based indices (PDF Item 1 = candidate_index 0, Ledger Item 1 = reference_index 0)
- Each PDF item can match AT MOST one ledger item and vice versa
- Only include matches with confidence FAIR or better
- List unmatched items by their indices

Analyze the items and provide the matching results:`)

	return b.String()
}

func quantityOrNA(d *decimal.Decimal) string {
	if d == nil {
		return "N/A"
	}
	return d.String()
}

func buildExtractionPrompt(req llm.ExtractRequest) string {
	text := req.DocumentText
	if len(text) > 8000 {
		text = text[:8000]
	}
	return fmt.Sprintf(`You are a business document AI that extracts structured data from purchase orders, invoices, and similar documents.

Extract data into TWO sections:
1. HEADER (document-level information that appears once)
2. LINE_ITEMS (array of individual items/products)

Filename: %s

INPUT DOCUMENT TEXT:
%s

HEADER fields: po_number, vendor_name, customer_name, invoice_number, invoice_date, delivery_date (ONLY if it applies to the entire document), payment_terms, currency, tax_rate, tax_amount, subtotal, total_amount, contact_email, contact_phone, shipping_address, billing_address.

LINE_ITEMS fields per item: line_number, item_code, description, quantity, unit_of_measure, unit_price, line_total, line_delivery_date (ONLY if specifically mentioned for this line).

CRITICAL DELIVERY DATE LOGIC:
- A document-level delivery date goes in header.delivery_date; leave line_delivery_date null
- Line-specific dates go in each line_delivery_date
- If both exist, capture both; do NOT duplicate the header date onto lines unless truly line-specific

Return ONLY valid JSON:
{"header": {...}, "line_items": [...], "extraction_confidence": {"header_confidence": 0.95, "line_items_confidence": 0.90, "overall_confidence": 0.92}}

- Return null for missing values, NOT empty strings
- Dates must be YYYY-MM-DD
- Numbers must be numeric values, not strings
- Extract ALL line items`, req.FilenameHint, text)
}
