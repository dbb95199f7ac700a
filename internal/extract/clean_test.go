package extract

import (
	"testing"
)

func TestCleanNumeric_StripsCurrencyMarks(t *testing.T) {
	cases := []struct {
		in       any
		expected string
	}{
		{"$1,234.50", "1234.5"},
		{"€99.99", "99.99"},
		{"£10", "10"},
		{"  399.74 ", "399.74"},
		{float64(6), "6"},
		{42, "42"},
	}
	for _, tc := range cases {
		d, st := CleanNumeric(tc.in)
		if st != ParseOK {
			t.Fatalf("CleanNumeric(%v) status = %v, want ParseOK", tc.in, st)
		}
		if d.String() != tc.expected {
			t.Fatalf("CleanNumeric(%v) = %s, want %s", tc.in, d.String(), tc.expected)
		}
	}
}

func TestCleanNumeric_AbsentAndInvalid(t *testing.T) {
	for _, in := range []any{nil, "", "   ", "null", "NULL", "Null"} {
		if d, st := CleanNumeric(in); st != ParseEmpty || d != nil {
			t.Fatalf("CleanNumeric(%v) = (%v, %v), want (nil, ParseEmpty)", in, d, st)
		}
	}
	for _, in := range []any{"abc", "12x", true} {
		if d, st := CleanNumeric(in); st != ParseInvalid || d != nil {
			t.Fatalf("CleanNumeric(%v) = (%v, %v), want (nil, ParseInvalid)", in, d, st)
		}
	}
}

func TestNormalizeDate_Layouts(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"2024-04-30", "2024-04-30"},
		{"04/30/2024", "2024-04-30"}, // US month-first
		{"30/04/2024", "2024-04-30"}, // day-first, unambiguous
		{"2024/04/30", "2024-04-30"},
		{" 2024-05-01 ", "2024-05-01"},
	}
	for _, tc := range cases {
		got, ok := NormalizeDate(tc.in)
		if !ok {
			t.Fatalf("NormalizeDate(%q) not ok", tc.in)
		}
		if got != tc.expected {
			t.Fatalf("NormalizeDate(%q) = %s, want %s", tc.in, got, tc.expected)
		}
	}
}

func TestNormalizeDate_USLayoutWins(t *testing.T) {
	// An ambiguous date parses under the first matching layout (US).
	got, ok := NormalizeDate("01/02/2024")
	if !ok || got != "2024-01-02" {
		t.Fatalf("NormalizeDate(01/02/2024) = (%s, %v), want 2024-01-02", got, ok)
	}
}

func TestNormalizeDate_Unparseable(t *testing.T) {
	for _, in := range []string{"", "not a date", "2024-13-45", "April 30"} {
		if got, ok := NormalizeDate(in); ok {
			t.Fatalf("NormalizeDate(%q) = %s, want not ok", in, got)
		}
	}
}

func TestCleanDate(t *testing.T) {
	if d, st := CleanDate("04/30/2024"); st != ParseOK || *d != "2024-04-30" {
		t.Fatalf("CleanDate(04/30/2024) = (%v, %v)", d, st)
	}
	if d, st := CleanDate("null"); st != ParseEmpty || d != nil {
		t.Fatalf("CleanDate(null) = (%v, %v), want (nil, ParseEmpty)", d, st)
	}
	if d, st := CleanDate("garbage"); st != ParseInvalid || d != nil {
		t.Fatalf("CleanDate(garbage) = (%v, %v), want (nil, ParseInvalid)", d, st)
	}
}

func TestCleanText(t *testing.T) {
	if got := CleanText("  widget  ", 0); got == nil || *got != "widget" {
		t.Fatalf("CleanText trim failed: %v", got)
	}
	if got := CleanText("abcdef", 3); got == nil || *got != "abc" {
		t.Fatalf("CleanText truncate failed: %v", got)
	}
	for _, in := range []any{nil, "", "null", "  "} {
		if got := CleanText(in, 0); got != nil {
			t.Fatalf("CleanText(%v) = %q, want nil", in, *got)
		}
	}
}

func TestCleanLineItem_AcceptsBothDateKeys(t *testing.T) {
	li := CleanLineItem(map[string]any{
		"line_number":        float64(1),
		"description":        "Steel bracket",
		"quantity":           "6",
		"unit_price":         "$399.74",
		"line_delivery_date": "2024-05-01",
	}, nil)
	if li.DeliveryDate == nil || *li.DeliveryDate != "2024-05-01" {
		t.Fatalf("line_delivery_date not picked up: %v", li.DeliveryDate)
	}
	if li.Quantity == nil || li.Quantity.String() != "6" {
		t.Fatalf("quantity = %v", li.Quantity)
	}
	if li.UnitPrice == nil || li.UnitPrice.String() != "399.74" {
		t.Fatalf("unit_price = %v", li.UnitPrice)
	}

	li2 := CleanLineItem(map[string]any{"delivery_date": "04/30/2024"}, nil)
	if li2.DeliveryDate == nil || *li2.DeliveryDate != "2024-04-30" {
		t.Fatalf("delivery_date fallback key not picked up: %v", li2.DeliveryDate)
	}
}

func TestCleanHeader_BadFieldDegradesAlone(t *testing.T) {
	h := CleanHeader(map[string]any{
		"po_number":     "PO-1001",
		"vendor_name":   "Acme Corp",
		"delivery_date": "someday",
		"total_amount":  "not-a-number",
	}, nil)
	if h.PONumber == nil || *h.PONumber != "PO-1001" {
		t.Fatalf("po_number = %v", h.PONumber)
	}
	if h.DeliveryDate != nil {
		t.Fatalf("unparseable delivery_date should be nil, got %q", *h.DeliveryDate)
	}
	if h.TotalAmount != nil {
		t.Fatalf("unparseable total_amount should be nil, got %v", h.TotalAmount)
	}
	if h.VendorName == nil || *h.VendorName != "Acme Corp" {
		t.Fatalf("vendor_name = %v", h.VendorName)
	}
}
