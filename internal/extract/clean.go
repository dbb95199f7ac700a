package extract

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseStatus tags the outcome of cleaning one untrusted field. Extraction
// output is best-effort, so a field that fails to parse degrades to absent
// instead of invalidating the whole record; the status keeps the failure
// kind observable.
type ParseStatus int

const (
	ParseOK      ParseStatus = iota
	ParseEmpty               // nil, blank, or the literal string "null"
	ParseInvalid             // present but not parseable as the target type
)

// dateLayouts are tried in order; the first that parses wins.
var dateLayouts = []string{
	"2006-01-02", // ISO
	"01/02/2006", // US
	"02/01/2006", // day-first
	"2006/01/02",
}

var currencyMarks = strings.NewReplacer("$", "", ",", "", "€", "", "£", "")

// isAbsent reports whether an extracted value should be treated as missing.
// The extractor sometimes emits the literal string "null" for absent fields.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		t := strings.TrimSpace(s)
		return t == "" || strings.EqualFold(t, "null")
	}
	return false
}

// CleanNumeric parses an extracted quantity/price-like value. Currency
// symbols and thousands separators are stripped before the parse.
func CleanNumeric(v any) (*decimal.Decimal, ParseStatus) {
	if isAbsent(v) {
		return nil, ParseEmpty
	}
	switch t := v.(type) {
	case float64:
		d := decimal.NewFromFloat(t)
		return &d, ParseOK
	case int:
		d := decimal.NewFromInt(int64(t))
		return &d, ParseOK
	case int64:
		d := decimal.NewFromInt(t)
		return &d, ParseOK
	case decimal.Decimal:
		return &t, ParseOK
	case string:
		s := strings.TrimSpace(currencyMarks.Replace(t))
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, ParseInvalid
		}
		return &d, ParseOK
	default:
		return nil, ParseInvalid
	}
}

// CleanDate parses an extracted date in any accepted layout and returns it
// normalized to ISO (YYYY-MM-DD).
func CleanDate(v any) (*string, ParseStatus) {
	if isAbsent(v) {
		return nil, ParseEmpty
	}
	s, ok := v.(string)
	if !ok {
		return nil, ParseInvalid
	}
	iso, ok := NormalizeDate(s)
	if !ok {
		return nil, ParseInvalid
	}
	return &iso, ParseOK
}

// NormalizeDate converts a date string in any accepted layout to ISO form.
// ok is false when no layout parses.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// CleanText trims an extracted string field and truncates it to maxLen
// runes (0 means unbounded). Absent-ish values come back nil.
func CleanText(v any, maxLen int) *string {
	if isAbsent(v) {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if maxLen > 0 {
		if r := []rune(s); len(r) > maxLen {
			s = string(r[:maxLen])
		}
	}
	return &s
}

// CleanInt parses an extracted integer-like value (line numbers).
func CleanInt(v any) (int, ParseStatus) {
	if isAbsent(v) {
		return 0, ParseEmpty
	}
	switch t := v.(type) {
	case float64:
		return int(t), ParseOK
	case int:
		return t, ParseOK
	case int64:
		return int(t), ParseOK
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return 0, ParseInvalid
		}
		return int(d.IntPart()), ParseOK
	default:
		return 0, ParseInvalid
	}
}
