package recon

import (
	"log/slog"

	"github.com/invoiceflow/po-reconciler/internal/entity"
)

// DateState classifies where delivery dates live on one document.
type DateState string

const (
	DateStateHeaderOnly DateState = "HEADER_ONLY" // header date, no line carries its own
	DateStateLineOnly   DateState = "LINE_ONLY"   // no header date, some lines carry their own
	DateStateMixed      DateState = "MIXED"       // header date and some line-level dates
	DateStateNone       DateState = "NONE"        // no dates anywhere
)

// DateResolution summarizes what ResolveDeliveryDates did.
type DateResolution struct {
	State             DateState
	HeaderDate        *string
	LineSpecificCount int
	InheritedCount    int
}

// ResolveDeliveryDates applies the header-to-line date inheritance rule:
// a line without its own delivery date receives the header's date and is
// flagged inherited; a line that already has a date is left untouched.
// Without a header date, lines keep whatever they have. The input slice is
// not modified. Lines with dates are never overwritten, so re-applying to
// an already-resolved list is a no-op.
func ResolveDeliveryDates(header *entity.Header, items []entity.LineItem, logger *slog.Logger) ([]entity.LineItem, DateResolution) {
	if logger == nil {
		logger = slog.Default()
	}

	var headerDate *string
	if header != nil && header.DeliveryDate != nil {
		d := *header.DeliveryDate
		headerDate = &d
	}

	out := make([]entity.LineItem, len(items))
	copy(out, items)

	res := DateResolution{HeaderDate: headerDate}
	for i := range out {
		if out[i].DeliveryDate != nil {
			res.LineSpecificCount++
			continue
		}
		if headerDate != nil {
			d := *headerDate
			out[i].DeliveryDate = &d
			out[i].DeliveryDateInherited = true
			res.InheritedCount++
		}
	}
	res.State = dateState(headerDate != nil, res.LineSpecificCount > 0)

	logger.Info("recon.dates.resolved",
		"state", string(res.State),
		"header_date", stringValue(headerDate),
		"line_specific", res.LineSpecificCount,
		"inherited", res.InheritedCount,
	)
	return out, res
}

func dateState(headerHas, anyLineHas bool) DateState {
	switch {
	case headerHas && anyLineHas:
		return DateStateMixed
	case headerHas:
		return DateStateHeaderOnly
	case anyLineHas:
		return DateStateLineOnly
	default:
		return DateStateNone
	}
}
