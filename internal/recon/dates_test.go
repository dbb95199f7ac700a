package recon

import (
	"io"
	"log/slog"
	"testing"

	"github.com/invoiceflow/po-reconciler/internal/entity"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveDeliveryDates_HeaderInheritance(t *testing.T) {
	header := &entity.Header{DeliveryDate: sptr("2024-04-30")}
	items := []entity.LineItem{
		{LineNumber: 1},                                   // inherits
		{LineNumber: 2, DeliveryDate: sptr("2024-05-01")}, // keeps its own
		{LineNumber: 3},                                   // inherits
	}

	out, res := ResolveDeliveryDates(header, items, quietLogger())

	if res.State != DateStateMixed {
		t.Fatalf("state = %s, want MIXED", res.State)
	}
	if res.InheritedCount != 2 || res.LineSpecificCount != 1 {
		t.Fatalf("counts = inherited %d, line-specific %d", res.InheritedCount, res.LineSpecificCount)
	}
	if *out[0].DeliveryDate != "2024-04-30" || !out[0].DeliveryDateInherited {
		t.Fatalf("line 1 not inherited: %+v", out[0])
	}
	if *out[1].DeliveryDate != "2024-05-01" || out[1].DeliveryDateInherited {
		t.Fatalf("line 2 should keep its own date: %+v", out[1])
	}
	if *out[2].DeliveryDate != "2024-04-30" || !out[2].DeliveryDateInherited {
		t.Fatalf("line 3 not inherited: %+v", out[2])
	}

	// Input untouched.
	if items[0].DeliveryDate != nil {
		t.Fatal("input slice was modified")
	}
}

func TestResolveDeliveryDates_NoHeaderDate(t *testing.T) {
	items := []entity.LineItem{
		{DeliveryDate: sptr("2024-05-01")},
		{},
	}
	out, res := ResolveDeliveryDates(&entity.Header{}, items, quietLogger())
	if res.State != DateStateLineOnly {
		t.Fatalf("state = %s, want LINE_ONLY", res.State)
	}
	if out[1].DeliveryDate != nil {
		t.Fatal("line without a date should stay dateless when header has none")
	}
}

func TestResolveDeliveryDates_Idempotent(t *testing.T) {
	header := &entity.Header{DeliveryDate: sptr("2024-04-30")}
	items := []entity.LineItem{{}, {DeliveryDate: sptr("2024-05-01")}}

	once, _ := ResolveDeliveryDates(header, items, quietLogger())
	twice, res := ResolveDeliveryDates(header, once, quietLogger())

	if res.InheritedCount != 0 {
		t.Fatalf("second pass inherited %d lines, want 0", res.InheritedCount)
	}
	for i := range once {
		if *once[i].DeliveryDate != *twice[i].DeliveryDate ||
			once[i].DeliveryDateInherited != twice[i].DeliveryDateInherited {
			t.Fatalf("line %d changed on second pass: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestResolveDeliveryDates_States(t *testing.T) {
	if _, res := ResolveDeliveryDates(nil, []entity.LineItem{{}}, quietLogger()); res.State != DateStateNone {
		t.Fatalf("nil header, no line dates: state = %s, want NONE", res.State)
	}
	h := &entity.Header{DeliveryDate: sptr("2024-04-30")}
	if _, res := ResolveDeliveryDates(h, []entity.LineItem{{}}, quietLogger()); res.State != DateStateHeaderOnly {
		t.Fatalf("header only: state = %s, want HEADER_ONLY", res.State)
	}
}
