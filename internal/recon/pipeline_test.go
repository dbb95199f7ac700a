package recon

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/invoiceflow/po-reconciler/constants"
	"github.com/invoiceflow/po-reconciler/internal/common"
	"github.com/invoiceflow/po-reconciler/internal/entity"
)

type fakeLedger struct {
	po  *entity.PurchaseOrder
	err error
}

func (f *fakeLedger) FindPurchaseOrder(_ context.Context, poNumber string) (*entity.PurchaseOrder, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.po, nil
}

func referenceItem(code string, qty, price string, date string) entity.LineItem {
	li := entity.LineItem{
		ItemCode:  sptr(code),
		Quantity:  dptr(qty),
		UnitPrice: dptr(price),
	}
	if date != "" {
		li.DeliveryDate = sptr(date)
	}
	return li
}

func newTestPipeline(ledger Ledger) *Pipeline {
	return NewPipeline(ledger, NewMatcher(nil, quietLogger()), quietLogger())
}

func TestReconcile_EmptyPONumber(t *testing.T) {
	p := newTestPipeline(&fakeLedger{})
	if _, err := p.Reconcile(context.Background(), "  ", nil, nil); !errors.Is(err, common.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestReconcile_PONotFound(t *testing.T) {
	ledger := &fakeLedger{err: fmt.Errorf("%w: po X", common.ErrNotFound)}
	p := newTestPipeline(ledger)

	report, err := p.Reconcile(context.Background(), "PO-404", nil, nil)
	if err != nil {
		t.Fatalf("a missing PO is a normal result, got error %v", err)
	}
	if report.Found {
		t.Fatal("Found should be false")
	}
	if report.Note == "" {
		t.Fatal("missing PO should carry a note")
	}
	if report.MatchMethod != constants.MatchMethodNone {
		t.Fatalf("method = %s", report.MatchMethod)
	}
}

func TestReconcile_TransientLedgerErrorSurfaces(t *testing.T) {
	ledger := &fakeLedger{err: fmt.Errorf("%w: connection reset", common.ErrTransient)}
	p := newTestPipeline(ledger)
	if _, err := p.Reconcile(context.Background(), "PO-1", nil, nil); !errors.Is(err, common.ErrTransient) {
		t.Fatalf("err = %v, want transient", err)
	}
}

func TestReconcile_NoReferenceLines(t *testing.T) {
	ledger := &fakeLedger{po: &entity.PurchaseOrder{Header: entity.Header{PONumber: sptr("PO-1")}}}
	p := newTestPipeline(ledger)

	report, err := p.Reconcile(context.Background(), "PO-1", nil, []entity.LineItem{{}})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if !report.Found || report.Note == "" {
		t.Fatalf("found=%v note=%q", report.Found, report.Note)
	}
	if len(report.Pairs) != 0 {
		t.Fatalf("pairs = %d, want 0", len(report.Pairs))
	}
}

func TestReconcile_IdenticalLinesScorePerfect(t *testing.T) {
	refs := []entity.LineItem{
		referenceItem("A-1", "6", "399.74", "2024-04-30"),
		referenceItem("B-2", "2", "10.00", "2024-04-30"),
		referenceItem("C-3", "1", "5.25", "2024-04-30"),
	}
	ledger := &fakeLedger{po: &entity.PurchaseOrder{LineItems: refs}}
	p := newTestPipeline(ledger)

	// Same lines, delivery date only on the header: inheritance has to make
	// them agree.
	candidates := []entity.LineItem{
		referenceItem("A-1", "6", "399.74", ""),
		referenceItem("B-2", "2", "10.00", ""),
		referenceItem("C-3", "1", "5.25", ""),
	}
	header := &entity.Header{DeliveryDate: sptr("04/30/2024")}

	report, err := p.Reconcile(context.Background(), "PO-1", header, candidates)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if report.Summary.TotalLines != 3 || report.Summary.PerfectMatches != 3 {
		t.Fatalf("summary = %+v", report.Summary)
	}
	if report.Summary.OverallScore != 1.0 || report.Summary.AccuracyPercentage != 100 {
		t.Fatalf("summary = %+v", report.Summary)
	}
	for _, pair := range report.Pairs {
		if pair.MatchScore != 1.0 || len(pair.FieldDiffs) != 0 {
			t.Fatalf("pair = %+v", pair)
		}
	}
}

func TestReconcile_ShortDocumentLeavesReferenceOnly(t *testing.T) {
	refs := []entity.LineItem{
		referenceItem("A-1", "6", "399.74", "2024-04-30"),
		referenceItem("B-2", "2", "10.00", "2024-04-30"),
		referenceItem("C-3", "1", "5.25", "2024-04-30"),
	}
	ledger := &fakeLedger{po: &entity.PurchaseOrder{LineItems: refs}}
	p := newTestPipeline(ledger)

	candidates := []entity.LineItem{
		referenceItem("A-1", "6", "399.74", "2024-04-30"),
		referenceItem("B-2", "2", "10.00", "2024-04-30"),
	}
	report, err := p.Reconcile(context.Background(), "PO-1", nil, candidates)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if report.MatchMethod != constants.MatchMethodPosition {
		t.Fatalf("method = %s", report.MatchMethod)
	}
	if report.Summary.TotalLines != 3 {
		t.Fatalf("total = %d, want 3 (2 matched + 1 reference-only)", report.Summary.TotalLines)
	}

	var refOnly int
	for _, pair := range report.Pairs {
		if pair.Type == constants.ComparisonReferenceOnly {
			refOnly++
			if pair.Confidence != constants.ConfidenceNoMatch {
				t.Fatalf("reference-only confidence = %s", pair.Confidence)
			}
		}
	}
	if refOnly != 1 {
		t.Fatalf("reference-only rows = %d, want 1", refOnly)
	}
	if report.Summary.NoMatches != 1 || report.Summary.PerfectMatches != 2 {
		t.Fatalf("summary = %+v", report.Summary)
	}
}
