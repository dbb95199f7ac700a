package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/invoiceflow/po-reconciler/internal/common"
)

func TestClassifyLedgerError_InvoicedTrigger(t *testing.T) {
	err := classifyLedgerError(&pgconn.PgError{
		Code:    "P0001",
		Message: "Item cannot be changed, it is referenced on an Invoice",
	})
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestClassifyLedgerError_OtherBusinessRule(t *testing.T) {
	err := classifyLedgerError(&pgconn.PgError{
		Code:    "P0001",
		Message: "order is closed",
	})
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestClassifyLedgerError_OtherPgErrorPassesThrough(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	err := classifyLedgerError(pgErr)
	if errors.Is(err, common.ErrConflict) || errors.Is(err, common.ErrTransient) {
		t.Fatalf("err = %v, want untouched driver error", err)
	}
	var got *pgconn.PgError
	if !errors.As(err, &got) || got.Code != "23505" {
		t.Fatalf("err = %v", err)
	}
}

func TestClassifyLedgerError_NonPgErrorIsTransient(t *testing.T) {
	err := classifyLedgerError(fmt.Errorf("connection reset by peer"))
	if !errors.Is(err, common.ErrTransient) {
		t.Fatalf("err = %v, want transient", err)
	}
}
