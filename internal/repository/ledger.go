package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/invoiceflow/po-reconciler/internal/common"
	"github.com/invoiceflow/po-reconciler/internal/entity"
)

// DetailUpdate carries the corrected values written back to one ledger
// detail row. Each update is a single-row, single-statement write and is
// idempotent: re-applying the same values yields the same end state.
type DetailUpdate struct {
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	DeliveryDate string // ISO calendar date
}

// DetailStatus reports whether a ledger detail row accepts updates and
// its current values.
type DetailStatus struct {
	DetailID     int64            `json:"detail_id"`
	CanUpdate    bool             `json:"can_update"`
	Reason       string           `json:"reason"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	DeliveryDate *string          `json:"delivery_date,omitempty"`
}

// LedgerRepository is the ledger-side collaborator: order lookup for
// reconciliation and single-row corrections back into the order details.
type LedgerRepository interface {
	FindPurchaseOrder(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error)
	UpdateDetail(ctx context.Context, detailID int64, upd DetailUpdate) error
	DetailUpdateStatus(ctx context.Context, detailID int64) (*DetailStatus, error)
}

type ledgerRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewLedgerRepository(pool *pgxpool.Pool, logger *slog.Logger) LedgerRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &ledgerRepository{pool: pool, logger: logger}
}

func (r *ledgerRepository) FindPurchaseOrder(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error) {
	var (
		poID         string
		supplierName *string
		purchaseDate *string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT po_number, supplier_name, purchase_date::text
		FROM purchase_order_headers
		WHERE po_number = $1
	`, poNumber).Scan(&poID, &supplierName, &purchaseDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: po %s", common.ErrNotFound, poNumber)
	}
	if err != nil {
		r.logger.Error("ledger.find_po.header_query_failed", "po_number", poNumber, "error", err)
		return nil, classifyLedgerError(err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT detail_id, item_code, description, quantity, unit_price, date_required::text
		FROM purchase_order_details
		WHERE po_number = $1
		ORDER BY detail_id
	`, poNumber)
	if err != nil {
		r.logger.Error("ledger.find_po.details_query_failed", "po_number", poNumber, "error", err)
		return nil, classifyLedgerError(err)
	}
	defer rows.Close()

	po := &entity.PurchaseOrder{
		Header: entity.Header{
			PONumber:    &poID,
			VendorName:  supplierName,
			InvoiceDate: purchaseDate,
		},
	}
	for rows.Next() {
		var (
			detailID     int64
			itemCode     *string
			description  *string
			quantity     *decimal.Decimal
			unitPrice    *decimal.Decimal
			dateRequired *string
		)
		if err := rows.Scan(&detailID, &itemCode, &description, &quantity, &unitPrice, &dateRequired); err != nil {
			return nil, classifyLedgerError(err)
		}
		id := detailID
		li := entity.LineItem{
			LineNumber:   len(po.LineItems) + 1, // sequential, display only
			ItemCode:     itemCode,
			Description:  description,
			Quantity:     quantity,
			UnitPrice:    unitPrice,
			DeliveryDate: dateRequired,
			ReferenceID:  &id,
		}
		po.LineItems = append(po.LineItems, li)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyLedgerError(err)
	}

	r.logger.Info("ledger.find_po.ok", "po_number", poNumber, "line_items", len(po.LineItems))
	return po, nil
}

func (r *ledgerRepository) UpdateDetail(ctx context.Context, detailID int64, upd DetailUpdate) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE purchase_order_details
		SET quantity = $1, unit_price = $2, date_required = $3
		WHERE detail_id = $4
	`, upd.Quantity, upd.UnitPrice, upd.DeliveryDate, detailID)
	if err != nil {
		r.logger.Error("ledger.update_detail.failed", "detail_id", detailID, "error", err)
		return classifyLedgerError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: detail %d", common.ErrNotFound, detailID)
	}

	r.logger.Info("ledger.update_detail.ok",
		"detail_id", detailID,
		"quantity", upd.Quantity.String(),
		"unit_price", upd.UnitPrice.String(),
		"delivery_date", upd.DeliveryDate,
	)
	return nil
}

func (r *ledgerRepository) DetailUpdateStatus(ctx context.Context, detailID int64) (*DetailStatus, error) {
	st := &DetailStatus{DetailID: detailID}
	var invoiced bool
	err := r.pool.QueryRow(ctx, `
		SELECT quantity, unit_price, date_required::text, invoiced
		FROM purchase_order_details
		WHERE detail_id = $1
	`, detailID).Scan(&st.Quantity, &st.UnitPrice, &st.DeliveryDate, &invoiced)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: detail %d", common.ErrNotFound, detailID)
	}
	if err != nil {
		return nil, classifyLedgerError(err)
	}

	if invoiced {
		st.CanUpdate = false
		st.Reason = "line item has been invoiced and is locked"
	} else {
		st.CanUpdate = true
		st.Reason = "available for update"
	}
	return st, nil
}

// classifyLedgerError maps raw driver errors onto the error taxonomy.
// The ledger enforces business rules with raised errors; an update against
// an invoiced line comes back as a trigger exception whose message names
// the invoice, and must surface as a conflict the user can act on.
func classifyLedgerError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.Contains(pgErr.Message, "referenced on an Invoice") {
			return common.ConflictErrorf("cannot update this line item because it has already been invoiced; invoiced purchase orders cannot be modified")
		}
		// P0001 is raise_exception: some other business rule fired.
		if pgErr.Code == "P0001" {
			return common.ConflictErrorf("ledger business rule violation: %s", pgErr.Message)
		}
		return err
	}
	return fmt.Errorf("%w: %v", common.ErrTransient, err)
}
