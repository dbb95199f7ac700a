package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/invoiceflow/po-reconciler/internal/common"
	"github.com/invoiceflow/po-reconciler/internal/entity"
)

// ExtractionStore persists extracted documents and reconciliation reports
// in a local SQLite database. Payloads are stored as JSON; the store is an
// audit mirror, not the system of record (that is the ledger).
type ExtractionStore struct {
	db     *sql.DB
	logger *slog.Logger
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS extractions (
	id          TEXT PRIMARY KEY,
	po_number   TEXT,
	source_name TEXT,
	model       TEXT,
	payload     TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_po ON extractions(po_number);

CREATE TABLE IF NOT EXISTS comparison_reports (
	id         TEXT PRIMARY KEY,
	po_number  TEXT NOT NULL,
	found      INTEGER NOT NULL,
	payload    TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_po ON comparison_reports(po_number);
`

// OpenExtractionStore opens (creating if needed) the store at path.
func OpenExtractionStore(path string, logger *slog.Logger) (*ExtractionStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open extraction store: %w", err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create store schema: %w", err)
	}
	logger.Info("store.open.ok", "path", path)
	return &ExtractionStore{db: db, logger: logger}, nil
}

func (s *ExtractionStore) Close() error {
	return s.db.Close()
}

// SaveExtraction inserts an extracted document. Re-saving the same ID
// replaces the row.
func (s *ExtractionStore) SaveExtraction(ctx context.Context, ex *entity.Extraction) error {
	payload, err := json.Marshal(ex)
	if err != nil {
		return fmt.Errorf("marshal extraction: %w", err)
	}
	var poNumber string
	if ex.Header.PONumber != nil {
		poNumber = *ex.Header.PONumber
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO extractions (id, po_number, source_name, model, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ex.ID.String(), poNumber, ex.SourceName, ex.Model, string(payload), ex.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		s.logger.Error("store.save_extraction.failed", "id", ex.ID, "error", err)
		return fmt.Errorf("save extraction: %w", err)
	}
	s.logger.Info("store.save_extraction.ok", "id", ex.ID, "po_number", poNumber, "line_items", len(ex.LineItems))
	return nil
}

// GetExtraction loads one extraction by ID.
func (s *ExtractionStore) GetExtraction(ctx context.Context, id uuid.UUID) (*entity.Extraction, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM extractions WHERE id = ?`, id.String(),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: extraction %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load extraction: %w", err)
	}
	var ex entity.Extraction
	if err := json.Unmarshal([]byte(payload), &ex); err != nil {
		return nil, fmt.Errorf("decode extraction payload: %w", err)
	}
	return &ex, nil
}

// ListExtractions returns stored extractions, newest first, optionally
// filtered by PO number.
func (s *ExtractionStore) ListExtractions(ctx context.Context, poNumber string, limit int) ([]*entity.Extraction, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT payload FROM extractions`
	args := []any{}
	if poNumber != "" {
		query += ` WHERE po_number = ?`
		args = append(args, poNumber)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list extractions: %w", err)
	}
	defer rows.Close()

	var out []*entity.Extraction
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var ex entity.Extraction
		if err := json.Unmarshal([]byte(payload), &ex); err != nil {
			return nil, fmt.Errorf("decode extraction payload: %w", err)
		}
		out = append(out, &ex)
	}
	return out, rows.Err()
}

// SaveReport inserts a finished comparison report.
func (s *ExtractionStore) SaveReport(ctx context.Context, rep *entity.ComparisonReport) error {
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	found := 0
	if rep.Found {
		found = 1
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO comparison_reports (id, po_number, found, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rep.ID.String(), rep.PONumber, found, string(payload), rep.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		s.logger.Error("store.save_report.failed", "id", rep.ID, "error", err)
		return fmt.Errorf("save report: %w", err)
	}
	s.logger.Info("store.save_report.ok", "id", rep.ID, "po_number", rep.PONumber)
	return nil
}

// GetReport loads one comparison report by ID.
func (s *ExtractionStore) GetReport(ctx context.Context, id uuid.UUID) (*entity.ComparisonReport, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM comparison_reports WHERE id = ?`, id.String(),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: report %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load report: %w", err)
	}
	var rep entity.ComparisonReport
	if err := json.Unmarshal([]byte(payload), &rep); err != nil {
		return nil, fmt.Errorf("decode report payload: %w", err)
	}
	return &rep, nil
}
