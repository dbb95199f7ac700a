package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/invoiceflow/po-reconciler/internal/common"
	"github.com/invoiceflow/po-reconciler/internal/entity"
	"github.com/invoiceflow/po-reconciler/internal/extract"
)

// reconcileRequest runs a reconciliation from a stored extraction
// (extraction_id) or from inline raw header/line_items.
type reconcileRequest struct {
	PONumber     string           `json:"po_number"`
	ExtractionID string           `json:"extraction_id,omitempty"`
	Header       map[string]any   `json:"header,omitempty"`
	LineItems    []map[string]any `json:"line_items,omitempty"`
}

func (s *Service) handleReconcile(w http.ResponseWriter, r *http.Request) {
	var req reconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ValidationErrorf("decode request: %v", err))
		return
	}

	var (
		header     entity.Header
		candidates []entity.LineItem
	)
	if req.ExtractionID != "" {
		id, err := uuid.Parse(req.ExtractionID)
		if err != nil {
			writeError(w, common.ValidationErrorf("invalid extraction_id"))
			return
		}
		ex, err := s.store.GetExtraction(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		header = ex.Header
		candidates = ex.LineItems
		if req.PONumber == "" && ex.Header.PONumber != nil {
			req.PONumber = *ex.Header.PONumber
		}
	} else {
		header = extract.CleanHeader(req.Header, s.logger)
		candidates = extract.CleanLineItems(req.LineItems, s.logger)
	}

	report, err := s.pipeline.Reconcile(r.Context(), req.PONumber, &header, candidates)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.SaveReport(r.Context(), report); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Service) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, common.ValidationErrorf("invalid report id"))
		return
	}
	report, err := s.store.GetReport(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Service) handleExportReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, common.ValidationErrorf("invalid report id"))
		return
	}
	report, err := s.store.GetReport(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := s.exporter.BuildReportXLSX(report)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "comparison-"+report.PONumber+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
