package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/invoiceflow/po-reconciler/internal/common"
	"github.com/invoiceflow/po-reconciler/internal/entity"
	"github.com/invoiceflow/po-reconciler/internal/extract"
	"github.com/invoiceflow/po-reconciler/internal/llm"
)

// createExtractionRequest accepts either raw document text (sent through
// the LLM extractor) or an already-extracted header/line_items payload
// (cleaned and stored as-is).
type createExtractionRequest struct {
	SourceName   string           `json:"source_name"`
	DocumentText string           `json:"document_text,omitempty"`
	Header       map[string]any   `json:"header,omitempty"`
	LineItems    []map[string]any `json:"line_items,omitempty"`
}

func (s *Service) handleCreateExtraction(w http.ResponseWriter, r *http.Request) {
	var req createExtractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ValidationErrorf("decode request: %v", err))
		return
	}

	ex := &entity.Extraction{
		ID:         uuid.New(),
		SourceName: req.SourceName,
		CreatedAt:  time.Now().UTC(),
	}

	switch {
	case req.DocumentText != "":
		if s.extractor == nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{
				Error: "no extraction model configured", Kind: "unavailable",
			})
			return
		}
		result, _, err := s.extractor.ExtractHeaderDetail(r.Context(), llm.ExtractRequest{
			DocumentText: req.DocumentText,
			FilenameHint: req.SourceName,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		ex.Header = extract.CleanHeader(result.Header, s.logger)
		ex.LineItems = extract.CleanLineItems(result.LineItems, s.logger)
		ex.Confidence = result.Confidence
	case req.Header != nil || len(req.LineItems) > 0:
		ex.Header = extract.CleanHeader(req.Header, s.logger)
		ex.LineItems = extract.CleanLineItems(req.LineItems, s.logger)
	default:
		writeError(w, common.ValidationErrorf("document_text or header/line_items is required"))
		return
	}

	if err := s.store.SaveExtraction(r.Context(), ex); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ex)
}

func (s *Service) handleGetExtraction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, common.ValidationErrorf("invalid extraction id"))
		return
	}
	ex, err := s.store.GetExtraction(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Service) handleListExtractions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	list, err := s.store.ListExtractions(r.Context(), r.URL.Query().Get("po_number"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"extractions": list})
}
