package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/invoiceflow/po-reconciler/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP status codes. Conflict
// stays distinguishable from generic failure so the UI can tell the user
// why the write was rejected.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Kind: "not_found"})
	case errors.Is(err, common.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "validation"})
	case errors.Is(err, common.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error(), Kind: "conflict"})
	case errors.Is(err, common.ErrTransient):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Kind: "transient"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
