package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/invoiceflow/po-reconciler/internal/common"
	"github.com/invoiceflow/po-reconciler/internal/repository"
)

// updateDetailRequest carries corrected values back into one ledger line.
type updateDetailRequest struct {
	Quantity     *float64 `json:"quantity" validate:"required,gte=0"`
	UnitPrice    *float64 `json:"unit_price" validate:"required,gte=0"`
	DeliveryDate string   `json:"delivery_date" validate:"required,datetime=2006-01-02"`
}

func (s *Service) handleUpdateDetail(w http.ResponseWriter, r *http.Request) {
	detailID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, common.ValidationErrorf("invalid detail id"))
		return
	}

	var req updateDetailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ValidationErrorf("decode request: %v", err))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, common.ValidationErrorf("%v", err))
		return
	}

	upd := repository.DetailUpdate{
		Quantity:     decimal.NewFromFloat(*req.Quantity),
		UnitPrice:    decimal.NewFromFloat(*req.UnitPrice),
		DeliveryDate: req.DeliveryDate,
	}
	if err := s.ledger.UpdateDetail(r.Context(), detailID, upd); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"detail_id": detailID,
		"updated": map[string]any{
			"quantity":      upd.Quantity.String(),
			"unit_price":    upd.UnitPrice.String(),
			"delivery_date": upd.DeliveryDate,
		},
	})
}

func (s *Service) handleDetailStatus(w http.ResponseWriter, r *http.Request) {
	detailID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, common.ValidationErrorf("invalid detail id"))
		return
	}
	st, err := s.ledger.DetailUpdateStatus(r.Context(), detailID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
