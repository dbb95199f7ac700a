package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/invoiceflow/po-reconciler/internal/common"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{fmt.Errorf("%w: po X", common.ErrNotFound), http.StatusNotFound, "not_found"},
		{common.ValidationErrorf("po number is required"), http.StatusBadRequest, "validation"},
		{common.ConflictErrorf("already invoiced"), http.StatusConflict, "conflict"},
		{fmt.Errorf("%w: dial tcp", common.ErrTransient), http.StatusBadGateway, "transient"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, tc.err)
		if rec.Code != tc.status {
			t.Fatalf("writeError(%v) status = %d, want %d", tc.err, rec.Code, tc.status)
		}
		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Kind != tc.kind {
			t.Fatalf("writeError(%v) kind = %q, want %q", tc.err, body.Kind, tc.kind)
		}
		if body.Error == "" {
			t.Fatal("error message should not be empty")
		}
	}
}
