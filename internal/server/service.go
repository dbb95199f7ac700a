package server

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/invoiceflow/po-reconciler/internal/export"
	"github.com/invoiceflow/po-reconciler/internal/llm"
	"github.com/invoiceflow/po-reconciler/internal/recon"
	"github.com/invoiceflow/po-reconciler/internal/repository"
)

// Service wires the HTTP surface to the reconciliation core and its
// collaborators.
type Service struct {
	logger    *slog.Logger
	validate  *validator.Validate
	pipeline  *recon.Pipeline
	ledger    repository.LedgerRepository
	store     *repository.ExtractionStore
	extractor llm.HeaderDetailExtractor // nil when no LLM is configured
	exporter  *export.Service
}

func NewService(
	pipeline *recon.Pipeline,
	ledger repository.LedgerRepository,
	store *repository.ExtractionStore,
	extractor llm.HeaderDetailExtractor,
	exporter *export.Service,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger:    logger,
		validate:  validator.New(),
		pipeline:  pipeline,
		ledger:    ledger,
		store:     store,
		extractor: extractor,
		exporter:  exporter,
	}
}

// Routes registers all handlers on r.
func (s *Service) Routes(r *mux.Router) {
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/extractions", s.handleCreateExtraction).Methods(http.MethodPost)
	api.HandleFunc("/extractions", s.handleListExtractions).Methods(http.MethodGet)
	api.HandleFunc("/extractions/{id}", s.handleGetExtraction).Methods(http.MethodGet)

	api.HandleFunc("/reconciliations", s.handleReconcile).Methods(http.MethodPost)
	api.HandleFunc("/reconciliations/{id}", s.handleGetReport).Methods(http.MethodGet)
	api.HandleFunc("/reconciliations/{id}/export", s.handleExportReport).Methods(http.MethodGet)

	api.HandleFunc("/ledger/details/{id}/status", s.handleDetailStatus).Methods(http.MethodGet)
	api.HandleFunc("/ledger/details/{id}", s.handleUpdateDetail).Methods(http.MethodPut)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
