package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/invoiceflow/po-reconciler/internal/common"
	"github.com/invoiceflow/po-reconciler/internal/export"
	"github.com/invoiceflow/po-reconciler/internal/llm"
	"github.com/invoiceflow/po-reconciler/internal/llm/anthropic"
	"github.com/invoiceflow/po-reconciler/internal/recon"
	"github.com/invoiceflow/po-reconciler/internal/repository"
	"github.com/invoiceflow/po-reconciler/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.OpenLedgerPool(ctx, cfg.Ledger, logger)
	if err != nil {
		logger.Error("opening ledger pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := repository.HealthCheck(ctx, pool, logger); err != nil {
		logger.Error("ledger health check failed", "error", err)
		os.Exit(1)
	}
	logger.Info("ledger health OK")

	store, err := repository.OpenExtractionStore(cfg.Store.Path, logger)
	if err != nil {
		logger.Error("opening extraction store", "error", err, "path", cfg.Store.Path)
		os.Exit(1)
	}
	defer store.Close()

	// The LLM is optional: without an API key the matcher falls back to
	// position-based pairing and document-text extraction is disabled.
	var (
		oracle    llm.MatchOracle
		extractor llm.HeaderDetailExtractor
	)
	if cfg.Oracle.APIKey != "" {
		client := anthropic.NewClient(anthropic.Config{
			APIKey:      cfg.Oracle.APIKey,
			BaseURL:     cfg.Oracle.BaseURL,
			Model:       cfg.Oracle.Model,
			MaxTokens:   cfg.Oracle.MaxTokens,
			Temperature: cfg.Oracle.Temperature,
			Timeout:     cfg.Oracle.Timeout,
		}, logger)
		oracle = client
		extractor = client
		logger.Info("llm configured", "model", cfg.Oracle.Model)
	} else {
		logger.Warn("no ORACLE_API_KEY set, content-based matching disabled")
	}

	ledger := repository.NewLedgerRepository(pool, logger)
	matcher := recon.NewMatcher(oracle, logger)
	pipeline := recon.NewPipeline(ledger, matcher, logger)
	exporter := export.NewService(logger)

	svc := server.NewService(pipeline, ledger, store, extractor, exporter, logger)
	router := mux.NewRouter()
	svc.Routes(router)

	httpServer := &http.Server{
		Addr:         cfg.Server.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	logger.Info("stopped")
}
