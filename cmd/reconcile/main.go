package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/invoiceflow/po-reconciler/internal/common"
	"github.com/invoiceflow/po-reconciler/internal/export"
	"github.com/invoiceflow/po-reconciler/internal/extract"
	"github.com/invoiceflow/po-reconciler/internal/llm"
	"github.com/invoiceflow/po-reconciler/internal/llm/anthropic"
	"github.com/invoiceflow/po-reconciler/internal/recon"
	"github.com/invoiceflow/po-reconciler/internal/repository"
)

// extractionFile is the raw extraction payload accepted by --in: the same
// shape the HTTP API takes, header plus line items as loose JSON objects.
type extractionFile struct {
	Header    map[string]any   `json:"header"`
	LineItems []map[string]any `json:"line_items"`
}

func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		in       = flag.String("in", "", "path to extraction JSON file (required)")
		poNumber = flag.String("po", "", "PO number to reconcile against (defaults to the extracted header's)")
		out      = flag.String("out", "", "output XLSX file path (optional)")
		verbose  = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *in == "" {
		printError("Error: --in is required\n")
		os.Exit(1)
	}

	_ = godotenv.Load()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		printError("Error: reading %s: %v\n", *in, err)
		os.Exit(1)
	}
	var payload extractionFile
	if err := json.Unmarshal(raw, &payload); err != nil {
		printError("Error: parsing %s: %v\n", *in, err)
		os.Exit(1)
	}

	header := extract.CleanHeader(payload.Header, logger)
	candidates := extract.CleanLineItems(payload.LineItems, logger)

	if *poNumber == "" && header.PONumber != nil {
		*poNumber = *header.PONumber
	}
	if *poNumber == "" {
		printError("Error: --po is required when the extraction has no PO number\n")
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := repository.OpenLedgerPool(ctx, cfg.Ledger, logger)
	if err != nil {
		printError("Error: opening ledger pool: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var oracle llm.MatchOracle
	if cfg.Oracle.APIKey != "" {
		oracle = anthropic.NewClient(anthropic.Config{
			APIKey:      cfg.Oracle.APIKey,
			BaseURL:     cfg.Oracle.BaseURL,
			Model:       cfg.Oracle.Model,
			MaxTokens:   cfg.Oracle.MaxTokens,
			Temperature: cfg.Oracle.Temperature,
			Timeout:     cfg.Oracle.Timeout,
		}, logger)
	} else {
		logger.Warn("no ORACLE_API_KEY set, using position-based matching")
	}

	ledger := repository.NewLedgerRepository(pool, logger)
	matcher := recon.NewMatcher(oracle, logger)
	pipeline := recon.NewPipeline(ledger, matcher, logger)

	report, err := pipeline.Reconcile(ctx, *poNumber, &header, candidates)
	if err != nil {
		printError("Error: reconcile: %v\n", err)
		os.Exit(1)
	}

	if !report.Found {
		fmt.Printf("PO %s not found in the ledger\n", report.PONumber)
		os.Exit(2)
	}

	fmt.Printf("PO %s reconciled (%s)\n", report.PONumber, report.MatchMethod)
	fmt.Printf("- Total lines:   %d\n", report.Summary.TotalLines)
	fmt.Printf("- Perfect:       %d\n", report.Summary.PerfectMatches)
	fmt.Printf("- Partial:       %d\n", report.Summary.PartialMatches)
	fmt.Printf("- No match:      %d\n", report.Summary.NoMatches)
	fmt.Printf("- Overall score: %.2f\n", report.Summary.OverallScore)
	fmt.Printf("- Accuracy:      %.1f%%\n", report.Summary.AccuracyPercentage)
	if report.Note != "" {
		fmt.Printf("- Note: %s\n", report.Note)
	}

	if *out != "" {
		exporter := export.NewService(logger)
		data, err := exporter.BuildReportXLSX(report)
		if err != nil {
			printError("Error: building XLSX: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*out, data, 0644); err != nil {
			printError("Error: writing %s: %v\n", *out, err)
			os.Exit(1)
		}
		fmt.Printf("- Output: %s\n", *out)
	}
}
