package recon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invoiceflow/po-reconciler/constants"
	"github.com/invoiceflow/po-reconciler/internal/common"
	"github.com/invoiceflow/po-reconciler/internal/entity"
)

// Ledger is the slice of the ledger repository the pipeline needs.
type Ledger interface {
	// FindPurchaseOrder loads an order and its detail lines by PO number.
	// A missing order is reported as common.ErrNotFound.
	FindPurchaseOrder(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error)
}

// Pipeline orchestrates one reconciliation: resolve delivery dates, match,
// compare and score each pair, aggregate. It owns no state between runs.
type Pipeline struct {
	logger  *slog.Logger
	ledger  Ledger
	matcher *Matcher
}

func NewPipeline(ledger Ledger, matcher *Matcher, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger, ledger: ledger, matcher: matcher}
}

// Reconcile compares extracted candidate line items against the ledger's
// reference lines for poNumber. A PO missing from the ledger is a normal
// result (Found=false), not an error; transient ledger failures surface to
// the caller.
func (p *Pipeline) Reconcile(ctx context.Context, poNumber string, header *entity.Header, candidates []entity.LineItem) (*entity.ComparisonReport, error) {
	if strings.TrimSpace(poNumber) == "" {
		return nil, common.ValidationErrorf("po number is required")
	}
	start := time.Now()

	report := &entity.ComparisonReport{
		ID:        uuid.New(),
		PONumber:  poNumber,
		CreatedAt: start.UTC(),
	}

	po, err := p.ledger.FindPurchaseOrder(ctx, poNumber)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			p.logger.Warn("recon.pipeline.po_not_found", "po_number", poNumber)
			report.Found = false
			report.Note = fmt.Sprintf("PO %s not found in the ledger", poNumber)
			report.MatchMethod = constants.MatchMethodNone
			return report, nil
		}
		return nil, fmt.Errorf("load purchase order %s: %w", poNumber, err)
	}

	report.Found = true
	if len(po.LineItems) == 0 {
		p.logger.Warn("recon.pipeline.no_reference_lines", "po_number", poNumber)
		report.Note = fmt.Sprintf("no line items found for PO %s", poNumber)
		report.MatchMethod = constants.MatchMethodNone
		return report, nil
	}

	resolved, dateRes := ResolveDeliveryDates(header, candidates, p.logger)

	outcome := p.matcher.Match(ctx, poNumber, resolved, po.LineItems)
	report.MatchMethod = outcome.Method
	report.Note = outcome.AnalysisSummary
	report.Pairs = buildPairs(outcome)
	report.Summary = Summarize(report.Pairs)

	p.logger.Info("recon.pipeline.ok",
		"po_number", poNumber,
		"report_id", report.ID,
		"method", string(outcome.Method),
		"date_state", string(dateRes.State),
		"total_lines", report.Summary.TotalLines,
		"perfect", report.Summary.PerfectMatches,
		"partial", report.Summary.PartialMatches,
		"no_match", report.Summary.NoMatches,
		"overall_score", report.Summary.OverallScore,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}

// buildPairs annotates each accepted pairing with its field comparison and
// score, then appends one-sided rows for the unmatched leftovers.
func buildPairs(outcome MatchOutcome) []entity.MatchPair {
	pairs := make([]entity.MatchPair, 0, len(outcome.Matches)+len(outcome.UnmatchedCandidates)+len(outcome.UnmatchedReferences))

	for i := range outcome.Matches {
		m := outcome.Matches[i]
		diffs := CompareLineItems(&m.Candidate, &m.Reference)
		pairs = append(pairs, entity.MatchPair{
			Candidate:    &outcome.Matches[i].Candidate,
			Reference:    &outcome.Matches[i].Reference,
			Type:         constants.ComparisonMatched,
			Confidence:   m.Confidence,
			MatchScore:   Score(diffs),
			MatchReasons: m.Reasons,
			Notes:        m.Notes,
			FieldDiffs:   diffs,
		})
	}
	for i := range outcome.UnmatchedCandidates {
		pairs = append(pairs, entity.MatchPair{
			Candidate:  &outcome.UnmatchedCandidates[i],
			Type:       constants.ComparisonCandidateOnly,
			Confidence: constants.ConfidenceNoMatch,
		})
	}
	for i := range outcome.UnmatchedReferences {
		pairs = append(pairs, entity.MatchPair{
			Reference:  &outcome.UnmatchedReferences[i],
			Type:       constants.ComparisonReferenceOnly,
			Confidence: constants.ConfidenceNoMatch,
		})
	}
	return pairs
}
