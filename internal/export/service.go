package export

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/invoiceflow/po-reconciler/internal/entity"
)

// Service renders comparison reports as XLSX workbooks for review.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BuildReportXLSX returns an XLSX workbook (as bytes) with one row per
// comparison pair plus a summary block.
func (s *Service) BuildReportXLSX(report *entity.ComparisonReport) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Comparison"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Type",
		"Confidence",
		"Score",
		"PDF Item Code",
		"Ledger Item Code",
		"PDF Qty",
		"Ledger Qty",
		"PDF Unit Price",
		"Ledger Unit Price",
		"PDF Delivery Date",
		"Ledger Delivery Date",
		"Differing Fields",
		"Notes",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for i := range report.Pairs {
		p := &report.Pairs[i]
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, string(p.Type))
		write(2, string(p.Confidence))
		write(3, p.MatchScore)
		write(4, itemCode(p.Candidate))
		write(5, itemCode(p.Reference))
		write(6, quantity(p.Candidate))
		write(7, quantity(p.Reference))
		write(8, unitPrice(p.Candidate))
		write(9, unitPrice(p.Reference))
		write(10, deliveryDate(p.Candidate))
		write(11, deliveryDate(p.Reference))
		write(12, differingFields(p))
		write(13, p.Notes)
		row++
	}

	// Summary block two rows below the table.
	row++
	summary := [][2]any{
		{"PO Number", report.PONumber},
		{"Match Method", string(report.MatchMethod)},
		{"Total Lines", report.Summary.TotalLines},
		{"Perfect Matches", report.Summary.PerfectMatches},
		{"Partial Matches", report.Summary.PartialMatches},
		{"No Matches", report.Summary.NoMatches},
		{"Overall Score", report.Summary.OverallScore},
		{"Accuracy %", report.Summary.AccuracyPercentage},
	}
	for _, kv := range summary {
		keyCell, _ := excelize.CoordinatesToCellName(1, row)
		valCell, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(sheet, keyCell, kv[0])
		_ = f.SetCellValue(sheet, valCell, kv[1])
		row++
	}

	_ = f.SetColWidth(sheet, "A", "B", 16)
	_ = f.SetColWidth(sheet, "D", "E", 18)
	_ = f.SetColWidth(sheet, "J", "K", 18)
	_ = f.SetColWidth(sheet, "L", "M", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"report_id", report.ID.String(),
		"rows", len(report.Pairs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func itemCode(li *entity.LineItem) string {
	if li == nil || li.ItemCode == nil {
		return ""
	}
	return *li.ItemCode
}

func quantity(li *entity.LineItem) string {
	if li == nil || li.Quantity == nil {
		return ""
	}
	return li.Quantity.String()
}

func unitPrice(li *entity.LineItem) string {
	if li == nil || li.UnitPrice == nil {
		return ""
	}
	return li.UnitPrice.StringFixed(2)
}

func deliveryDate(li *entity.LineItem) string {
	if li == nil || li.DeliveryDate == nil {
		return ""
	}
	return *li.DeliveryDate
}

func differingFields(p *entity.MatchPair) string {
	if len(p.FieldDiffs) == 0 {
		return ""
	}
	fields := make([]string, 0, len(p.FieldDiffs))
	for k := range p.FieldDiffs {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return strings.Join(fields, ", ")
}
