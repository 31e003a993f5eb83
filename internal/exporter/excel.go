package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"campaignlens/pkg/contracts/domain"
)

// Sheet names in the exported workbook.
const (
	SheetCampaigns = "Campaigns"
	SheetSummary   = "Group Summary"
)

// ExcelWriter writes both output tables into one XLSX workbook, one sheet
// per table.
type ExcelWriter struct {
	outputDir string
	logger    *slog.Logger
}

// NewExcelWriter creates an Excel writer rooted at the reports output
// directory.
func NewExcelWriter(outputDir string, logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{
		outputDir: outputDir,
		logger:    logger.With(slog.String("component", "excel_exporter")),
	}
}

// WriteWorkbook writes the row-level and summary tables to the given
// filename under the output directory and returns the full path.
func (w *ExcelWriter) WriteWorkbook(filename string, dataset *domain.Dataset) (string, error) {
	fullPath := filepath.Join(w.outputDir, filename)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetCampaigns); err != nil {
		return "", fmt.Errorf("failed to name campaigns sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return "", fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if err := w.writeCampaignSheet(f, dataset.Records); err != nil {
		return "", err
	}
	if err := w.writeSummarySheet(f, dataset.Summaries); err != nil {
		return "", err
	}

	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("XLSX report written",
		slog.String("path", fullPath),
		slog.Int("records", len(dataset.Records)),
		slog.Int("groups", len(dataset.Summaries)))

	return fullPath, nil
}

func (w *ExcelWriter) writeCampaignSheet(f *excelize.File, records []domain.CampaignRecord) error {
	headers := make([]interface{}, len(domain.RowTableColumns))
	for i, h := range domain.RowTableColumns {
		headers[i] = h
	}
	if err := f.SetSheetRow(SheetCampaigns, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write campaign headers: %w", err)
	}

	for i, r := range records {
		row := []interface{}{
			string(r.Group),
			r.Name,
			r.Subject,
			formatOpenRate(r.OpenRate),
			r.SendDate,
			r.CampaignURL,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(SheetCampaigns, cell, &row); err != nil {
			return fmt.Errorf("failed to write campaign row %d: %w", i+2, err)
		}
	}
	return nil
}

func (w *ExcelWriter) writeSummarySheet(f *excelize.File, summaries []domain.GroupSummary) error {
	headers := make([]interface{}, len(domain.SummaryTableColumns))
	for i, h := range domain.SummaryTableColumns {
		headers[i] = h
	}
	if err := f.SetSheetRow(SheetSummary, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write summary headers: %w", err)
	}

	for i, s := range summaries {
		row := []interface{}{
			string(s.Group),
			formatOpenRate(s.MeanOpenRate),
			formatOpenRate(s.MedianOpenRate),
			s.CampaignCount,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+2, err)
		}
	}
	return nil
}
