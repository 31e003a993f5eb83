package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"campaignlens/pkg/contracts/domain"
)

// CSVWriter writes the dashboard's two output tables as CSV report files.
type CSVWriter struct {
	outputDir string
	logger    *slog.Logger
}

// NewCSVWriter creates a CSV writer rooted at the reports output directory.
func NewCSVWriter(outputDir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		outputDir: outputDir,
		logger:    logger.With(slog.String("component", "csv_exporter")),
	}
}

// WriteRows writes the row-level table to the given filename under the
// output directory and returns the full path.
func (w *CSVWriter) WriteRows(filename string, records []domain.CampaignRecord) (string, error) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			string(r.Group),
			r.Name,
			r.Subject,
			formatOpenRate(r.OpenRate),
			r.SendDate,
			r.CampaignURL,
		})
	}
	return w.write(filename, domain.RowTableColumns, rows)
}

// WriteSummary writes the group-summary table to the given filename under
// the output directory and returns the full path.
func (w *CSVWriter) WriteSummary(filename string, summaries []domain.GroupSummary) (string, error) {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			string(s.Group),
			formatOpenRate(s.MeanOpenRate),
			formatOpenRate(s.MedianOpenRate),
			formatInt(s.CampaignCount),
		})
	}
	return w.write(filename, domain.SummaryTableColumns, rows)
}

func (w *CSVWriter) write(filename string, headers []string, rows [][]string) (string, error) {
	fullPath := filepath.Join(w.outputDir, filename)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// UTF-8 BOM so Excel opens the file correctly.
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return "", fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("failed to write headers: %w", err)
	}

	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	w.logger.Info("CSV report written",
		slog.String("path", fullPath),
		slog.Int("records", len(rows)))

	return fullPath, nil
}
