package dataprocessing

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"campaignlens/pkg/contracts/domain"
)

// Format identifies the upload file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Processor runs the campaign analysis pipeline: parse, normalize,
// categorize, aggregate, flag outliers. Each run operates on its own
// private dataset; the processor itself holds no per-run state.
type Processor struct {
	logger *slog.Logger
}

// NewProcessor creates a pipeline processor.
func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger: logger.With(slog.String("component", "processor")),
	}
}

// Run executes the full pipeline over one uploaded file. The stages run
// strictly forward with no feedback loop; a failure in any stage aborts the
// run with zero output rows.
func (p *Processor) Run(ctx context.Context, r io.Reader, format Format) (*domain.Dataset, error) {
	table, err := p.parse(r, format)
	if err != nil {
		p.logger.ErrorContext(ctx, "parse failed",
			slog.String("format", string(format)),
			slog.String("error", err.Error()))
		return nil, err
	}

	records, err := BuildRecords(table)
	if err != nil {
		p.logger.ErrorContext(ctx, "normalization failed",
			slog.String("error", err.Error()))
		return nil, err
	}

	bounds := FlagOutliers(records)

	dataset := &domain.Dataset{
		Records:      records,
		Summaries:    Summarize(records),
		BoxPlotOrder: MedianOrder(records),
		Bounds:       bounds,
	}

	p.logger.InfoContext(ctx, "pipeline completed",
		slog.Int("records", len(dataset.Records)),
		slog.Int("groups", len(dataset.Summaries)))

	return dataset, nil
}

func (p *Processor) parse(r io.Reader, format Format) (*RawTable, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(r)
	case FormatXLSX:
		return ParseWorkbook(r)
	default:
		return nil, fmt.Errorf("unsupported input format: %q", format)
	}
}

// BuildCharts assembles the chart payloads the dashboard frontend renders
// verbatim. Bar categories follow the summary order; box plot series follow
// the independently computed median order.
func BuildCharts(dataset *domain.Dataset) domain.Charts {
	bar := domain.BarChart{
		Title:      "Average Open Rate by Campaign Group",
		Categories: dataset.SummaryOrder(),
		Values:     make([]float64, 0, len(dataset.Summaries)),
	}
	for _, s := range dataset.Summaries {
		bar.Values = append(bar.Values, s.MeanOpenRate)
	}

	box := domain.BoxPlot{
		Title:  "Distribution of Open Rates by Campaign Group",
		Series: make([]domain.BoxPlotSeries, 0, len(dataset.BoxPlotOrder)),
	}
	for _, label := range dataset.BoxPlotOrder {
		rates := GroupRates(dataset.Records, label)
		box.Series = append(box.Series, domain.BoxPlotSeries{
			Group:  label,
			Values: rates,
			Median: median(rates),
		})
	}

	scatter := domain.ScatterPlot{
		Title:  "Open Rate by Send Date",
		Points: make([]domain.ScatterPoint, 0, len(dataset.Records)),
	}
	for _, r := range dataset.Records {
		scatter.Points = append(scatter.Points, domain.ScatterPoint{
			SendDate:  r.SendDate,
			OpenRate:  r.OpenRate,
			Group:     r.Group,
			IsOutlier: r.IsOutlier,
		})
	}

	return domain.Charts{Bar: bar, Box: box, Scatter: scatter}
}
