package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"campaignlens/internal/dataprocessing"
	"campaignlens/internal/infrastructure"
	"campaignlens/pkg/contracts/domain"
)

// DashboardService runs the analysis pipeline over uploaded campaign exports
// and answers group filter queries against the result. It is stateless across
// uploads; every call to Analyze produces a fresh dataset.
type DashboardService struct {
	processor *dataprocessing.Processor
	logger    *slog.Logger
	metrics   *infrastructure.Metrics
	tracer    trace.Tracer
}

// NewDashboardService creates a dashboard service. Metrics and tracer may be
// nil, in which case instrumentation is skipped.
func NewDashboardService(logger *slog.Logger, metrics *infrastructure.Metrics, tracer trace.Tracer) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("dashboard")
	}
	return &DashboardService{
		processor: dataprocessing.NewProcessor(logger),
		logger:    logger.With(slog.String("service", "dashboard")),
		metrics:   metrics,
		tracer:    tracer,
	}
}

// DetectFormat maps a filename extension to an input format.
func DetectFormat(filename string) (dataprocessing.Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return dataprocessing.FormatCSV, nil
	case ".xlsx":
		return dataprocessing.FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// Analyze runs the full pipeline over one upload and returns the analyzed
// dataset. An upload with a header but no data rows yields ErrEmptyDataset.
func (s *DashboardService) Analyze(ctx context.Context, r io.Reader, format dataprocessing.Format) (*domain.Dataset, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.analyze",
		trace.WithAttributes(attribute.String("format", string(format))))
	defer span.End()

	start := time.Now()

	dataset, err := s.processor.Run(ctx, r, format)

	if s.metrics != nil {
		attrs := metric.WithAttributes(attribute.String("format", string(format)))
		s.metrics.UploadsTotal.Add(ctx, 1, attrs)
		s.metrics.PipelineDuration.Record(ctx, time.Since(start).Seconds(), attrs)
		if err != nil {
			s.metrics.PipelineErrors.Add(ctx, 1, attrs)
		}
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pipeline failed")
		return nil, err
	}

	if len(dataset.Records) == 0 {
		span.SetStatus(codes.Error, "empty dataset")
		return nil, ErrEmptyDataset
	}

	if s.metrics != nil {
		s.metrics.UploadRowsProcessed.Add(ctx, int64(len(dataset.Records)))
	}

	span.SetAttributes(
		attribute.Int("records", len(dataset.Records)),
		attribute.Int("groups", len(dataset.Summaries)),
	)

	s.logger.InfoContext(ctx, "upload analyzed",
		slog.Int("records", len(dataset.Records)),
		slog.Int("groups", len(dataset.Summaries)))

	return dataset, nil
}

// Charts builds the render-ready chart payloads for a dataset.
func (s *DashboardService) Charts(dataset *domain.Dataset) domain.Charts {
	return dataprocessing.BuildCharts(dataset)
}

// FilterRows returns the rows for one group together with descriptive
// statistics recomputed over that subset. Outlier flags are NOT recomputed;
// they always reflect the whole dataset's fences.
func (s *DashboardService) FilterRows(dataset *domain.Dataset, group domain.GroupLabel) ([]domain.CampaignRecord, dataprocessing.DescriptiveStats, error) {
	if !group.Valid() {
		return nil, dataprocessing.DescriptiveStats{}, fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}

	rows := make([]domain.CampaignRecord, 0)
	for _, r := range dataset.Records {
		if r.Group == group {
			rows = append(rows, r)
		}
	}

	stats := dataprocessing.Describe(rows)
	return rows, stats, nil
}

// Groups returns every group label a filter may name, in fixed order.
func (s *DashboardService) Groups() []domain.GroupLabel {
	return domain.AllGroups()
}
