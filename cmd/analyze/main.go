package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"campaignlens/internal/config"
	"campaignlens/internal/exporter"
	"campaignlens/internal/infrastructure"
	"campaignlens/internal/services"
	"campaignlens/internal/validation"
)

func main() {
	inFile := flag.String("in", "", "campaign export to analyze (.csv or .xlsx)")
	outDir := flag.String("out", "", "output directory for reports (defaults to config)")
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze -in <file.csv|file.xlsx> [-out <dir>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if *outDir == "" {
		*outDir = cfg.Reports.OutputDir
	}

	if err := run(logger, cfg, *inFile, *outDir); err != nil {
		logger.Error("Analysis failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, cfg *config.Config, inFile, outDir string) error {
	ctx := context.Background()

	fileValidator := validation.NewFileValidator(logger,
		cfg.Upload.AllowedExtensions, cfg.Upload.MaxSizeBytes)
	if err := fileValidator.ValidateInputFile(inFile); err != nil {
		return err
	}
	if err := fileValidator.ValidateOutputDirectory(outDir); err != nil {
		return err
	}

	format, err := services.DetectFormat(inFile)
	if err != nil {
		return err
	}

	file, err := os.Open(inFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	svc := services.NewDashboardService(logger, nil, nil)
	dataset, err := svc.Analyze(ctx, file, format)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(inFile), filepath.Ext(inFile))

	csvWriter := exporter.NewCSVWriter(outDir, logger)
	rowsPath, err := csvWriter.WriteRows(base+"_campaigns.csv", dataset.Records)
	if err != nil {
		return err
	}
	summaryPath, err := csvWriter.WriteSummary(base+"_summary.csv", dataset.Summaries)
	if err != nil {
		return err
	}

	excelWriter := exporter.NewExcelWriter(outDir, logger)
	workbookPath, err := excelWriter.WriteWorkbook(base+"_report.xlsx", dataset)
	if err != nil {
		return err
	}

	logger.Info("Reports written",
		slog.Int("records", len(dataset.Records)),
		slog.Int("groups", len(dataset.Summaries)),
		slog.String("rows_csv", rowsPath),
		slog.String("summary_csv", summaryPath),
		slog.String("workbook", workbookPath))

	return nil
}
