package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dvoronin/iaa/internal/anomaly"
	"github.com/dvoronin/iaa/internal/bigquery"
	"github.com/dvoronin/iaa/internal/categorize"
	"github.com/dvoronin/iaa/internal/config"
	"github.com/dvoronin/iaa/internal/docai"
	"github.com/dvoronin/iaa/internal/gcs"
	"github.com/dvoronin/iaa/internal/logger"
	"github.com/dvoronin/iaa/internal/mapper"
	"github.com/dvoronin/iaa/internal/pipeline"
	"github.com/dvoronin/iaa/internal/report"
)

func main() {
	var (
		filePath   = flag.String("file", "", "Path to the local document (PDF, PNG or JPEG)")
		docType    = flag.String("type", "", "Document type: invoice, receipt, w2 or seller-statement")
		load       = flag.Bool("load", false, "Map entities to a canonical transaction and load it into BigQuery")
		xlsx       = flag.Bool("xlsx", false, "Also write the detail report as an XLSX workbook")
		categorise = flag.Bool("categorize", false, "Ask the model for a category suggestion (implies -load fields)")
	)
	flag.Parse()

	log := logger.New()

	if *filePath == "" || *docType == "" {
		fmt.Fprintln(os.Stderr, "Usage: process -file PATH -type TYPE [-load] [-xlsx] [-categorize]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	processor, err := docai.NewClient(ctx, cfg.Location)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create document-understanding client")
	}
	defer processor.Close()

	controller := pipeline.NewController(cfg, gcs.NewClient(cfg.RawBucket), processor)

	res, err := controller.Process(ctx, *filePath, *docType)
	if err != nil {
		log.Fatal().Err(err).Str("file", *filePath).Msg("Processing failed")
	}
	log.Info().
		Str("document", res.DocumentName).
		Str("category", res.Category.String()).
		Int("rows", len(res.Rows)).
		Msg("Extraction complete")

	writer := report.NewWriter(cfg.OutputDir)
	detailPath, err := writer.WriteDetailCSV(res.Rows, res.DocumentName, res.Category)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to write detail report")
	}
	log.Info().Str("path", detailPath).Msg("Detail CSV written")

	summaryPath, err := writer.AppendSummaryCSV(detailPath, res.DocumentName, res.Category, res.Rows)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to update summary report")
	}
	log.Info().Str("path", summaryPath).Msg("Summary CSV updated")

	if *xlsx {
		xlsxPath, err := writer.WriteDetailXLSX(res.Rows, res.DocumentName, res.Category)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to write XLSX report")
		}
		log.Info().Str("path", xlsxPath).Msg("Detail XLSX written")
	}

	if !*load && !*categorise {
		return
	}

	tx := mapper.MapEntities(ctx, res.Document.Entities, res.Document.Text, res.SourceURI, res.Category.String())

	if err := anomaly.Apply(ctx, anomaly.StaticScorer{}, tx); err != nil {
		log.Fatal().Err(err).Msg("Anomaly screening failed")
	}

	if *categorise {
		suggestion, err := categorize.NewGeminiSuggester().Suggest(ctx, tx)
		if err != nil {
			log.Warn().Err(err).Msg("Category suggestion failed, continuing without one")
		} else {
			tx.CategorizationAISuggested = &suggestion
			log.Info().Str("category", suggestion).Msg("Category suggested")
		}
	}

	if *load {
		loader, err := bigquery.NewLoader(ctx, cfg.ProjectID, cfg.Dataset, cfg.TransactionsTable)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create BigQuery loader")
		}
		defer loader.Close()

		if err := loader.EnsureDataset(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to ensure dataset")
		}
		rows := []*bigquery.TransactionRow{bigquery.RowFromCanonical(tx)}
		if err := loader.InsertTransactions(ctx, rows); err != nil {
			log.Fatal().Err(err).Msg("Failed to load transaction")
		}
		log.Info().Str("document_id", tx.DocumentID).Msg("Transaction loaded")
	}
}
