package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/fiscaldata/mts-tracker/internal/analysis/openai"
	"github.com/fiscaldata/mts-tracker/internal/common"
	"github.com/fiscaldata/mts-tracker/internal/export"
	"github.com/fiscaldata/mts-tracker/internal/extract"
	"github.com/fiscaldata/mts-tracker/internal/ingest"
	"github.com/fiscaldata/mts-tracker/internal/ocr"
	"github.com/fiscaldata/mts-tracker/internal/parse"
	"github.com/fiscaldata/mts-tracker/internal/pipeline"
	"github.com/fiscaldata/mts-tracker/internal/server"
	"github.com/fiscaldata/mts-tracker/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	st, err := store.New(cfg, logger)
	if err != nil {
		logger.Error("failed to open artifact store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()

	validator, err := store.NewValidator()
	if err != nil {
		logger.Error("failed to compile artifact schemas", "error", err)
		os.Exit(1)
	}

	reader := ocr.NewPageReader(ocr.Config{
		Pdftoppm:    cfg.OCR.Pdftoppm,
		Language:    cfg.OCR.Language,
		DPI:         cfg.OCR.DPI,
		TessdataDir: cfg.OCR.TessdataDir,
	}, logger)
	locator := extract.NewLocator(extract.Config{
		PageIndex: cfg.Extract.PageIndex,
		Marker:    cfg.Extract.TableMarker,
	}, reader, logger)

	classifier := parse.NewClassifier(parse.DefaultConfig(), logger)
	assembler := parse.NewAssembler(classifier, logger)
	processor := pipeline.NewProcessor(locator, assembler, st, validator, cfg.Extract.EmitPlaceholder, logger)

	queue := pipeline.NewProcessorQueue(processor, logger,
		pipeline.WithWorkers(cfg.Server.Workers),
		pipeline.WithQueueSize(cfg.Server.QueueSize),
	)

	lister := ingest.NewLister(cfg.Storage.PDFDir, st, logger)
	exporter := export.NewService(logger)
	analyzer := openai.NewClient(openai.Config{
		APIKey:      cfg.Analysis.APIKey,
		BaseURL:     cfg.Analysis.BaseURL,
		Model:       cfg.Analysis.Model,
		Temperature: cfg.Analysis.Temperature,
		MaxTokens:   cfg.Analysis.MaxTokens,
		Timeout:     cfg.Analysis.Timeout,
	}, logger)

	handler := server.NewHandler(lister, st, queue, exporter, analyzer, logger)
	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, handler, logger)

	err = api.Start()

	drainCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	queue.Shutdown(drainCtx)
	cancel()

	if err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}
