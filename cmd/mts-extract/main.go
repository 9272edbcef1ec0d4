package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/fiscaldata/mts-tracker/internal/common"
	"github.com/fiscaldata/mts-tracker/internal/extract"
	"github.com/fiscaldata/mts-tracker/internal/ocr"
	"github.com/fiscaldata/mts-tracker/internal/parse"
	"github.com/fiscaldata/mts-tracker/internal/pipeline"
	"github.com/fiscaldata/mts-tracker/internal/store"
)

// Extracts a single statement PDF, persists its artifacts, and prints the
// statement JSON to stdout. Handy for inspecting one document without the
// server or a batch run.
func main() {
	var (
		file  = flag.String("file", "", "statement PDF to extract (required)")
		page  = flag.Int("page", -1, "0-indexed table page override")
		quiet = flag.Bool("quiet", false, "suppress progress logs")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *quiet {
		level = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *page >= 0 {
		cfg.Extract.PageIndex = *page
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	st, err := store.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening artifact store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	validator, err := store.NewValidator()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: compiling artifact schemas: %v\n", err)
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

	res, err := processor.ProcessStatement(context.Background(), *file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: processing %s: %v\n", *file, err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Document); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing output: %v\n", err)
		os.Exit(1)
	}
	if res.Document.Unparsable {
		os.Exit(2)
	}
}
