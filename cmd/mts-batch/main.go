package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/fiscaldata/mts-tracker/internal/analysis"
	"github.com/fiscaldata/mts-tracker/internal/analysis/openai"
	"github.com/fiscaldata/mts-tracker/internal/common"
	"github.com/fiscaldata/mts-tracker/internal/compare"
	"github.com/fiscaldata/mts-tracker/internal/entity"
	"github.com/fiscaldata/mts-tracker/internal/export"
	"github.com/fiscaldata/mts-tracker/internal/extract"
	"github.com/fiscaldata/mts-tracker/internal/ingest"
	"github.com/fiscaldata/mts-tracker/internal/ocr"
	"github.com/fiscaldata/mts-tracker/internal/parse"
	"github.com/fiscaldata/mts-tracker/internal/pipeline"
	"github.com/fiscaldata/mts-tracker/internal/store"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir     = flag.String("dir", "", "statement directory (defaults to MTS_PDF_DIR)")
		out     = flag.String("out", "", "XLSX output path for the latest period's departments (optional)")
		force   = flag.Bool("force", false, "reprocess statements that already have artifacts")
		analyze = flag.Bool("analyze", false, "generate a narrative comparing the two latest periods")
		workers = flag.Int("workers", 0, "concurrent workers (defaults to MTS_WORKERS)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *dir != "" {
		cfg.Storage.PDFDir = *dir
	}
	if *workers > 0 {
		cfg.Server.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	st, err := store.New(cfg, logger)
	if err != nil {
		printError("Error: opening artifact store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	validator, err := store.NewValidator()
	if err != nil {
		printError("Error: compiling artifact schemas: %v\n", err)
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

	lister := ingest.NewLister(cfg.Storage.PDFDir, st, logger)
	entries, err := lister.List(ctx)
	if err != nil {
		printError("Error: listing statements: %v\n", err)
		os.Exit(1)
	}

	var pending []ingest.Entry
	for _, e := range entries {
		if e.Processed && !*force {
			logger.Info("batch.skip_processed", "id", e.ID)
			continue
		}
		pending = append(pending, e)
	}
	logger.Info("batch.start", "dir", cfg.Storage.PDFDir, "total", len(entries), "pending", len(pending))

	results := processAll(ctx, processor, pending, cfg.Server.Workers, logger)

	// The collection spans everything in the directory, including documents
	// processed on earlier runs.
	collection := entity.NewPeriodCollection()
	var latest, previous *pipeline.Result
	var unparsable int
	for _, e := range entries {
		res, ok := results[e.ID]
		if !ok {
			loaded, err := loadResult(ctx, st, e.ID)
			if err != nil {
				logger.Warn("batch.artifact_load_failed", "id", e.ID, "error", err)
				continue
			}
			res = loaded
		}
		if res.Document.Unparsable {
			unparsable++
			continue
		}
		collection.Add(res.Departments)
		previous = latest
		r := res
		latest = &r
	}

	summary := map[string]any{
		"statements":        len(entries),
		"processed":         len(results),
		"unparsable":        unparsable,
		"periods":           collection.Periods,
		"department_trends": compare.Trends(collection),
	}
	if latest != nil {
		ranked := compare.RankByRatio(latest.Departments.Departments)
		summary["latest_period"] = latest.Departments.Period
		summary["top_departments"] = compare.Top(ranked, 5)
		summary["bottom_departments"] = compare.Bottom(ranked, 5)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		printError("Error: writing summary: %v\n", err)
	}

	if *out != "" && latest != nil {
		set := latest.Departments
		set.Departments = compare.RankByRatio(set.Departments)
		data, err := export.NewService(logger).ExportDepartmentsXLSX(set)
		if err != nil {
			printError("Error: exporting departments: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			printError("Error: writing %s: %v\n", *out, err)
			os.Exit(1)
		}
		logger.Info("batch.export_written", "path", *out, "period", set.Period)
	}

	if *analyze && latest != nil {
		var comparison *entity.StatementDocument
		if previous != nil {
			comparison = previous.Document
		}
		sc := compare.Statements(latest.Document, comparison)
		analyzer := openai.NewClient(openai.Config{
			APIKey:      cfg.Analysis.APIKey,
			BaseURL:     cfg.Analysis.BaseURL,
			Model:       cfg.Analysis.Model,
			Temperature: cfg.Analysis.Temperature,
			MaxTokens:   cfg.Analysis.MaxTokens,
			Timeout:     cfg.Analysis.Timeout,
		}, logger)
		text, err := analyzer.Generate(ctx, analysis.Request{
			Type:       analysis.TypeBudgetComparison,
			Statements: &sc,
		})
		if err != nil {
			text = "Error generating analysis: " + err.Error()
		}
		fmt.Println(text)
	}
}

// processAll drains the pending entries through a fixed worker pool and
// returns per-id results. Unparsable documents come back as results; only
// collaborator failures are dropped (and logged).
func processAll(ctx context.Context, processor *pipeline.Processor, pending []ingest.Entry, workers int, logger *slog.Logger) map[string]pipeline.Result {
	if workers <= 0 {
		workers = 4
	}

	jobs := make(chan ingest.Entry)
	out := make(chan pipeline.Result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range jobs {
				res, err := processor.ProcessStatement(ctx, e.Path)
				if err != nil {
					logger.Error("batch.process_failed", "id", e.ID, "error", err)
					continue
				}
				out <- res
			}
		}()
	}

	go func() {
		for _, e := range pending {
			jobs <- e
		}
		close(jobs)
		wg.Wait()
		close(out)
	}()

	results := make(map[string]pipeline.Result, len(pending))
	for res := range out {
		results[res.ID] = res
	}
	return results
}

// loadResult rehydrates a prior run's artifacts from the store.
func loadResult(ctx context.Context, st store.Store, id string) (pipeline.Result, error) {
	docJSON, err := st.Get(ctx, id)
	if err != nil {
		return pipeline.Result{}, err
	}
	var doc entity.StatementDocument
	if err := json.Unmarshal(docJSON, &doc); err != nil {
		return pipeline.Result{}, err
	}

	deptJSON, err := st.Get(ctx, id+pipeline.DepartmentsSuffix)
	if err != nil {
		return pipeline.Result{}, err
	}
	var set entity.DepartmentSet
	if err := json.Unmarshal(deptJSON, &set); err != nil {
		return pipeline.Result{}, err
	}

	return pipeline.Result{ID: id, Document: &doc, Departments: set}, nil
}
