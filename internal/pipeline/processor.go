package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fiscaldata/mts-tracker/constants"
	"github.com/fiscaldata/mts-tracker/internal/entity"
	"github.com/fiscaldata/mts-tracker/internal/extract"
	"github.com/fiscaldata/mts-tracker/internal/parse"
	"github.com/fiscaldata/mts-tracker/internal/store"

	"github.com/fiscaldata/mts-tracker/internal/common"
)

// DepartmentsSuffix extends a statement id into its departments artifact key.
const DepartmentsSuffix = "_departments"

// TableLocator finds the summary table in a statement PDF. Satisfied by
// *extract.Locator; stubbed in tests.
type TableLocator interface {
	Locate(ctx context.Context, path string) (extract.TextSource, error)
}

// Result is one document's processing outcome. Departments may be empty even
// for a parsed statement: the department table lives on other pages and its
// rows are recovered independently.
type Result struct {
	ID          string
	Document    *entity.StatementDocument
	Departments entity.DepartmentSet
	Method      string
}

// Processor runs the full per-document pipeline: locate the table, resolve
// the period, assemble sections, extract departments, validate and persist
// both artifacts.
type Processor struct {
	locator   TableLocator
	assembler *parse.Assembler
	store     store.Store
	validator *store.Validator
	logger    *slog.Logger

	departments     []string
	emitPlaceholder bool
}

func NewProcessor(locator TableLocator, assembler *parse.Assembler, st store.Store, validator *store.Validator, emitPlaceholder bool, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		locator:         locator,
		assembler:       assembler,
		store:           st,
		validator:       validator,
		logger:          logger,
		departments:     constants.Departments,
		emitPlaceholder: emitPlaceholder,
	}
}

// ProcessStatement processes one PDF. An unparsable document is not an error:
// a marked artifact is persisted so the document is visibly accounted for and
// the caller can keep going. Collaborator failures (OCR, store) do fail.
func (p *Processor) ProcessStatement(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	filename := filepath.Base(path)
	id := constants.StatementID(filename)
	p.logger.Info("process.start", "id", id, "path", path)

	src, err := p.locator.Locate(ctx, path)
	if err != nil {
		if errors.Is(err, common.ErrUnparsable) {
			return p.storeUnparsable(ctx, id, filename, path, src)
		}
		p.logger.Error("process.locate_failed", "id", id, "error", err)
		return Result{}, err
	}

	month, year := parse.ResolvePeriod(src.FrontText, filename)
	title, author := extract.DocInfo(path)
	metadata := entity.Metadata{
		Filename:  filename,
		Title:     title,
		Author:    author,
		Month:     month,
		Year:      year,
		PageCount: src.PageCount,
	}

	sections := p.assembler.Assemble(src.Lines)
	if len(sections.Receipts) == 0 && len(sections.Outlays) == 0 {
		p.logger.Warn("process.no_rows_recovered", "id", id, "page", src.Page, "method", src.Method)
		return p.storeUnparsable(ctx, id, filename, path, src)
	}

	doc := &entity.StatementDocument{Metadata: metadata, Sections: sections}
	departments := entity.DepartmentSet{
		Period:      metadata.Period(),
		Month:       month,
		Year:        year,
		Departments: parse.ExtractDepartments(src.Raw, p.departments, p.logger),
	}

	if err := p.persist(ctx, id, doc, departments); err != nil {
		return Result{}, err
	}

	p.logger.Info("process.done",
		"id", id,
		"period", metadata.Period(),
		"method", src.Method,
		"receipts", len(sections.Receipts),
		"outlays", len(sections.Outlays),
		"departments", len(departments.Departments),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return Result{ID: id, Document: doc, Departments: departments, Method: src.Method}, nil
}

// storeUnparsable persists the marked artifact for a document no strategy
// could read. Placeholder rows are emitted only when configured; the default
// is an honest empty document.
func (p *Processor) storeUnparsable(ctx context.Context, id, filename, path string, src extract.TextSource) (Result, error) {
	month, year := parse.ResolvePeriod(src.FrontText, filename)
	title, author := extract.DocInfo(path)
	metadata := entity.Metadata{
		Filename:  filename,
		Title:     title,
		Author:    author,
		Month:     month,
		Year:      year,
		PageCount: src.PageCount,
	}

	doc := unparsableDocument(metadata, p.emitPlaceholder)
	departments := entity.DepartmentSet{
		Period:      metadata.Period(),
		Month:       month,
		Year:        year,
		Departments: []entity.DepartmentRecord{},
	}
	if err := p.persist(ctx, id, doc, departments); err != nil {
		return Result{}, err
	}

	p.logger.Warn("process.unparsable", "id", id, "placeholder", p.emitPlaceholder)
	return Result{ID: id, Document: doc, Departments: departments}, nil
}

func (p *Processor) persist(ctx context.Context, id string, doc *entity.StatementDocument, departments entity.DepartmentSet) error {
	if doc.Sections.Receipts == nil {
		doc.Sections.Receipts = []entity.CategoryRecord{}
	}
	if doc.Sections.Outlays == nil {
		doc.Sections.Outlays = []entity.CategoryRecord{}
	}
	if departments.Departments == nil {
		departments.Departments = []entity.DepartmentRecord{}
	}

	docJSON, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal statement %s: %w", id, err)
	}
	if err := p.validator.ValidateStatement(docJSON); err != nil {
		return fmt.Errorf("statement %s: %w", id, err)
	}

	deptJSON, err := json.MarshalIndent(departments, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal departments %s: %w", id, err)
	}
	if err := p.validator.ValidateDepartments(deptJSON); err != nil {
		return fmt.Errorf("departments %s: %w", id, err)
	}

	if err := p.store.Put(ctx, id, docJSON); err != nil {
		return err
	}
	return p.store.Put(ctx, id+DepartmentsSuffix, deptJSON)
}
