package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fiscaldata/mts-tracker/constants"
	"github.com/fiscaldata/mts-tracker/internal/analysis"
	"github.com/fiscaldata/mts-tracker/internal/common"
	"github.com/fiscaldata/mts-tracker/internal/compare"
	"github.com/fiscaldata/mts-tracker/internal/entity"
	"github.com/fiscaldata/mts-tracker/internal/export"
	"github.com/fiscaldata/mts-tracker/internal/ingest"
	"github.com/fiscaldata/mts-tracker/internal/pipeline"
	"github.com/fiscaldata/mts-tracker/internal/store"
)

// rankDepth is how many departments the top/bottom summaries carry.
const rankDepth = 5

// Handler serves the REST surface over the artifact store and the processing
// queue.
type Handler struct {
	lister   *ingest.Lister
	store    store.Store
	queue    pipeline.Queue
	export   *export.Service
	analyzer analysis.Analyzer
	logger   *slog.Logger
}

func NewHandler(lister *ingest.Lister, st store.Store, queue pipeline.Queue, exp *export.Service, analyzer analysis.Analyzer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		lister:   lister,
		store:    st,
		queue:    queue,
		export:   exp,
		analyzer: analyzer,
		logger:   logger,
	}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListStatements(w http.ResponseWriter, r *http.Request) {
	entries, err := h.lister.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"statements": entries,
		"count":      len(entries),
	})
}

func (h *Handler) GetStatement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeRawJSON(w, http.StatusOK, data)
}

func (h *Handler) ProcessStatement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	force := r.URL.Query().Get("force") == "true"

	entry, err := h.lister.Resolve(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if entry.Processed && !force {
		writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(constants.JobStatusDone)})
		return
	}

	traceID := uuid.New().String()
	if err := h.queue.Enqueue(r.Context(), pipeline.Job{
		ID:          entry.ID,
		Path:        entry.Path,
		Force:       force,
		SubmittedAt: time.Now(),
		TraceID:     traceID,
	}); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"id":       id,
		"status":   string(constants.JobStatusQueued),
		"trace_id": traceID,
	})
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	primaryID := r.URL.Query().Get("primary")
	if primaryID == "" {
		writeError(w, h.logger, common.WrapError(common.ErrInvalidInput, "primary query parameter is required", nil))
		return
	}

	primary, err := h.loadStatement(r.Context(), primaryID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var comparison *entity.StatementDocument
	if comparisonID := r.URL.Query().Get("comparison"); comparisonID != "" {
		comparison, err = h.loadComparisonStatement(r.Context(), comparisonID)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, compare.Statements(primary, comparison))
}

func (h *Handler) Departments(w http.ResponseWriter, r *http.Request) {
	primary, comparison, err := h.departmentSets(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, compare.Departments(*primary, comparison, rankDepth))
}

func (h *Handler) ExportDepartments(w http.ResponseWriter, r *http.Request) {
	primaryID := r.URL.Query().Get("primary")
	if primaryID == "" {
		writeError(w, h.logger, common.WrapError(common.ErrInvalidInput, "primary query parameter is required", nil))
		return
	}

	set, err := h.loadDepartments(r.Context(), primaryID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	set.Departments = compare.RankByRatio(set.Departments)

	data, err := h.export.ExportDepartmentsXLSX(*set)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", primaryID+"_departments.xlsx"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("http.write_failed", "error", err)
	}
}

func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	analysisType := r.URL.Query().Get("type")
	req := analysis.Request{Type: analysisType}

	switch analysisType {
	case analysis.TypeDepartmentComparison:
		primary, comparison, err := h.departmentSets(r)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		dc := compare.Departments(*primary, comparison, rankDepth)
		req.Departments = &dc
	default:
		primaryID := r.URL.Query().Get("primary")
		if primaryID == "" {
			writeError(w, h.logger, common.WrapError(common.ErrInvalidInput, "primary query parameter is required", nil))
			return
		}
		primary, err := h.loadStatement(r.Context(), primaryID)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		var comparison *entity.StatementDocument
		if comparisonID := r.URL.Query().Get("comparison"); comparisonID != "" {
			comparison, err = h.loadComparisonStatement(r.Context(), comparisonID)
			if err != nil {
				writeError(w, h.logger, err)
				return
			}
		}
		sc := compare.Statements(primary, comparison)
		req.Statements = &sc
	}

	// Generation failures degrade into the payload: the comparison data the
	// narrative was meant to describe is still useful without it.
	text, err := h.analyzer.Generate(r.Context(), req)
	if err != nil {
		h.logger.Error("analysis.degraded", "error", err)
		text = "Error generating analysis: " + err.Error()
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"type":     analysisType,
		"analysis": text,
	})
}

func (h *Handler) departmentSets(r *http.Request) (*entity.DepartmentSet, *entity.DepartmentSet, error) {
	primaryID := r.URL.Query().Get("primary")
	if primaryID == "" {
		return nil, nil, common.WrapError(common.ErrInvalidInput, "primary query parameter is required", nil)
	}
	primary, err := h.loadDepartments(r.Context(), primaryID)
	if err != nil {
		return nil, nil, err
	}
	var comparison *entity.DepartmentSet
	if comparisonID := r.URL.Query().Get("comparison"); comparisonID != "" {
		comparison, err = h.loadDepartments(r.Context(), comparisonID)
		if err != nil {
			if !errors.Is(err, common.ErrNotFound) {
				return nil, nil, err
			}
			h.logger.Warn("compare.comparison_missing", "id", comparisonID)
			comparison = nil
		}
	}
	return primary, comparison, nil
}

// loadComparisonStatement tolerates an absent comparison artifact: the primary
// period still renders, with the comparison fields left absent.
func (h *Handler) loadComparisonStatement(ctx context.Context, id string) (*entity.StatementDocument, error) {
	doc, err := h.loadStatement(ctx, id)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		h.logger.Warn("compare.comparison_missing", "id", id)
		return nil, nil
	}
	return doc, nil
}

func (h *Handler) loadStatement(ctx context.Context, id string) (*entity.StatementDocument, error) {
	data, err := h.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var doc entity.StatementDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, common.WrapError(common.ErrInternal, "decode statement "+id, err)
	}
	return &doc, nil
}

func (h *Handler) loadDepartments(ctx context.Context, id string) (*entity.DepartmentSet, error) {
	data, err := h.store.Get(ctx, id+pipeline.DepartmentsSuffix)
	if err != nil {
		return nil, err
	}
	var set entity.DepartmentSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, common.WrapError(common.ErrInternal, "decode departments "+id, err)
	}
	return &set, nil
}
