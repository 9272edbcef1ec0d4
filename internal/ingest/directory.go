package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fiscaldata/mts-tracker/constants"
	"github.com/fiscaldata/mts-tracker/internal/common"
	"github.com/fiscaldata/mts-tracker/internal/parse"
	"github.com/fiscaldata/mts-tracker/internal/store"
)

// Entry is one statement PDF discovered in the source directory, with its
// processing state looked up from the artifact store.
type Entry struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Path      string `json:"-"`
	Month     string `json:"month"`
	Year      string `json:"year"`
	Processed bool   `json:"processed"`
}

// Lister enumerates statement files in a fixed directory. The filesystem is
// the source of truth for what exists; the store only says what has been
// processed.
type Lister struct {
	dir    string
	store  store.Store
	logger *slog.Logger
}

func NewLister(dir string, st store.Store, logger *slog.Logger) *Lister {
	if logger == nil {
		logger = slog.Default()
	}
	return &Lister{dir: dir, store: st, logger: logger}
}

// List returns every statement file in the directory, sorted by filename.
// Non-statement files are skipped silently.
func (l *Lister) List(ctx context.Context) ([]Entry, error) {
	dirEntries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("reading statement dir %q: %w", l.dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		if strings.HasPrefix(name, ".") || !constants.IsStatementFile(name) {
			continue
		}

		id := constants.StatementID(name)
		processed, err := l.store.Exists(ctx, id)
		if err != nil {
			l.logger.Warn("ingest.state_lookup_failed", "id", id, "error", err)
		}
		month, year := parse.ResolvePeriod("", name)
		entries = append(entries, Entry{
			ID:        id,
			Filename:  name,
			Path:      filepath.Join(l.dir, name),
			Month:     month,
			Year:      year,
			Processed: processed,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Filename < entries[j].Filename })
	l.logger.Debug("ingest.listed", "dir", l.dir, "count", len(entries))
	return entries, nil
}

// Resolve maps a statement id back to its PDF path.
func (l *Lister) Resolve(ctx context.Context, id string) (Entry, error) {
	entries, err := l.List(ctx)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, common.WrapError(common.ErrNotFound, "statement "+id, nil)
}
