package parse

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/fiscaldata/mts-tracker/constants"
	"github.com/fiscaldata/mts-tracker/internal/entity"
)

// Kind tags the outcome of classifying one recovered line.
type Kind int

const (
	// KindUnmatched lines are dropped: headers, page numbers and footnotes
	// do not correspond to data rows, so this is policy, not an error.
	KindUnmatched Kind = iota
	KindSectionMarker
	KindRecord
)

// Result is the tagged outcome of Classify.
type Result struct {
	Kind    Kind
	Section constants.Section      // set when Kind == KindSectionMarker
	Record  *entity.CategoryRecord // set when Kind == KindRecord
}

// Config carries the marker phrases and known category names. Injected rather
// than hard-coded so fixtures can substitute their own vocabulary.
type Config struct {
	ReceiptMarkers    []string
	OutlayMarkers     []string
	ReceiptCategories []string
	OutlayCategories  []string
}

// DefaultConfig returns the vocabulary of the Treasury statement family.
func DefaultConfig() Config {
	return Config{
		ReceiptMarkers:    []string{"Budget Receipts"},
		OutlayMarkers:     []string{"Budget Outlays"},
		ReceiptCategories: constants.ReceiptCategories,
		OutlayCategories:  constants.OutlayCategories,
	}
}

// Row patterns, most specific first. Each captures a free-text label followed
// by four or three numeric groups; classification stops at the first pattern
// matching the whole line. Numeric groups are unsigned, which keeps record
// fields structurally non-negative.
var rowPatterns = []*regexp.Regexp{
	// comma-grouped numbers, four columns
	regexp.MustCompile(`^(.+?)\s+(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s+(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s+(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s+(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*$`),
	// comma-grouped numbers, three columns
	regexp.MustCompile(`^(.+?)\s+(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s+(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s+(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*$`),
	// plain numbers, four columns
	regexp.MustCompile(`^(.+?)\s+(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)\s*$`),
	// plain numbers, three columns
	regexp.MustCompile(`^(.+?)\s+(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)\s*$`),
	// loose digit/comma/decimal runs for noisy OCR lines
	regexp.MustCompile(`^(.+?)\s+(\d[\d,.]*)\s+(\d[\d,.]*)\s+(\d[\d,.]*)\s*$`),
}

// Classifier decides, one line at a time, whether a line opens a section,
// carries a data row, or is noise.
type Classifier struct {
	cfg    Config
	known  []string
	logger *slog.Logger
}

func NewClassifier(cfg Config, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	known := make([]string, 0, len(cfg.ReceiptCategories)+len(cfg.OutlayCategories))
	known = append(known, cfg.ReceiptCategories...)
	known = append(known, cfg.OutlayCategories...)
	return &Classifier{cfg: cfg, known: known, logger: logger}
}

// Classify inspects one recovered line. Marker lines never also yield a
// record; lines matching neither a marker nor a row pattern are Unmatched.
func (c *Classifier) Classify(line string) Result {
	line = strings.TrimSpace(line)
	if line == "" {
		return Result{Kind: KindUnmatched}
	}

	if containsAny(line, c.cfg.ReceiptMarkers) {
		return Result{Kind: KindSectionMarker, Section: constants.SectionReceipts}
	}
	if containsAny(line, c.cfg.OutlayMarkers) {
		return Result{Kind: KindSectionMarker, Section: constants.SectionOutlays}
	}

	for _, pattern := range rowPatterns {
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return Result{Kind: KindRecord, Record: c.buildRecord(m)}
	}

	c.logger.Debug("classifier.unmatched", "line", line)
	return Result{Kind: KindUnmatched}
}

// buildRecord maps the captured groups onto the fixed positional order:
// this-period, fiscal-year-to-date, prior-period, budget-estimate. The last
// one or two fields are absent when the table variant carried fewer columns.
func (c *Classifier) buildRecord(m []string) *entity.CategoryRecord {
	label := strings.TrimSpace(m[1])
	category, matched := constants.CanonicalizeCategory(label, c.known)
	if !matched {
		c.logger.Debug("classifier.unknown_category", "label", label)
	}

	rec := &entity.CategoryRecord{
		Category:         category,
		ThisPeriod:       c.amount(m[2]),
		FiscalYearToDate: c.amount(m[3]),
	}
	if len(m) > 4 {
		prior := c.amount(m[4])
		rec.PriorPeriod = &prior
	}
	if len(m) > 5 {
		estimate := c.amount(m[5])
		rec.BudgetEstimate = &estimate
	}
	return rec
}

func (c *Classifier) amount(token string) float64 {
	v := Amount(token)
	if v == 0 && strings.Trim(token, "0.,") != "" {
		c.logger.Debug("classifier.amount_unparsable", "token", token)
	}
	return v
}

func containsAny(line string, phrases []string) bool {
	for _, p := range phrases {
		if p != "" && strings.Contains(line, p) {
			return true
		}
	}
	return false
}
