package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/fiscaldata/mts-tracker/internal/common"
	"github.com/fiscaldata/mts-tracker/internal/ocr"
)

// Extraction methods reported in TextSource.Method.
const (
	MethodText = "pdf-text"
	MethodOCR  = "pdf-ocr"
)

// TextSource is the located summary table: one text line per table row, plus
// the front page text for period resolution.
type TextSource struct {
	Lines     []string
	Raw       string
	FrontText string
	Page      int
	PageCount int
	Method    string
	Regions   []ocr.Region
}

// PageOCR reads one rasterized page. Satisfied by *ocr.PageReader; stubbed in
// tests.
type PageOCR interface {
	ReadPage(ctx context.Context, path string, pageIndex int) (ocr.PageResult, error)
}

type Config struct {
	PageIndex int    // zero-based page where the summary table usually sits
	Marker    string // heading that identifies the table page
}

// Locator finds the receipts-and-outlays summary table in a statement PDF.
// It prefers the embedded text layer and falls back to OCR only when the
// expected pages carry no usable text.
type Locator struct {
	cfg    Config
	reader PageOCR
	logger *slog.Logger
}

func NewLocator(cfg Config, reader PageOCR, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Marker == "" {
		cfg.Marker = "Summary of Receipts and Outlays"
	}
	return &Locator{cfg: cfg, reader: reader, logger: logger}
}

// Locate returns the table page's text. The fixed page is tried first, then a
// marker scan over the whole document, then OCR of the fixed page when it is
// in range. When every strategy comes up empty the document is unparsable,
// not an internal fault.
func (l *Locator) Locate(ctx context.Context, path string) (TextSource, error) {
	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return TextSource{}, common.WrapError(common.ErrInvalidInput, "reading pdf page count", err)
	}
	if pageCount == 0 {
		return TextSource{}, common.WrapError(common.ErrUnparsable, "pdf has no pages", nil)
	}

	frontText := l.frontText(path)

	if src, ok := l.fromTextLayer(path, pageCount); ok {
		src.FrontText = frontText
		src.PageCount = pageCount
		return src, nil
	}

	src, ok, err := l.fromOCR(ctx, path, pageCount)
	if err != nil {
		return TextSource{}, err
	}
	if ok {
		src.FrontText = frontText
		src.PageCount = pageCount
		return src, nil
	}

	l.logger.Warn("locate.exhausted", "path", path, "pages", pageCount)
	return TextSource{}, common.WrapError(common.ErrUnparsable, "summary table not found", nil)
}

// frontText is best effort; period resolution falls back to the filename.
func (l *Locator) frontText(path string) string {
	lines, err := pageLines(path, 0)
	if err != nil {
		l.logger.Debug("locate.front_text_unavailable", "path", path, "error", err)
		return ""
	}
	return strings.Join(lines, "\n")
}

func (l *Locator) fromTextLayer(path string, pageCount int) (TextSource, bool) {
	// Fixed page first: the summary table sits at the same index in nearly
	// every statement. An out-of-range index is reported, not silently
	// remapped to some other page.
	if l.cfg.PageIndex < 0 || l.cfg.PageIndex >= pageCount {
		l.logger.Warn("locate.fixed_page_out_of_range",
			"path", path, "page", l.cfg.PageIndex, "pages", pageCount)
	} else {
		lines, err := pageLines(path, l.cfg.PageIndex)
		if err == nil && containsMarker(lines, l.cfg.Marker) {
			l.logger.Debug("locate.fixed_page_hit", "path", path, "page", l.cfg.PageIndex)
			return textSource(lines, l.cfg.PageIndex), true
		}
	}

	for page := 0; page < pageCount; page++ {
		if page == l.cfg.PageIndex {
			continue
		}
		lines, err := pageLines(path, page)
		if err != nil {
			continue
		}
		if containsMarker(lines, l.cfg.Marker) {
			l.logger.Debug("locate.marker_scan_hit", "path", path, "page", page)
			return textSource(lines, page), true
		}
	}
	return TextSource{}, false
}

func (l *Locator) fromOCR(ctx context.Context, path string, pageCount int) (TextSource, bool, error) {
	if l.reader == nil {
		return TextSource{}, false, nil
	}
	page := l.cfg.PageIndex
	if page < 0 || page >= pageCount {
		return TextSource{}, false, nil
	}

	res, err := l.reader.ReadPage(ctx, path, page)
	if err != nil {
		l.logger.Error("locate.ocr_failed", "path", path, "page", page, "error", err)
		return TextSource{}, false, common.WrapError(common.ErrExternalService, "ocr page read", err)
	}

	lines := strings.Split(res.Text, "\n")
	if !containsMarker(lines, l.cfg.Marker) {
		l.logger.Debug("locate.ocr_no_marker", "path", path, "page", page)
		return TextSource{}, false, nil
	}

	src := textSource(lines, page)
	src.Method = MethodOCR
	src.Regions = res.Regions
	return src, true, nil
}

func textSource(lines []string, page int) TextSource {
	return TextSource{
		Lines:  lines,
		Raw:    strings.Join(lines, "\n"),
		Page:   page,
		Method: MethodText,
	}
}

func containsMarker(lines []string, marker string) bool {
	for _, line := range lines {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
