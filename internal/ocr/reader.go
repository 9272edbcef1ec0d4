package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/otiai10/gosseract/v2"
)

type Config struct {
	Pdftoppm string // binary name or absolute path; if empty -> "pdftoppm"

	Language    string // default "eng"
	DPI         int    // rasterization DPI, default 300
	TessdataDir string
}

// Region is one recognized text line with its bounding box in pixel
// coordinates of the rasterized page and the engine's confidence (0-100).
type Region struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// PageResult is the OCR output for one page: line regions in top-to-bottom
// order plus the joined text.
type PageResult struct {
	Regions  []Region
	Text     string
	Duration time.Duration
}

// PageReader rasterizes a single PDF page and runs Tesseract over the image.
// Used when a page carries no extractable text layer.
type PageReader struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewPageReader(cfg Config, logger *slog.Logger) *PageReader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &PageReader{cfg: cfg, runner: newExecRunner(logger), logger: logger}
}

// SetRunner swaps the command runner. Test hook.
func (r *PageReader) SetRunner(runner Runner) {
	r.runner = runner
}

// ReadPage rasterizes page pageIndex (zero-based) of the PDF at path and
// returns its recognized line regions.
func (r *PageReader) ReadPage(ctx context.Context, path string, pageIndex int) (PageResult, error) {
	start := time.Now()
	r.logger.Debug("ocr.page.start", "path", path, "page", pageIndex, "dpi", r.cfg.DPI)

	img, cleanup, err := r.rasterize(ctx, path, pageIndex)
	if err != nil {
		return PageResult{}, err
	}
	defer cleanup()

	regions, err := r.recognize(img)
	if err != nil {
		return PageResult{}, err
	}

	res := PageResult{
		Regions:  regions,
		Text:     joinRegions(regions),
		Duration: time.Since(start),
	}
	r.logger.Debug("ocr.page.done",
		"path", path,
		"page", pageIndex,
		"regions", len(regions),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// rasterize renders exactly one page to PNG via pdftoppm. pdftoppm numbers
// pages from 1, callers from 0.
func (r *PageReader) rasterize(ctx context.Context, path string, pageIndex int) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "mts-pp-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			r.logger.Warn("ocr.tmpdir_remove_failed", "dir", tmpDir, "error", err)
		}
	}

	page := pageIndex + 1
	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -f N -l N -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := r.runner.Run(ctx, r.cfg.Pdftoppm,
		"-f", fmt.Sprintf("%d", page),
		"-l", fmt.Sprintf("%d", page),
		"-r", fmt.Sprintf("%d", r.cfg.DPI),
		"-png", path, prefix)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("pdftoppm: %w: %s", err, truncate(string(errb), 512))
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		cleanup()
		return "", nil, fmt.Errorf("pdftoppm produced no image for page %d", page)
	}
	return matches[0], cleanup, nil
}

func (r *PageReader) recognize(imagePath string) ([]Region, error) {
	client := gosseract.NewClient()
	defer func() {
		if err := client.Close(); err != nil {
			r.logger.Warn("ocr.client_close_failed", "error", err)
		}
	}()

	if r.cfg.TessdataDir != "" {
		if err := client.SetTessdataPrefix(r.cfg.TessdataDir); err != nil {
			return nil, fmt.Errorf("tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(r.cfg.Language); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("bounding boxes: %w", err)
	}

	regions := make([]Region, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		regions = append(regions, Region{
			X:          b.Box.Min.X,
			Y:          b.Box.Min.Y,
			Width:      b.Box.Dx(),
			Height:     b.Box.Dy(),
			Text:       text,
			Confidence: b.Confidence,
		})
	}
	sort.SliceStable(regions, func(i, j int) bool { return regions[i].Y < regions[j].Y })
	return regions, nil
}

func joinRegions(regions []Region) string {
	lines := make([]string, 0, len(regions))
	for _, reg := range regions {
		lines = append(lines, reg.Text)
	}
	return strings.Join(lines, "\n")
}
