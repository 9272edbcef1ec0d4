package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pageLines reads the text layer of one zero-based page and returns its rows
// top to bottom. A space is inserted between fragments only when the glyph
// positions show a real horizontal gap, so column values stay separated
// without breaking words apart.
func pageLines(path string, pageIndex int) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	if pageIndex < 0 || pageIndex >= r.NumPage() {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", pageIndex, r.NumPage())
	}

	page := r.Page(pageIndex + 1)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d has no content", pageIndex)
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("read page %d text: %w", pageIndex, err)
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		line := joinRow(row.Content)
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func joinRow(texts []pdf.Text) string {
	var b strings.Builder
	var prev *pdf.Text
	for i := range texts {
		t := texts[i]
		if t.S == "" {
			continue
		}
		if prev != nil {
			gap := t.X - (prev.X + prev.W)
			if gap > gapThreshold(prev.FontSize) {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
		prev = &texts[i]
	}
	return b.String()
}

func gapThreshold(fontSize float64) float64 {
	if fontSize <= 0 {
		return 1.5
	}
	return fontSize * 0.25
}

// DocInfo reads the document information dictionary. Both fields are best
// effort and empty when the dictionary is missing.
func DocInfo(path string) (title, author string) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", ""
	}
	defer f.Close()

	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return "", ""
	}
	return infoString(info.Key("Title")), infoString(info.Key("Author"))
}

func infoString(v pdf.Value) string {
	if v.Kind() != pdf.String {
		return ""
	}
	return strings.TrimSpace(v.RawString())
}

