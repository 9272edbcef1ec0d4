package parse

import (
	"log/slog"

	"github.com/fiscaldata/mts-tracker/constants"
	"github.com/fiscaldata/mts-tracker/internal/entity"
)

// Assembler walks classified lines and accumulates the two section lists.
// Markers may alternate freely and either section may occur any number of
// times; rows seen before the first marker cannot be attributed to a section
// and are dropped.
type Assembler struct {
	classifier *Classifier
	logger     *slog.Logger
}

func NewAssembler(classifier *Classifier, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{classifier: classifier, logger: logger}
}

// Assemble consumes the line stream in order and returns the accumulated
// sections. Input order is preserved within each section.
func (a *Assembler) Assemble(lines []string) entity.Sections {
	var sections entity.Sections
	current := constants.SectionNone
	dropped := 0

	for _, line := range lines {
		res := a.classifier.Classify(line)
		switch res.Kind {
		case KindSectionMarker:
			current = res.Section
		case KindRecord:
			switch current {
			case constants.SectionReceipts:
				sections.Receipts = append(sections.Receipts, *res.Record)
			case constants.SectionOutlays:
				sections.Outlays = append(sections.Outlays, *res.Record)
			default:
				dropped++
			}
		}
	}

	if dropped > 0 {
		a.logger.Debug("assemble.rows_before_first_marker_dropped", "count", dropped)
	}
	a.logger.Info("assemble.done",
		"receipts", len(sections.Receipts),
		"outlays", len(sections.Outlays),
	)
	return sections
}
