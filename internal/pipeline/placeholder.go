package pipeline

import (
	"github.com/fiscaldata/mts-tracker/constants"
	"github.com/fiscaldata/mts-tracker/internal/entity"
)

// unparsableDocument builds the artifact for a document no strategy could
// read. With placeholder on, the standard category lists appear zero-valued
// so downstream consumers keep a stable shape; either way the flags make the
// outcome explicit.
func unparsableDocument(metadata entity.Metadata, placeholder bool) *entity.StatementDocument {
	doc := &entity.StatementDocument{
		Metadata:   metadata,
		Unparsable: true,
		Sections: entity.Sections{
			Receipts: []entity.CategoryRecord{},
			Outlays:  []entity.CategoryRecord{},
		},
	}
	if !placeholder {
		return doc
	}

	doc.Placeholder = true
	doc.Sections.Receipts = zeroRecords(constants.ReceiptCategories)
	doc.Sections.Outlays = zeroRecords(constants.OutlayCategories)
	return doc
}

func zeroRecords(categories []string) []entity.CategoryRecord {
	records := make([]entity.CategoryRecord, 0, len(categories))
	for _, category := range categories {
		records = append(records, entity.CategoryRecord{Category: category})
	}
	return records
}
