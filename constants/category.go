package constants

import (
	"strings"
)

// Section identifies which half of the summary table a row belongs to.
type Section string

const (
	SectionNone     Section = ""
	SectionReceipts Section = "receipts"
	SectionOutlays  Section = "outlays"
)

// ReceiptCategories and OutlayCategories are the category labels we expect to
// recover from the summary table. Unknown labels are still kept (extraction is
// best-effort), but known ones are canonicalized so that OCR noise in a label
// does not split a category across periods.
var ReceiptCategories = []string{
	"Individual Income Taxes",
	"Corporation Income Taxes",
	"Social Insurance Taxes",
	"Excise Taxes",
	"Other",
	"Total Receipts",
}

var OutlayCategories = []string{
	"Health and Human Services",
	"Social Security Administration",
	"Department of Defense",
	"Department of Treasury",
	"Interest on Treasury Debt",
	"Department of Education",
	"Department of Veterans Affairs",
	"Total Outlays",
}

// CanonicalizeCategory maps a recovered label onto a known category name.
// Lookup order: exact (case-insensitive), then substring in either direction
// to absorb OCR artifacts around the label. Returns the input trimmed and
// false when nothing matches.
func CanonicalizeCategory(input string, known []string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed, false
	}
	normalized := strings.ToLower(trimmed)
	for _, c := range known {
		if normalized == strings.ToLower(c) {
			return c, true
		}
	}
	for _, c := range known {
		lc := strings.ToLower(c)
		// Short names like "Other" would swallow unrelated labels; only
		// multi-word names take part in the fuzzy pass.
		if !strings.Contains(lc, " ") {
			continue
		}
		if strings.Contains(normalized, lc) || strings.Contains(lc, normalized) {
			return c, true
		}
	}
	return trimmed, false
}
