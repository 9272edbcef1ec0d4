package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscaldata/mts-tracker/constants"
)

func TestClassify_SectionMarkers(t *testing.T) {
	c := NewClassifier(DefaultConfig(), nil)

	res := c.Classify("This Month's Budget Receipts")
	assert.Equal(t, KindSectionMarker, res.Kind)
	assert.Equal(t, constants.SectionReceipts, res.Section)

	res = c.Classify("  Budget Outlays  ")
	assert.Equal(t, KindSectionMarker, res.Kind)
	assert.Equal(t, constants.SectionOutlays, res.Section)
}

func TestClassify_FourColumnRow(t *testing.T) {
	c := NewClassifier(DefaultConfig(), nil)

	res := c.Classify("Individual Income Taxes 198,779 926,432 850,000 2,254,000")
	require.Equal(t, KindRecord, res.Kind)
	require.NotNil(t, res.Record)

	assert.Equal(t, "Individual Income Taxes", res.Record.Category)
	assert.Equal(t, 198779.0, res.Record.ThisPeriod)
	assert.Equal(t, 926432.0, res.Record.FiscalYearToDate)
	require.NotNil(t, res.Record.PriorPeriod)
	assert.Equal(t, 850000.0, *res.Record.PriorPeriod)
	require.NotNil(t, res.Record.BudgetEstimate)
	assert.Equal(t, 2254000.0, *res.Record.BudgetEstimate)
}

func TestClassify_ThreeColumnRowLeavesEstimateAbsent(t *testing.T) {
	c := NewClassifier(DefaultConfig(), nil)

	res := c.Classify("Excise Taxes 8,124 45,698 44,102")
	require.Equal(t, KindRecord, res.Kind)

	assert.Equal(t, "Excise Taxes", res.Record.Category)
	assert.Equal(t, 8124.0, res.Record.ThisPeriod)
	assert.Equal(t, 45698.0, res.Record.FiscalYearToDate)
	require.NotNil(t, res.Record.PriorPeriod)
	assert.Equal(t, 44102.0, *res.Record.PriorPeriod)
	assert.Nil(t, res.Record.BudgetEstimate)
}

func TestClassify_PlainNumbersRow(t *testing.T) {
	c := NewClassifier(DefaultConfig(), nil)

	res := c.Classify("Other 76 312 298 900")
	require.Equal(t, KindRecord, res.Kind)
	assert.Equal(t, "Other", res.Record.Category)
	assert.Equal(t, 76.0, res.Record.ThisPeriod)
}

func TestClassify_UnknownLabelIsKeptVerbatim(t *testing.T) {
	c := NewClassifier(DefaultConfig(), nil)

	// OCR mangled the label; the row still carries real figures.
	res := c.Classify("Tota1 Receipts 254,898 1,256,987 1,189,453")
	require.Equal(t, KindRecord, res.Kind)
	assert.Equal(t, "Tota1 Receipts", res.Record.Category)
	assert.Equal(t, 254898.0, res.Record.ThisPeriod)
}

func TestClassify_FuzzyLabelCanonicalization(t *testing.T) {
	c := NewClassifier(DefaultConfig(), nil)

	res := c.Classify(".. Individual Income Taxes 198,779 926,432 850,000")
	require.Equal(t, KindRecord, res.Kind)
	assert.Equal(t, "Individual Income Taxes", res.Record.Category)
}

func TestClassify_NoiseLinesAreUnmatched(t *testing.T) {
	c := NewClassifier(DefaultConfig(), nil)

	for _, line := range []string{
		"",
		"Table 1",
		"(In millions of dollars)",
		"MONTHLY TREASURY STATEMENT",
		"Page 9",
		"This Month Fiscal Year to Date",
	} {
		res := c.Classify(line)
		assert.Equal(t, KindUnmatched, res.Kind, "line %q", line)
		assert.Nil(t, res.Record)
	}
}

func TestClassify_MarkerLineNeverYieldsRecord(t *testing.T) {
	c := NewClassifier(DefaultConfig(), nil)

	// A marker phrase followed by figures still classifies as a marker.
	res := c.Classify("Budget Receipts 254,898 1,256,987 1,189,453")
	assert.Equal(t, KindSectionMarker, res.Kind)
	assert.Nil(t, res.Record)
}
