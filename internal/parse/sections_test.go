package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssembler() *Assembler {
	return NewAssembler(NewClassifier(DefaultConfig(), nil), nil)
}

func TestAssemble_SummaryTable(t *testing.T) {
	lines := []string{
		"Table 1",
		"(In millions of dollars)",
		"This Month's Budget Receipts",
		"Individual Income Taxes 198,779 926,432 850,000 2,254,000",
		"Corporation Income Taxes 11,598 174,250 162,890 525,000",
		"Total Receipts 254,898 1,256,987 1,189,453",
		"Budget Outlays",
		"Department of Defense 65,123 380,456 370,998 820,000",
		"Total Outlays 449,558 2,434,909 2,299,887",
	}

	sections := newAssembler().Assemble(lines)

	require.Len(t, sections.Receipts, 3)
	require.Len(t, sections.Outlays, 2)

	assert.Equal(t, "Individual Income Taxes", sections.Receipts[0].Category)
	assert.Equal(t, 198779.0, sections.Receipts[0].ThisPeriod)
	assert.Equal(t, "Total Receipts", sections.Receipts[2].Category)
	assert.Equal(t, 254898.0, sections.Receipts[2].ThisPeriod)
	assert.Equal(t, "Department of Defense", sections.Outlays[0].Category)
	assert.Equal(t, "Total Outlays", sections.Outlays[1].Category)
}

func TestAssemble_RowsBeforeFirstMarkerAreDropped(t *testing.T) {
	lines := []string{
		"Individual Income Taxes 1 2 3",
		"Budget Receipts",
		"Excise Taxes 8,124 45,698 44,102",
	}

	sections := newAssembler().Assemble(lines)

	require.Len(t, sections.Receipts, 1)
	assert.Equal(t, "Excise Taxes", sections.Receipts[0].Category)
	assert.Empty(t, sections.Outlays)
}

func TestAssemble_MarkersMayAlternate(t *testing.T) {
	lines := []string{
		"Budget Receipts",
		"Excise Taxes 1 2 3",
		"Budget Outlays",
		"Department of Education 4 5 6",
		"Budget Receipts",
		"Other 7 8 9",
	}

	sections := newAssembler().Assemble(lines)

	require.Len(t, sections.Receipts, 2)
	require.Len(t, sections.Outlays, 1)
	assert.Equal(t, "Excise Taxes", sections.Receipts[0].Category)
	assert.Equal(t, "Other", sections.Receipts[1].Category)
	assert.Equal(t, "Department of Education", sections.Outlays[0].Category)
}

func TestAssemble_NoMarkersYieldsEmptySections(t *testing.T) {
	sections := newAssembler().Assemble([]string{
		"Individual Income Taxes 198,779 926,432 850,000",
		"Total Receipts 254,898 1,256,987 1,189,453",
	})
	assert.Empty(t, sections.Receipts)
	assert.Empty(t, sections.Outlays)
}
