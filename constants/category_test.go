package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeCategory_Exact(t *testing.T) {
	got, ok := CanonicalizeCategory("Total Receipts", ReceiptCategories)
	assert.True(t, ok)
	assert.Equal(t, "Total Receipts", got)

	got, ok = CanonicalizeCategory("  excise taxes ", ReceiptCategories)
	assert.True(t, ok)
	assert.Equal(t, "Excise Taxes", got)
}

func TestCanonicalizeCategory_Fuzzy(t *testing.T) {
	got, ok := CanonicalizeCategory(".. Individual Income Taxes ..", ReceiptCategories)
	assert.True(t, ok)
	assert.Equal(t, "Individual Income Taxes", got)
}

func TestCanonicalizeCategory_ShortNamesNeverFuzzyMatch(t *testing.T) {
	// "Other Independent Agencies" must not collapse into "Other".
	got, ok := CanonicalizeCategory("Other Independent Agencies", ReceiptCategories)
	assert.False(t, ok)
	assert.Equal(t, "Other Independent Agencies", got)
}

func TestCanonicalizeCategory_Unknown(t *testing.T) {
	got, ok := CanonicalizeCategory("Customs Duties", ReceiptCategories)
	assert.False(t, ok)
	assert.Equal(t, "Customs Duties", got)

	_, ok = CanonicalizeCategory("", ReceiptCategories)
	assert.False(t, ok)
}
