package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fiscaldata/mts-tracker/constants"
)

func TestResolvePeriod_DocumentTextWins(t *testing.T) {
	text := "MONTHLY TREASURY STATEMENT\nReceipts and Outlays of the United States Government\nFor Fiscal Year 2024 Through February 2024"

	month, year := ResolvePeriod(text, "mts0125.pdf")
	assert.Equal(t, "February", month)
	assert.Equal(t, "2024", year)
}

func TestResolvePeriod_FilenameFallback(t *testing.T) {
	month, year := ResolvePeriod("no period in here", "mts0224.pdf")
	assert.Equal(t, "February", month)
	assert.Equal(t, "2024", year)

	month, year = ResolvePeriod("", "/data/pdf/mts1223.pdf")
	assert.Equal(t, "December", month)
	assert.Equal(t, "2023", year)
}

func TestResolvePeriod_UnknownIsAllOrNothing(t *testing.T) {
	cases := []struct {
		text, filename string
	}{
		{"", "statement.pdf"},
		{"", "mts.pdf"},
		{"", "mts1399.pdf"}, // month 13 is out of range
		{"", "mtsxx24.pdf"},
		{"nothing useful", "mts0x24.pdf"},
	}
	for _, tc := range cases {
		month, year := ResolvePeriod(tc.text, tc.filename)
		assert.Equal(t, constants.UnknownPeriod, month, "filename %q", tc.filename)
		assert.Equal(t, constants.UnknownPeriod, year, "filename %q", tc.filename)
	}
}

func TestResolvePeriod_MonthWithoutYearInTextFallsThrough(t *testing.T) {
	// The text mentions a month but no adjacent year, so the filename decides.
	month, year := ResolvePeriod("issued in February, preliminary", "mts0324.pdf")
	assert.Equal(t, "March", month)
	assert.Equal(t, "2024", year)
}
