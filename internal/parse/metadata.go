package parse

import (
	"regexp"
	"strconv"

	"github.com/fiscaldata/mts-tracker/constants"
)

var periodPattern = regexp.MustCompile(
	`(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{4})`)

type periodResult struct {
	month, year string
	ok          bool
}

// ResolvePeriod derives the reporting period. In-document text wins; the
// filename convention (mtsMMYY.pdf) is the fallback because clean text
// extraction is not available for scanned pages while filenames are reliable.
// Month and year resolve together or both come back as the Unknown sentinel.
func ResolvePeriod(documentText, filename string) (month, year string) {
	if r := periodFromText(documentText); r.ok {
		return r.month, r.year
	}
	if r := periodFromFilename(filename); r.ok {
		return r.month, r.year
	}
	return constants.UnknownPeriod, constants.UnknownPeriod
}

func periodFromText(text string) periodResult {
	if text == "" {
		return periodResult{}
	}
	m := periodPattern.FindStringSubmatch(text)
	if m == nil {
		return periodResult{}
	}
	return periodResult{month: m[1], year: m[2], ok: true}
}

// periodFromFilename decodes the two fixed-width numeric fields at offsets
// [3:5] (month) and [5:7] (two-digit year, assumed 21st century).
func periodFromFilename(filename string) periodResult {
	base := constants.StatementID(filename)
	if len(base) < 7 {
		return periodResult{}
	}
	monthNum, err := strconv.Atoi(base[3:5])
	if err != nil || monthNum < 1 || monthNum > 12 {
		return periodResult{}
	}
	if _, err := strconv.Atoi(base[5:7]); err != nil {
		return periodResult{}
	}
	return periodResult{
		month: constants.MonthNames[monthNum],
		year:  "20" + base[5:7],
		ok:    true,
	}
}
