package constants

import (
	"path/filepath"
	"strings"
)

// Statement filenames follow the fixed convention mtsMMYY.pdf, e.g. mts0224.pdf
// for February 2024. The prefix is three literal characters followed by a
// two-digit month and a two-digit year.
const (
	StatementPrefix    = "mts"
	StatementExtension = ".pdf"
)

// MonthNames indexes 1..12 onto English month names; index 0 is unused.
var MonthNames = []string{
	"",
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// UnknownPeriod is the sentinel for month/year that could not be resolved.
const UnknownPeriod = "Unknown"

// IsStatementFile reports whether filename looks like a Treasury statement PDF.
func IsStatementFile(filename string) bool {
	name := strings.ToLower(filepath.Base(filename))
	return strings.HasPrefix(name, StatementPrefix) &&
		strings.HasSuffix(name, StatementExtension) &&
		len(name) >= len(StatementPrefix)+4+len(StatementExtension)
}

// StatementID strips the extension from a statement filename: mts0224.pdf -> mts0224.
func StatementID(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
