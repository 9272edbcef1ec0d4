package parse

import (
	"strconv"
	"strings"
)

// Amount converts a free-form numeric token into its canonical value. Thousands
// separators are stripped before parsing. Any token that is not digits, commas
// and at most one decimal point (with an optional leading sign) normalizes to
// 0, a soft failure absorbed here and never raised. The result is negative
// only when the token explicitly carries a minus sign.
func Amount(token string) float64 {
	s := strings.TrimSpace(token)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if s == "" || strings.Count(s, ".") > 1 {
		return 0
	}
	for _, r := range s {
		if r != ',' && r != '.' && (r < '0' || r > '9') {
			return 0
		}
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	if neg {
		return -v
	}
	return v
}
