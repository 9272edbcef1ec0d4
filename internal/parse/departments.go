package parse

import (
	"log/slog"
	"regexp"

	"github.com/fiscaldata/mts-tracker/constants"
	"github.com/fiscaldata/mts-tracker/internal/compare"
	"github.com/fiscaldata/mts-tracker/internal/entity"
)

// ExtractDepartments scans raw statement text for each known department name
// followed by four comma-grouped figures: this month, fiscal year to date,
// prior period, and full-year budget estimate. Names outside the enumerated
// department list are rejected; departments whose row is absent or malformed
// are skipped, not zero-filled.
func ExtractDepartments(text string, departments []string, logger *slog.Logger) []entity.DepartmentRecord {
	if logger == nil {
		logger = slog.Default()
	}
	records := make([]entity.DepartmentRecord, 0, len(departments))
	for _, name := range departments {
		if !constants.IsDepartment(name) {
			logger.Warn("departments.unknown_name", "department", name)
			continue
		}
		pattern, err := regexp.Compile(regexp.QuoteMeta(name) + `\s+([\d,]+)\s+([\d,]+)\s+([\d,]+)\s+([\d,]+)`)
		if err != nil {
			logger.Warn("departments.pattern_failed", "department", name, "error", err)
			continue
		}
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			logger.Debug("departments.row_missing", "department", name)
			continue
		}
		rec := entity.DepartmentRecord{
			Department:       name,
			ThisMonth:        Amount(m[1]),
			FiscalYearToDate: Amount(m[2]),
			PriorPeriod:      Amount(m[3]),
			BudgetEstimate:   Amount(m[4]),
		}
		rec.RatioPercentage = compare.Ratio(rec.ThisMonth, rec.BudgetEstimate)
		records = append(records, rec)
	}
	logger.Debug("departments.extracted", "count", len(records))
	return records
}
