package compare

import (
	"math"
	"sort"

	"github.com/fiscaldata/mts-tracker/internal/entity"
)

// Ratio is the current-period amount over the full-year budget estimate, as a
// percentage rounded to two decimals. Defined as 0 when the estimate is not
// positive, so a missing or zero estimate never faults.
func Ratio(thisPeriod, budgetEstimate float64) float64 {
	if budgetEstimate <= 0 {
		return 0
	}
	return round2(thisPeriod / budgetEstimate * 100)
}

// ChangePercent is (current-previous)/previous as a percentage. Nil when
// previous is absent or zero: "no prior data" must stay distinguishable from
// a computed 0% change.
func ChangePercent(current float64, previous *float64) *float64 {
	if previous == nil || *previous == 0 {
		return nil
	}
	v := round2((current - *previous) / *previous * 100)
	return &v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RankByRatio returns a copy sorted by ratio descending. The sort is stable,
// so ties keep their original insertion order.
func RankByRatio(records []entity.DepartmentRecord) []entity.DepartmentRecord {
	ranked := make([]entity.DepartmentRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RatioPercentage > ranked[j].RatioPercentage
	})
	return ranked
}

// Top returns the first n entries of ranked, capped at the available count.
func Top(ranked []entity.DepartmentRecord, n int) []entity.DepartmentRecord {
	if n > len(ranked) {
		n = len(ranked)
	}
	if n <= 0 {
		return nil
	}
	return ranked[:n]
}

// Bottom returns the last n entries of ranked, or nothing when fewer than n
// exist; asking for more than is available is not an error.
func Bottom(ranked []entity.DepartmentRecord, n int) []entity.DepartmentRecord {
	if n <= 0 || len(ranked) < n {
		return nil
	}
	return ranked[len(ranked)-n:]
}

// Statements compares a primary statement against an optional earlier one.
// With no comparison, every previous/change field stays absent rather than
// zero.
func Statements(primary *entity.StatementDocument, comparison *entity.StatementDocument) entity.StatementComparison {
	result := entity.StatementComparison{
		PrimaryPeriod: primary.Metadata.Period(),
	}

	var prevReceipts, prevOutlays, prevDeficit *float64
	if comparison != nil {
		period := comparison.Metadata.Period()
		result.ComparisonPeriod = &period
		r := comparison.TotalReceipts()
		o := comparison.TotalOutlays()
		d := o - r
		prevReceipts, prevOutlays, prevDeficit = &r, &o, &d
	}

	receipts := primary.TotalReceipts()
	outlays := primary.TotalOutlays()
	result.TotalReceipts = budgetLine(receipts, prevReceipts)
	result.TotalOutlays = budgetLine(outlays, prevOutlays)
	result.Deficit = budgetLine(outlays-receipts, prevDeficit)

	var comparisonSections *entity.Sections
	if comparison != nil {
		comparisonSections = &comparison.Sections
	}
	result.Receipts = categoryDeltas(primary.Sections.Receipts, receiptsOf(comparisonSections))
	result.Outlays = categoryDeltas(primary.Sections.Outlays, outlaysOf(comparisonSections))
	return result
}

func budgetLine(current float64, previous *float64) entity.BudgetLine {
	return entity.BudgetLine{
		Current:       current,
		Previous:      previous,
		ChangePercent: ChangePercent(current, previous),
	}
}

func receiptsOf(s *entity.Sections) []entity.CategoryRecord {
	if s == nil {
		return nil
	}
	return s.Receipts
}

func outlaysOf(s *entity.Sections) []entity.CategoryRecord {
	if s == nil {
		return nil
	}
	return s.Outlays
}

// categoryDeltas pairs each primary row with the comparison row of the same
// category. Categories missing from the comparison period simply have absent
// previous/change fields.
func categoryDeltas(primary, comparison []entity.CategoryRecord) []entity.CategoryDelta {
	deltas := make([]entity.CategoryDelta, 0, len(primary))
	for _, rec := range primary {
		delta := entity.CategoryDelta{
			Category: rec.Category,
			Current:  rec.ThisPeriod,
		}
		for i := range comparison {
			if comparison[i].Category == rec.Category {
				prev := comparison[i].ThisPeriod
				delta.Previous = &prev
				break
			}
		}
		delta.ChangePercent = ChangePercent(delta.Current, delta.Previous)
		deltas = append(deltas, delta)
	}
	return deltas
}

// Trends flattens a period collection into per-department series, one trend
// per department name in sorted order. Periods keep the collection's
// processing order; a department contributes only the periods it was
// recovered in.
func Trends(c *entity.PeriodCollection) []entity.DepartmentTrend {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Departments))
	for name := range c.Departments {
		names = append(names, name)
	}
	sort.Strings(names)

	trends := make([]entity.DepartmentTrend, 0, len(names))
	for _, name := range names {
		byPeriod := c.Departments[name]
		trend := entity.DepartmentTrend{Department: name}
		for _, period := range c.Periods {
			figures, ok := byPeriod[period]
			if !ok {
				continue
			}
			trend.Periods = append(trend.Periods, period)
			trend.ThisMonth = append(trend.ThisMonth, figures.ThisMonth)
		}
		if len(trend.ThisMonth) >= 2 {
			first := trend.ThisMonth[0]
			trend.ChangePercent = ChangePercent(trend.ThisMonth[len(trend.ThisMonth)-1], &first)
		}
		trends = append(trends, trend)
	}
	return trends
}

// Departments ranks one period's records and slices the top/bottom n. The
// comparison set, when present, rides along ranked the same way.
func Departments(primary entity.DepartmentSet, comparison *entity.DepartmentSet, n int) entity.DepartmentComparison {
	ranked := RankByRatio(primary.Departments)
	result := entity.DepartmentComparison{
		PrimaryPeriod:     primary.Period,
		Departments:       ranked,
		TopDepartments:    Top(ranked, n),
		BottomDepartments: Bottom(ranked, n),
	}
	if comparison != nil {
		period := comparison.Period
		result.ComparisonPeriod = &period
		result.ComparisonDepartments = RankByRatio(comparison.Departments)
	}
	return result
}
