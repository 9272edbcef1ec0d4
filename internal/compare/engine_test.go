package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscaldata/mts-tracker/internal/entity"
)

func TestRatio(t *testing.T) {
	assert.Equal(t, 25.0, Ratio(50, 200))
	assert.Equal(t, 33.33, Ratio(1, 3))
	assert.Equal(t, 0.0, Ratio(10, 0))
	assert.Equal(t, 0.0, Ratio(10, -5))
}

func TestChangePercent(t *testing.T) {
	prev := 100.0
	got := ChangePercent(110, &prev)
	require.NotNil(t, got)
	assert.Equal(t, 10.0, *got)

	got = ChangePercent(90, &prev)
	require.NotNil(t, got)
	assert.Equal(t, -10.0, *got)

	assert.Nil(t, ChangePercent(110, nil))

	zero := 0.0
	assert.Nil(t, ChangePercent(110, &zero))
}

func statement(month, year string, receipts, outlays float64) *entity.StatementDocument {
	return &entity.StatementDocument{
		Metadata: entity.Metadata{Filename: "mts0000.pdf", Month: month, Year: year},
		Sections: entity.Sections{
			Receipts: []entity.CategoryRecord{
				{Category: "Individual Income Taxes", ThisPeriod: receipts / 2, FiscalYearToDate: receipts},
				{Category: "Total Receipts", ThisPeriod: receipts, FiscalYearToDate: receipts},
			},
			Outlays: []entity.CategoryRecord{
				{Category: "Total Outlays", ThisPeriod: outlays, FiscalYearToDate: outlays},
			},
		},
	}
}

func TestStatements_WithComparison(t *testing.T) {
	primary := statement("February", "2024", 100, 150)
	comparison := statement("January", "2024", 80, 120)

	got := Statements(primary, comparison)

	assert.Equal(t, "February 2024", got.PrimaryPeriod)
	require.NotNil(t, got.ComparisonPeriod)
	assert.Equal(t, "January 2024", *got.ComparisonPeriod)

	assert.Equal(t, 100.0, got.TotalReceipts.Current)
	require.NotNil(t, got.TotalReceipts.Previous)
	assert.Equal(t, 80.0, *got.TotalReceipts.Previous)
	require.NotNil(t, got.TotalReceipts.ChangePercent)
	assert.Equal(t, 25.0, *got.TotalReceipts.ChangePercent)

	assert.Equal(t, 50.0, got.Deficit.Current)
	require.NotNil(t, got.Deficit.Previous)
	assert.Equal(t, 40.0, *got.Deficit.Previous)
	require.NotNil(t, got.Deficit.ChangePercent)
	assert.Equal(t, 25.0, *got.Deficit.ChangePercent)

	require.Len(t, got.Receipts, 2)
	assert.Equal(t, "Individual Income Taxes", got.Receipts[0].Category)
	require.NotNil(t, got.Receipts[0].Previous)
	assert.Equal(t, 40.0, *got.Receipts[0].Previous)
}

func TestStatements_WithoutComparison(t *testing.T) {
	got := Statements(statement("February", "2024", 100, 150), nil)

	assert.Nil(t, got.ComparisonPeriod)
	assert.Nil(t, got.TotalReceipts.Previous)
	assert.Nil(t, got.TotalReceipts.ChangePercent)
	assert.Nil(t, got.Deficit.Previous)
	require.Len(t, got.Outlays, 1)
	assert.Nil(t, got.Outlays[0].Previous)
	assert.Nil(t, got.Outlays[0].ChangePercent)
}

func TestStatements_CategoryMissingFromComparison(t *testing.T) {
	primary := statement("February", "2024", 100, 150)
	comparison := statement("January", "2024", 80, 120)
	comparison.Sections.Receipts = comparison.Sections.Receipts[1:] // drop income taxes

	got := Statements(primary, comparison)

	require.Len(t, got.Receipts, 2)
	assert.Nil(t, got.Receipts[0].Previous)
	assert.Nil(t, got.Receipts[0].ChangePercent)
	require.NotNil(t, got.Receipts[1].Previous)
}

func TestTotalsFallBackToFirstRow(t *testing.T) {
	doc := statement("February", "2024", 100, 150)
	doc.Sections.Receipts = doc.Sections.Receipts[:1] // no "Total Receipts" row

	got := Statements(doc, nil)
	assert.Equal(t, 50.0, got.TotalReceipts.Current)
}

func departments(ratios ...float64) entity.DepartmentSet {
	set := entity.DepartmentSet{Period: "February 2024", Month: "February", Year: "2024"}
	for i, ratio := range ratios {
		set.Departments = append(set.Departments, entity.DepartmentRecord{
			Department:      "Dept " + string(rune('A'+i)),
			RatioPercentage: ratio,
		})
	}
	return set
}

func TestDepartments_RankAndSlice(t *testing.T) {
	set := departments(10, 60, 30, 50, 20, 40)

	got := Departments(set, nil, 5)

	require.Len(t, got.Departments, 6)
	assert.Equal(t, 60.0, got.Departments[0].RatioPercentage)
	assert.Equal(t, 10.0, got.Departments[5].RatioPercentage)

	require.Len(t, got.TopDepartments, 5)
	assert.Equal(t, 60.0, got.TopDepartments[0].RatioPercentage)
	require.Len(t, got.BottomDepartments, 5)
	assert.Equal(t, 10.0, got.BottomDepartments[4].RatioPercentage)
	assert.Nil(t, got.ComparisonPeriod)
}

func TestDepartments_BottomEmptyWhenFewerThanN(t *testing.T) {
	set := departments(10, 20, 30)

	got := Departments(set, nil, 5)

	assert.Len(t, got.TopDepartments, 3)
	assert.Empty(t, got.BottomDepartments)
}

func TestTrends(t *testing.T) {
	collection := entity.NewPeriodCollection()
	collection.Add(entity.DepartmentSet{
		Period: "January 2024",
		Departments: []entity.DepartmentRecord{
			{Department: "Department of Defense", ThisMonth: 60000},
			{Department: "Legislative Branch", ThisMonth: 400},
		},
	})
	collection.Add(entity.DepartmentSet{
		Period: "February 2024",
		Departments: []entity.DepartmentRecord{
			{Department: "Department of Defense", ThisMonth: 66000},
		},
	})

	got := Trends(collection)

	require.Len(t, got, 2)
	defense := got[0]
	assert.Equal(t, "Department of Defense", defense.Department)
	assert.Equal(t, []string{"January 2024", "February 2024"}, defense.Periods)
	assert.Equal(t, []float64{60000, 66000}, defense.ThisMonth)
	require.NotNil(t, defense.ChangePercent)
	assert.Equal(t, 10.0, *defense.ChangePercent)

	// A single-period department has no change to report.
	legislative := got[1]
	assert.Equal(t, []string{"January 2024"}, legislative.Periods)
	assert.Nil(t, legislative.ChangePercent)
}

func TestTrends_NilCollection(t *testing.T) {
	assert.Nil(t, Trends(nil))
}

func TestDepartments_WithComparison(t *testing.T) {
	primary := departments(10, 20)
	comparison := departments(5, 40)
	comparison.Period = "January 2024"

	got := Departments(primary, &comparison, 5)

	require.NotNil(t, got.ComparisonPeriod)
	assert.Equal(t, "January 2024", *got.ComparisonPeriod)
	require.Len(t, got.ComparisonDepartments, 2)
	assert.Equal(t, 40.0, got.ComparisonDepartments[0].RatioPercentage)
}
