package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fiscaldata/mts-tracker/internal/entity"
)

func TestExportDepartmentsXLSX(t *testing.T) {
	set := entity.DepartmentSet{
		Period: "February 2024",
		Month:  "February",
		Year:   "2024",
		Departments: []entity.DepartmentRecord{
			{Department: "Department of Defense", ThisMonth: 65123, FiscalYearToDate: 380456, PriorPeriod: 370998, BudgetEstimate: 820000, RatioPercentage: 7.94},
			{Department: "Social Security Administration", ThisMonth: 112456, FiscalYearToDate: 672889, PriorPeriod: 650112, BudgetEstimate: 1350000, RatioPercentage: 8.33},
		},
	}

	data, err := NewService(nil).ExportDepartmentsXLSX(set)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Departments", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Department", header)

	name, err := f.GetCellValue("Departments", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Department of Defense", name)

	ratio, err := f.GetCellValue("Departments", "F3")
	require.NoError(t, err)
	assert.Equal(t, "8.33", ratio)

	// Row order follows the input order.
	second, err := f.GetCellValue("Departments", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Social Security Administration", second)
}

func TestExportDepartmentsXLSX_EmptySet(t *testing.T) {
	data, err := NewService(nil).ExportDepartmentsXLSX(entity.DepartmentSet{Period: "Unknown Unknown"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Departments", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Department", header)
}
