package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscaldata/mts-tracker/constants"
)

const departmentsText = `Summary of Receipts and Outlays of the U.S. Government
Department of Defense 65,123 380,456 370,998 820,000
Social Security Administration 112,456 672,889 650,112 1,350,000
Environmental Protection Agency 812 4,560 4,101 9,800
Legislative Branch garbled row without figures`

func TestExtractDepartments(t *testing.T) {
	records := ExtractDepartments(departmentsText, constants.Departments, nil)

	require.Len(t, records, 3)

	byName := map[string]float64{}
	for _, r := range records {
		byName[r.Department] = r.ThisMonth
	}
	assert.Equal(t, 65123.0, byName["Department of Defense"])
	assert.Equal(t, 112456.0, byName["Social Security Administration"])
	assert.Equal(t, 812.0, byName["Environmental Protection Agency"])
}

func TestExtractDepartments_RatioFromBudgetEstimate(t *testing.T) {
	records := ExtractDepartments(departmentsText, []string{"Department of Defense"}, nil)

	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, 370998.0, r.PriorPeriod)
	assert.Equal(t, 820000.0, r.BudgetEstimate)
	assert.InDelta(t, 7.94, r.RatioPercentage, 0.001)
}

func TestExtractDepartments_MissingRowsAreSkipped(t *testing.T) {
	records := ExtractDepartments(departmentsText, []string{"Department of Agriculture", "Legislative Branch"}, nil)
	assert.Empty(t, records)
}

func TestExtractDepartments_UnknownNamesRejected(t *testing.T) {
	text := "Department of Silly Walks 1,000 2,000 3,000 4,000"
	records := ExtractDepartments(text, []string{"Department of Silly Walks"}, nil)
	assert.Empty(t, records)
}
