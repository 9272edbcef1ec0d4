package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fiscaldata/mts-tracker/internal/entity"
)

// Service produces XLSX bytes for department exports.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportDepartmentsXLSX returns an XLSX workbook (as bytes) for one period's
// department figures. Rows keep the order the caller passed, so a ranked set
// exports ranked.
func (s *Service) ExportDepartmentsXLSX(set entity.DepartmentSet) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Departments"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet so the workbook opens on Departments.
	_ = f.DeleteSheet("Sheet1")

	headers := []string{
		"Department",
		"This Month",
		"Fiscal Year to Date",
		"Prior Period",
		"Budget Estimate",
		"% of Budget Estimate",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, d := range set.Departments {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, d.Department)
		write(2, d.ThisMonth)
		write(3, d.FiscalYearToDate)
		write(4, d.PriorPeriod)
		write(5, d.BudgetEstimate)
		write(6, d.RatioPercentage)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 40) // department name
	_ = f.SetColWidth(sheet, "B", "E", 18) // amounts
	_ = f.SetColWidth(sheet, "F", "F", 20) // ratio

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"period", set.Period,
		"rows", len(set.Departments),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
