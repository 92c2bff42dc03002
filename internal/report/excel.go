package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gitweek/gitweek/internal/models"
)

const summarySheet = "Summary"

// WriteExcel writes the combined summary table as an .xlsx workbook.
func WriteExcel(path string, rows []*models.FileSummaryRow) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, label := range FileColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(summarySheet, cell, label); err != nil {
			return err
		}
	}

	for rowIdx, row := range rows {
		for col, value := range rowValues(row) {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(summarySheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}
