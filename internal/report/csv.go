package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gitweek/gitweek/internal/models"
)

// WriteCSV writes the combined summary table as delimited text.
func WriteCSV(path string, rows []*models.FileSummaryRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(FileColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(rowValues(row)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
