package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gitweek/gitweek/internal/models"
)

var kst = time.FixedZone("KST", 9*60*60)

func sampleRow() *models.FileSummaryRow {
	similarity := 92.31
	row := models.NewFileSummaryRow("Alice Kim", "alice", "week03/app.py")
	row.CommitCount = 4
	row.LastCommitDate = time.Date(2026, 3, 5, 19, 30, 0, 0, kst)
	row.Status = models.FileStatusModified
	row.URL = "https://github.com/alice/hello/blob/main/week03/app.py"
	row.MeanTotalChanges = 12.5
	row.MeanAdditions = 9.25
	row.MeanDeletions = 3.25
	row.CodingMinutes = 145
	row.Loc = 80
	row.CodeSimilarity = &similarity
	row.ProvisionalGrade = models.GradeWarning
	row.FinalGrade = models.GradeSuccess
	return row
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_users_summary.csv")
	rows := []*models.FileSummaryRow{sampleRow()}

	err := WriteCSV(path, rows)
	assert.NoError(t, err)

	file, err := os.Open(path)
	assert.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, FileColumns, records[0])
	assert.Equal(t, []string{
		"Alice Kim",
		"alice",
		"week03/app.py",
		"4",
		"2026-03-05 19:30",
		"modified",
		"12.50 (9.25/3.25)",
		"92.31%",
		"145분",
		"success",
	}, records[1])
}

func TestWriteCSVRendersMissingSimilarity(t *testing.T) {
	row := sampleRow()
	row.CodeSimilarity = nil

	path := filepath.Join(t.TempDir(), "all_users_summary.csv")
	err := WriteCSV(path, []*models.FileSummaryRow{row})
	assert.NoError(t, err)

	file, err := os.Open(path)
	assert.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, "NaN%", records[1][7])
}
