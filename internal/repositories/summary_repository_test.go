package repositories

import (
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/gitweek/gitweek/internal/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../migrations/001_create_file_summaries.sql")
	assert.NoError(t, err)
	_, err = db.Exec(string(schema))
	assert.NoError(t, err)

	return db
}

func testSummaryRow(user, filename string) *models.FileSummaryRow {
	row := models.NewFileSummaryRow(user, user, filename)
	row.CommitCount = 5
	row.LastCommitDate = time.Date(2026, 3, 5, 19, 30, 0, 0, time.UTC)
	row.Status = models.FileStatusModified
	row.URL = "https://github.com/" + user + "/hello/blob/main/" + filename
	row.MeanTotalChanges = 12.5
	row.MeanAdditions = 9.25
	row.MeanDeletions = 3.25
	row.CodingMinutes = 145
	row.Loc = 80
	row.ProvisionalGrade = models.GradeSuccess
	row.FinalGrade = models.GradeWarning
	return row
}

func TestSummaryRepositoryRoundTrip(t *testing.T) {
	repo := NewSummaryRepository(setupTestDB(t))

	similarity := 92.31
	withSimilarity := testSummaryRow("alice", "week03/app.py")
	withSimilarity.CodeSimilarity = &similarity
	withoutSimilarity := testSummaryRow("alice", "week03/util.py")

	assert.NoError(t, repo.Create("week03", withSimilarity))
	assert.NoError(t, repo.Create("week03", withoutSimilarity))

	rows, err := repo.GetByWeek("week03")
	assert.NoError(t, err)
	assert.Len(t, rows, 2)

	// Ordered by display name, user, filename
	assert.Equal(t, "week03/app.py", rows[0].Filename)
	assert.Equal(t, "week03/util.py", rows[1].Filename)

	first := rows[0]
	assert.Equal(t, withSimilarity.ID, first.ID)
	assert.Equal(t, "alice", first.User)
	assert.Equal(t, 5, first.CommitCount)
	assert.Equal(t, models.FileStatusModified, first.Status)
	assert.Equal(t, 12.5, first.MeanTotalChanges)
	assert.Equal(t, 145, first.CodingMinutes)
	assert.Equal(t, 80, first.Loc)
	assert.Equal(t, models.GradeSuccess, first.ProvisionalGrade)
	assert.Equal(t, models.GradeWarning, first.FinalGrade)
	assert.True(t, first.LastCommitDate.Equal(withSimilarity.LastCommitDate))

	// NULL similarity survives the round trip as nil
	assert.NotNil(t, first.CodeSimilarity)
	assert.Equal(t, 92.31, *first.CodeSimilarity)
	assert.Nil(t, rows[1].CodeSimilarity)
}

func TestSummaryRepositoryGetByWeekEmpty(t *testing.T) {
	repo := NewSummaryRepository(setupTestDB(t))

	rows, err := repo.GetByWeek("week99")
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSummaryRepositoryDeleteByWeek(t *testing.T) {
	repo := NewSummaryRepository(setupTestDB(t))

	assert.NoError(t, repo.Create("week03", testSummaryRow("alice", "week03/app.py")))
	assert.NoError(t, repo.Create("week04", testSummaryRow("alice", "week04/app.py")))

	assert.NoError(t, repo.DeleteByWeek("week03"))

	rows, err := repo.GetByWeek("week03")
	assert.NoError(t, err)
	assert.Empty(t, rows)

	kept, err := repo.GetByWeek("week04")
	assert.NoError(t, err)
	assert.Len(t, kept, 1)
}
