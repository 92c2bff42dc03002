package repositories

import (
	"database/sql"

	"github.com/gitweek/gitweek/internal/models"
)

type SummaryRepository struct {
	db *sql.DB
}

func NewSummaryRepository(db *sql.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Create persists one file summary row for a week's run
func (r *SummaryRepository) Create(weekLabel string, row *models.FileSummaryRow) error {
	query := `
		INSERT INTO file_summaries (
			id, week_label, display_name, user, filename, commit_count,
			last_commit_date, status, url, mean_total_changes, mean_additions,
			mean_deletions, coding_minutes, loc, code_similarity,
			provisional_grade, final_grade
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		row.ID, weekLabel, row.DisplayName, row.User, row.Filename, row.CommitCount,
		row.LastCommitDate, string(row.Status), row.URL, row.MeanTotalChanges, row.MeanAdditions,
		row.MeanDeletions, row.CodingMinutes, row.Loc, row.CodeSimilarity,
		string(row.ProvisionalGrade), string(row.FinalGrade),
	)

	return err
}

// GetByWeek retrieves all persisted summary rows for a week label
func (r *SummaryRepository) GetByWeek(weekLabel string) ([]*models.FileSummaryRow, error) {
	query := `
		SELECT id, display_name, user, filename, commit_count, last_commit_date,
			status, url, mean_total_changes, mean_additions, mean_deletions,
			coding_minutes, loc, code_similarity, provisional_grade, final_grade,
			created_at
		FROM file_summaries WHERE week_label = ?
		ORDER BY display_name, user, filename
	`

	rows, err := r.db.Query(query, weekLabel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*models.FileSummaryRow
	for rows.Next() {
		row := &models.FileSummaryRow{}
		var status, provisional, final string
		err := rows.Scan(
			&row.ID, &row.DisplayName, &row.User, &row.Filename, &row.CommitCount, &row.LastCommitDate,
			&status, &row.URL, &row.MeanTotalChanges, &row.MeanAdditions, &row.MeanDeletions,
			&row.CodingMinutes, &row.Loc, &row.CodeSimilarity, &provisional, &final,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		row.Status = models.FileStatus(status)
		row.ProvisionalGrade = models.Grade(provisional)
		row.FinalGrade = models.Grade(final)
		summaries = append(summaries, row)
	}

	return summaries, rows.Err()
}

// DeleteByWeek removes a week's rows so a rerun starts fresh
func (r *SummaryRepository) DeleteByWeek(weekLabel string) error {
	_, err := r.db.Exec("DELETE FROM file_summaries WHERE week_label = ?", weekLabel)
	return err
}
