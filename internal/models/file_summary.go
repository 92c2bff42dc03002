package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Grade is the evaluation assigned to a file or kept per contributor.
type Grade string

const (
	GradeSuccess Grade = "success"
	GradeWarning Grade = "warning"
	GradeFail    Grade = "fail"
)

// OutlierFlags are the per-metric outlier booleans computed over the whole
// run's table. They only exist to derive the final grade and report styling.
type OutlierFlags struct {
	CommitCount    bool `json:"commit_count"`
	MeanChanges    bool `json:"mean_changes"`
	CodeSimilarity bool `json:"code_similarity"`
	CodingDuration bool `json:"coding_duration"`
}

// Count returns how many metrics are flagged (0-4).
func (f OutlierFlags) Count() int {
	n := 0
	for _, flagged := range []bool{f.CommitCount, f.MeanChanges, f.CodeSimilarity, f.CodingDuration} {
		if flagged {
			n++
		}
	}
	return n
}

// ZScores holds the rounded z-scores shown next to each metric in the report.
type ZScores struct {
	CommitCount    float64 `json:"commit_count"`
	MeanChanges    float64 `json:"mean_changes"`
	CodingDuration float64 `json:"coding_duration"`
}

// FileSummaryRow is one aggregated row per unique filename.
// ProvisionalGrade comes from the aggregation pass (commit count only);
// FinalGrade is assigned later by the outlier pass and is the one exposed
// in reports. They are deliberately separate fields.
type FileSummaryRow struct {
	ID               string       `json:"id"`
	DisplayName      string       `json:"display_name"`
	User             string       `json:"user"`
	Filename         string       `json:"filename"`
	CommitCount      int          `json:"commit_count"`
	LastCommitDate   time.Time    `json:"last_commit_date"`
	Status           FileStatus   `json:"status"`
	URL              string       `json:"url"`
	MeanTotalChanges float64      `json:"mean_total_changes"`
	MeanAdditions    float64      `json:"mean_additions"`
	MeanDeletions    float64      `json:"mean_deletions"`
	CodingMinutes    int          `json:"coding_minutes"`
	Loc              int          `json:"loc"`
	CodeSimilarity   *float64     `json:"code_similarity"`
	ProvisionalGrade Grade        `json:"provisional_grade"`
	FinalGrade       Grade        `json:"final_grade"`
	Outliers         OutlierFlags `json:"outliers"`
	ZScores          ZScores      `json:"z_scores"`
	CreatedAt        time.Time    `json:"created_at"`
}

// NewFileSummaryRow creates a summary row with a generated UUID.
func NewFileSummaryRow(displayName, user, filename string) *FileSummaryRow {
	return &FileSummaryRow{
		ID:          uuid.New().String(),
		DisplayName: displayName,
		User:        user,
		Filename:    filename,
		CreatedAt:   time.Now(),
	}
}

// LastCommitText formats the last commit date for the report tables.
func (r *FileSummaryRow) LastCommitText() string {
	return r.LastCommitDate.Format("2006-01-02 15:04")
}

// CodingDurationText renders the coding duration in whole minutes,
// e.g. "150분".
func (r *FileSummaryRow) CodingDurationText() string {
	return fmt.Sprintf("%d분", r.CodingMinutes)
}

// MeanChangesText renders the mean changed lines as "X.XX (Y.YY/Z.ZZ)".
func (r *FileSummaryRow) MeanChangesText() string {
	return fmt.Sprintf("%.2f (%.2f/%.2f)", r.MeanTotalChanges, r.MeanAdditions, r.MeanDeletions)
}

// SimilarityText renders the similarity percentage, "NaN%" when absent.
func (r *FileSummaryRow) SimilarityText() string {
	if r.CodeSimilarity == nil {
		return "NaN%"
	}
	return fmt.Sprintf("%.2f%%", *r.CodeSimilarity)
}
