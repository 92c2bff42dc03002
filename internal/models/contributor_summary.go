package models

// bulkCommitMaxRatio is the share of a contributor's files allowed to carry
// the same last commit timestamp before the rollup flags them.
const bulkCommitMaxRatio = 0.1

// ContributorSummaryRow is the per-contributor rollup of the file table.
type ContributorSummaryRow struct {
	DisplayName           string `json:"display_name"`
	User                  string `json:"user"`
	FileCount             int    `json:"file_count"`
	SuccessCount          int    `json:"success_count"`
	WarningCount          int    `json:"warning_count"`
	FailCount             int    `json:"fail_count"`
	LatestCommitFileCount int    `json:"latest_commit_file_count"`
}

// BulkCommitSuspected reports whether too many files share the same last
// commit timestamp, which usually means the week's work was pushed in one
// batch near the deadline.
func (r *ContributorSummaryRow) BulkCommitSuspected() bool {
	if r.FileCount == 0 {
		return false
	}
	return float64(r.LatestCommitFileCount)/float64(r.FileCount) > bulkCommitMaxRatio
}
