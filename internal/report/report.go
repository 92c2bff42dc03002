package report

import (
	"strconv"

	"github.com/gitweek/gitweek/internal/models"
)

// FileColumns is the column set of the combined summary table. The Korean
// labels are part of the contract with downstream consumers of the CSV and
// Excel exports and must be preserved verbatim.
var FileColumns = []string{
	"이름",
	"user",
	"파일명",
	"총 커밋 수",
	"최근 커밋일시",
	"상태",
	"평균 수정 라인 수 (+/-)",
	"코드 유사도",
	"코딩 시간",
	"평가",
}

// rowValues renders one summary row in FileColumns order.
func rowValues(row *models.FileSummaryRow) []string {
	return []string{
		row.DisplayName,
		row.User,
		row.Filename,
		strconv.Itoa(row.CommitCount),
		row.LastCommitText(),
		string(row.Status),
		row.MeanChangesText(),
		row.SimilarityText(),
		row.CodingDurationText(),
		string(row.FinalGrade),
	}
}
