package report

import (
	"fmt"
	"html/template"
	"os"
	"sort"

	"github.com/gitweek/gitweek/internal/models"
)

const (
	outlierStyle    = "color: red; text-decoration: underline; font-weight: bold;"
	similarityStyle = "color:red; font-weight:bold; text-decoration: underline;"
	flaggedRowStyle = "background-color: #ffdddd;"
)

var gradeStyles = map[models.Grade]string{
	models.GradeFail:    "background-color: #ffdddd;",
	models.GradeWarning: "background-color: #fffacc;",
	models.GradeSuccess: "background-color: #ddffdd;",
}

// HTMLWriter renders the two-table weekly report: per-file statistics with
// z-scores, then the per-contributor rollup.
type HTMLWriter struct {
	week *models.WeekWindow
}

func NewHTMLWriter(week *models.WeekWindow) *HTMLWriter {
	return &HTMLWriter{week: week}
}

type fileRowView struct {
	WeekLabel       string
	Filename        string
	URL             string
	LastCommit      string
	Status          string
	CommitCount     int
	CommitZ         string
	CommitStyle     template.CSS
	MeanChanges     string
	ChangesZ        string
	ChangesStyle    template.CSS
	Similarity      string
	SimilarityStyle template.CSS
	Duration        string
	DurationZ       string
	DurationStyle   template.CSS
	Grade           string
	GradeStyle      template.CSS
}

type fileGroupView struct {
	RowNumber   int
	RowSpan     int
	DisplayName string
	User        string
	Rows        []fileRowView
}

type contributorView struct {
	RowNumber   int
	DisplayName string
	User        string
	FileCount   int
	LatestCount int
	LatestStyle template.CSS
	Success     int
	Warning     int
	Fail        int
}

type pageView struct {
	Title        string
	Groups       []fileGroupView
	Contributors []contributorView
}

// Write renders the report for the given rows and contributor rollup.
// Rows are grouped by display name and username, both tables sorted the
// same way.
func (w *HTMLWriter) Write(path, title string, rows []*models.FileSummaryRow, contributors []*models.ContributorSummaryRow) error {
	page := pageView{
		Title:        title,
		Groups:       w.buildGroups(rows),
		Contributors: buildContributorViews(contributors),
	}

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := tmpl.Execute(file, page); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func (w *HTMLWriter) buildGroups(rows []*models.FileSummaryRow) []fileGroupView {
	sorted := make([]*models.FileSummaryRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].DisplayName != sorted[j].DisplayName {
			return sorted[i].DisplayName < sorted[j].DisplayName
		}
		return sorted[i].User < sorted[j].User
	})

	var groups []fileGroupView
	for _, row := range sorted {
		n := len(groups)
		if n == 0 || groups[n-1].DisplayName != row.DisplayName || groups[n-1].User != row.User {
			groups = append(groups, fileGroupView{
				RowNumber:   n + 1,
				DisplayName: row.DisplayName,
				User:        row.User,
			})
			n++
		}
		groups[n-1].Rows = append(groups[n-1].Rows, w.buildRowView(row))
	}
	for i := range groups {
		groups[i].RowSpan = len(groups[i].Rows)
	}
	return groups
}

func (w *HTMLWriter) buildRowView(row *models.FileSummaryRow) fileRowView {
	view := fileRowView{
		Filename:    row.Filename,
		URL:         row.URL,
		LastCommit:  row.LastCommitText(),
		Status:      string(row.Status),
		CommitCount: row.CommitCount,
		CommitZ:     fmt.Sprintf("%.2f", row.ZScores.CommitCount),
		MeanChanges: row.MeanChangesText(),
		ChangesZ:    fmt.Sprintf("%.2f", row.ZScores.MeanChanges),
		Similarity:  row.SimilarityText(),
		Duration:    row.CodingDurationText(),
		DurationZ:   fmt.Sprintf("%.2f", row.ZScores.CodingDuration),
		Grade:       string(row.FinalGrade),
		GradeStyle:  template.CSS(gradeStyles[row.FinalGrade]),
	}
	if w.week.Contains(row.LastCommitDate) {
		view.WeekLabel = w.week.Label
	}
	if row.Outliers.CommitCount {
		view.CommitStyle = outlierStyle
	}
	if row.Outliers.MeanChanges {
		view.ChangesStyle = outlierStyle
	}
	if row.Outliers.CodeSimilarity {
		view.SimilarityStyle = similarityStyle
	}
	if row.Outliers.CodingDuration {
		view.DurationStyle = outlierStyle
	}
	return view
}

func buildContributorViews(contributors []*models.ContributorSummaryRow) []contributorView {
	var views []contributorView
	for i, c := range contributors {
		view := contributorView{
			RowNumber:   i + 1,
			DisplayName: c.DisplayName,
			User:        c.User,
			FileCount:   c.FileCount,
			LatestCount: c.LatestCommitFileCount,
			Success:     c.SuccessCount,
			Warning:     c.WarningCount,
			Fail:        c.FailCount,
		}
		if c.BulkCommitSuspected() {
			view.LatestStyle = flaggedRowStyle
		}
		views = append(views, view)
	}
	return views
}

const reportTemplate = `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
    table {
        border-collapse: collapse;
        width: 100%;
        font-family: Arial, sans-serif;
        margin-bottom: 30px;
    }
    th, td {
        border: 1px solid #ccc;
        padding: 8px;
        text-align: center;
    }
    th {
        background-color: #f2f2f2;
    }
    td.filename-col {
        text-align: left;
    }
</style>
</head>
<body>
<h2>{{.Title}} (파일별)</h2>
<table>
<thead>
<tr>
    <th>순번</th>
    <th>주차</th>
    <th>이름</th>
    <th>user</th>
    <th>파일명</th>
    <th>최근 커밋일시</th>
    <th>상태</th>
    <th>총 커밋 수 (Z-score)</th>
    <th>평균 수정 라인 수 (+/-) (Z-score)</th>
    <th>코드 유사도</th>
    <th>코딩 시간 (Z-score)</th>
    <th>평가</th>
</tr>
</thead>
<tbody>
{{- range $group := .Groups}}
{{- range $i, $row := $group.Rows}}
<tr>
{{- if eq $i 0}}
    <td rowspan="{{$group.RowSpan}}">{{$group.RowNumber}}</td>
    <td rowspan="{{$group.RowSpan}}">{{$row.WeekLabel}}</td>
    <td rowspan="{{$group.RowSpan}}">{{$group.DisplayName}}</td>
    <td rowspan="{{$group.RowSpan}}">{{$group.User}}</td>
{{- end}}
    <td class="filename-col"><a href="{{$row.URL}}" target="_blank">{{$row.Filename}}</a></td>
    <td>{{$row.LastCommit}}</td>
    <td>{{$row.Status}}</td>
    <td style="{{$row.CommitStyle}}">{{$row.CommitCount}} ({{$row.CommitZ}})</td>
    <td style="{{$row.ChangesStyle}}">{{$row.MeanChanges}} ({{$row.ChangesZ}})</td>
    <td style="{{$row.SimilarityStyle}}">{{$row.Similarity}}</td>
    <td style="{{$row.DurationStyle}}">{{$row.Duration}} ({{$row.DurationZ}})</td>
    <td style="{{$row.GradeStyle}}">{{$row.Grade}}</td>
</tr>
{{- end}}
{{- end}}
</tbody>
</table>

<h2>{{.Title}} (사용자별 종합)</h2>
<table>
<thead>
<tr>
    <th>순번</th>
    <th>이름</th>
    <th>user</th>
    <th>조회한 파일의 총 갯수</th>
    <th>최근 커밋일시가 같은 파일 수</th>
    <th>success 수</th>
    <th>warning 수</th>
    <th>fail 수</th>
</tr>
</thead>
<tbody>
{{- range $c := .Contributors}}
<tr>
    <td>{{$c.RowNumber}}</td>
    <td>{{$c.DisplayName}}</td>
    <td>{{$c.User}}</td>
    <td>{{$c.FileCount}}</td>
    <td style="{{$c.LatestStyle}}">{{$c.LatestCount}}</td>
    <td>{{$c.Success}}</td>
    <td>{{$c.Warning}}</td>
    <td>{{$c.Fail}}</td>
</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`
