package services

import (
	"math"
	"sort"

	"github.com/gitweek/gitweek/internal/models"
)

// Outlier thresholds. These constants are part of the grading contract and
// are kept as-is rather than re-derived.
const (
	lowCommitZScore   = -1.0
	highChangesZScore = 2.0
	lowDurationZScore = -1.0
	similarityFloor   = 85.0
	failOutlierCount  = 3
)

// OutlierService flags statistical outliers across the whole run's file
// table and derives each row's final grade. It is pure computation: empty or
// degenerate input is handled without error.
type OutlierService struct{}

func NewOutlierService() *OutlierService {
	return &OutlierService{}
}

// Finalize computes per-metric z-scores over all rows, sets the outlier
// flags and overwrites each row's final grade. The provisional grade from
// aggregation is left untouched.
func (s *OutlierService) Finalize(rows []*models.FileSummaryRow) {
	if len(rows) == 0 {
		return
	}

	commitCounts := make([]float64, len(rows))
	meanChanges := make([]float64, len(rows))
	codingMinutes := make([]float64, len(rows))
	for i, row := range rows {
		commitCounts[i] = float64(row.CommitCount)
		meanChanges[i] = row.MeanTotalChanges
		codingMinutes[i] = float64(row.CodingMinutes)
	}

	commitZ := zScores(commitCounts)
	changesZ := zScores(meanChanges)
	minutesZ := zScores(codingMinutes)

	for i, row := range rows {
		row.ZScores = models.ZScores{
			CommitCount:    round2(commitZ[i]),
			MeanChanges:    round2(changesZ[i]),
			CodingDuration: round2(minutesZ[i]),
		}
		row.Outliers = models.OutlierFlags{
			CommitCount:    commitZ[i] < lowCommitZScore,
			MeanChanges:    changesZ[i] > highChangesZScore,
			CodeSimilarity: row.CodeSimilarity == nil || *row.CodeSimilarity < similarityFloor,
			CodingDuration: minutesZ[i] < lowDurationZScore,
		}
		row.FinalGrade = FinalGrade(row.Outliers.Count())
	}
}

// FinalGrade maps the number of flagged metrics to a grade.
func FinalGrade(outlierCount int) models.Grade {
	switch {
	case outlierCount == 0:
		return models.GradeSuccess
	case outlierCount < failOutlierCount:
		return models.GradeWarning
	default:
		return models.GradeFail
	}
}

// Summarize rolls the finalized file table up into one row per contributor,
// sorted by display name then username.
func (s *OutlierService) Summarize(rows []*models.FileSummaryRow) []*models.ContributorSummaryRow {
	type key struct {
		displayName string
		user        string
	}

	groups := make(map[key][]*models.FileSummaryRow)
	var keys []key
	for _, row := range rows {
		k := key{displayName: row.DisplayName, user: row.User}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], row)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].displayName != keys[j].displayName {
			return keys[i].displayName < keys[j].displayName
		}
		return keys[i].user < keys[j].user
	})

	var summaries []*models.ContributorSummaryRow
	for _, k := range keys {
		group := groups[k]
		summary := &models.ContributorSummaryRow{
			DisplayName: k.displayName,
			User:        k.user,
			FileCount:   len(group),
		}
		for _, row := range group {
			switch row.FinalGrade {
			case models.GradeSuccess:
				summary.SuccessCount++
			case models.GradeWarning:
				summary.WarningCount++
			case models.GradeFail:
				summary.FailCount++
			}
		}
		summary.LatestCommitFileCount = modeCount(group)
		summaries = append(summaries, summary)
	}
	return summaries
}

// modeCount returns how many rows share the contributor's most frequent last
// commit timestamp. Ties resolve to the lexicographically smallest value.
func modeCount(rows []*models.FileSummaryRow) int {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.LastCommitText()]++
	}

	mode := ""
	best := 0
	for value, count := range counts {
		if count > best || (count == best && value < mode) {
			mode = value
			best = count
		}
	}
	return best
}

// zScores returns the population z-score of every value. A metric with zero
// variance yields all-zero scores so it can never flag an outlier.
func zScores(values []float64) []float64 {
	scores := make([]float64, len(values))
	if len(values) == 0 {
		return scores
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	std := math.Sqrt(variance / float64(len(values)))
	if std == 0 {
		return scores
	}

	for i, v := range values {
		scores[i] = (v - mean) / std
	}
	return scores
}
