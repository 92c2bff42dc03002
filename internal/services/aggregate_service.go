package services

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gitweek/gitweek/internal/models"
	"github.com/gitweek/gitweek/pkg/logger"
)

// AggregateOptions carries the per-contributor context the aggregation
// needs beyond the records themselves.
type AggregateOptions struct {
	Branch string
	// LocalBaseDir is where the contributor's local copy of the week's
	// files lives, usually the week label.
	LocalBaseDir string
	// DirectoryPrefix is stripped from the remote path before joining it
	// with LocalBaseDir.
	DirectoryPrefix string
	DisplayName     string
}

// AggregateService rolls harvested commit file records into one summary row
// per file, enriched with the remote line count and the local-vs-remote
// similarity score.
type AggregateService struct {
	contents   *ContentService
	similarity *SimilarityService
}

func NewAggregateService(contents *ContentService, similarity *SimilarityService) *AggregateService {
	return &AggregateService{contents: contents, similarity: similarity}
}

// Aggregate groups records by filename and produces a FileSummaryRow per
// file. Files whose remote line count cannot be resolved are dropped; a
// missing local copy only leaves the similarity absent.
func (s *AggregateService) Aggregate(ctx context.Context, token string, repo *models.RepositoryRef, records []models.CommitFileRecord, opts AggregateOptions) []*models.FileSummaryRow {
	groups := make(map[string][]models.CommitFileRecord)
	var order []string
	for _, record := range records {
		if _, ok := groups[record.Filename]; !ok {
			order = append(order, record.Filename)
		}
		groups[record.Filename] = append(groups[record.Filename], record)
	}

	var rows []*models.FileSummaryRow
	for _, filename := range order {
		row := s.buildRow(filename, groups[filename], opts)

		loc := s.contents.FetchLineCount(ctx, token, repo.Owner, repo.Name, opts.Branch, filename)
		if loc == nil {
			logger.Debugf("dropping %s: remote line count unavailable", filename)
			continue
		}
		row.Loc = *loc

		row.CodeSimilarity = s.compareWithLocal(ctx, token, repo, filename, opts)
		rows = append(rows, row)
	}
	return rows
}

// buildRow computes the aggregate statistics for one file's record group.
func (s *AggregateService) buildRow(filename string, group []models.CommitFileRecord, opts AggregateOptions) *models.FileSummaryRow {
	first, last := group[0].Date, group[0].Date
	lastIdx := 0
	var totals, additions, deletions int
	for i, record := range group {
		if record.Date.Before(first) {
			first = record.Date
		}
		if !record.Date.Before(last) {
			last = record.Date
			lastIdx = i
		}
		totals += record.TotalChanges
		additions += record.Additions
		deletions += record.Deletions
	}

	count := float64(len(group))
	row := models.NewFileSummaryRow(opts.DisplayName, group[0].User, filename)
	row.CommitCount = len(group)
	row.LastCommitDate = last
	row.Status = group[lastIdx].Status
	row.URL = group[lastIdx].URL
	row.MeanTotalChanges = round2(float64(totals) / count)
	row.MeanAdditions = round2(float64(additions) / count)
	row.MeanDeletions = round2(float64(deletions) / count)
	// Whole minutes, truncated toward zero
	row.CodingMinutes = int(last.Sub(first).Seconds() / 60)
	row.ProvisionalGrade = ProvisionalGrade(len(group))
	return row
}

// compareWithLocal scores the local copy against the remote file, or returns
// nil when either side is unavailable.
func (s *AggregateService) compareWithLocal(ctx context.Context, token string, repo *models.RepositoryRef, filename string, opts AggregateOptions) *float64 {
	relPath := strings.TrimPrefix(filename, opts.DirectoryPrefix)
	localPath := filepath.Join(opts.LocalBaseDir, strings.TrimPrefix(relPath, "/"))

	localCode, err := os.ReadFile(localPath)
	if err != nil {
		return nil
	}

	remoteCode := s.contents.FetchContent(ctx, token, repo.Owner, repo.Name, opts.Branch, filename)
	if remoteCode == nil {
		return nil
	}

	similarity := s.similarity.CalculateSimilarity(string(localCode), *remoteCode)
	return &similarity
}

// ProvisionalGrade grades a file by commit count alone. The outlier pass
// assigns the final grade afterwards; the two mappings are independent.
func ProvisionalGrade(count int) models.Grade {
	switch {
	case count == 1:
		return models.GradeFail
	case count >= 2 && count < 5:
		return models.GradeWarning
	default:
		return models.GradeSuccess
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
