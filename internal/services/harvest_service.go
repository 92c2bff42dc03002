package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/time/rate"

	"github.com/gitweek/gitweek/internal/models"
	"github.com/gitweek/gitweek/pkg/logger"
)

const commitsPerPage = 100

// kst is the reporting timezone. Commit author timestamps arrive in UTC and
// are shifted by a fixed +9 hours.
var kst = time.FixedZone("KST", 9*60*60)

// HarvestOptions controls which changed files survive the harvest.
type HarvestOptions struct {
	// Directory is the remote path prefix a file must start with. Empty
	// matches every path.
	Directory string
	// Extension is the source extension under study, e.g. ".py".
	Extension string
	// ExcludeFirstCommit drops each file's earliest commit in the window
	// when the file has more than one.
	ExcludeFirstCommit bool
}

// HarvestService walks the commit list of a repository and collects per-file
// change records for one contributor and one week.
type HarvestService struct {
	clients ClientFactory
	limiter *rate.Limiter
}

// NewHarvestService creates a harvester that paces per-commit detail
// requests at the given rate to stay under the API rate limit.
func NewHarvestService(clients ClientFactory, requestsPerSecond float64) *HarvestService {
	return &HarvestService{
		clients: clients,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Harvest collects the contributor's commit file records for the week.
//
// Pass 1 filters commits server-side by GitHub login. When that finds
// nothing, pass 2 walks every commit and matches the raw commit author name
// against the login instead, which covers contributors whose local git
// author name differs from their GitHub account. The fallback is best-effort
// and can still miss work committed under a third name.
func (s *HarvestService) Harvest(ctx context.Context, token string, repo *models.RepositoryRef, username string, week *models.WeekWindow, opts HarvestOptions) []models.CommitFileRecord {
	client := s.clients(token)

	records := s.fetchCommits(ctx, client, repo, username, week, opts, true)
	if len(records) == 0 {
		logger.Warnf("no commits found for GitHub username %q, retrying with commit author name match", username)
		records = s.fetchCommits(ctx, client, repo, username, week, opts, false)
	}

	if opts.ExcludeFirstCommit {
		records = ExcludeFirstCommits(records)
	}
	return records
}

// fetchCommits runs one harvest pass. A failed page listing aborts the pass
// and yields an empty result; a failed detail fetch skips just that commit.
func (s *HarvestService) fetchCommits(ctx context.Context, client *github.Client, repo *models.RepositoryRef, username string, week *models.WeekWindow, opts HarvestOptions, byAuthor bool) []models.CommitFileRecord {
	listOpts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: commitsPerPage},
	}
	if byAuthor {
		listOpts.Author = username
	}

	var records []models.CommitFileRecord
	for page := 1; ; page++ {
		listOpts.Page = page
		commits, _, err := client.Repositories.ListCommits(ctx, repo.Owner, repo.Name, listOpts)
		if err != nil {
			logger.WithError(err).Errorf("commit list failed for %s", repo)
			return nil
		}
		if len(commits) == 0 {
			break
		}

		for _, commit := range commits {
			if !byAuthor && commit.GetCommit().GetAuthor().GetName() != username {
				continue
			}

			if err := s.limiter.Wait(ctx); err != nil {
				return records
			}
			detail, _, err := client.Repositories.GetCommit(ctx, repo.Owner, repo.Name, commit.GetSHA(), nil)
			if err != nil {
				logger.WithError(err).Debugf("commit detail fetch failed for %s", commit.GetSHA())
				continue
			}

			date := detail.GetCommit().GetAuthor().GetDate().Time.In(kst)
			if !week.Contains(date) {
				continue
			}

			for _, file := range detail.Files {
				if !s.keepFile(file, opts) {
					continue
				}
				records = append(records, models.CommitFileRecord{
					User:         username,
					Date:         date,
					Filename:     file.GetFilename(),
					TotalChanges: file.GetChanges(),
					Additions:    file.GetAdditions(),
					Deletions:    file.GetDeletions(),
					Status:       models.FileStatus(file.GetStatus()),
					URL:          detail.GetHTMLURL(),
				})
			}
		}
	}

	return records
}

// keepFile applies the directory prefix, extension and status filters.
func (s *HarvestService) keepFile(file *github.CommitFile, opts HarvestOptions) bool {
	filename := file.GetFilename()
	if !strings.HasPrefix(filename, opts.Directory) {
		return false
	}
	if !strings.HasSuffix(filename, opts.Extension) {
		return false
	}
	return models.FileStatus(file.GetStatus()) != models.FileStatusRemoved
}

// ExcludeFirstCommits drops the chronologically earliest record of every
// file that has more than one record. Files with a single record keep it.
// Ties on the timestamp are broken by first occurrence.
func ExcludeFirstCommits(records []models.CommitFileRecord) []models.CommitFileRecord {
	counts := make(map[string]int)
	for _, record := range records {
		counts[record.Filename]++
	}

	earliest := make(map[string]int)
	for i, record := range records {
		j, ok := earliest[record.Filename]
		if !ok || record.Date.Before(records[j].Date) {
			earliest[record.Filename] = i
		}
	}

	kept := make([]models.CommitFileRecord, 0, len(records))
	for i, record := range records {
		if counts[record.Filename] > 1 && earliest[record.Filename] == i {
			continue
		}
		kept = append(kept, record)
	}
	return kept
}
