package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/gitweek/gitweek/internal/models"
	"github.com/gitweek/gitweek/pkg/logger"
)

// RunOptions configures one reporting run across every tracked account.
type RunOptions struct {
	AccountsFile string
	Branch       string
	// Directory is the remote path prefix commits are scoped to. Empty
	// scopes to the repository root.
	Directory string
	// Extension is the source extension under study.
	Extension string
	// LocalBaseDir overrides where local copies live; empty falls back to
	// the week label.
	LocalBaseDir       string
	ExcludeFirstCommit bool
	// FallbackToken authenticates accounts whose accounts-file line carries
	// no token of its own.
	FallbackToken string
}

// AnalysisService drives the whole pipeline: resolve each account's
// repository, harvest its commits, aggregate per file, then flag outliers
// over the combined table.
type AnalysisService struct {
	repositories *RepositoryService
	harvester    *HarvestService
	aggregator   *AggregateService
	outliers     *OutlierService
	weeks        *WeekService
	accounts     *AccountService
}

func NewAnalysisService(
	repositories *RepositoryService,
	harvester *HarvestService,
	aggregator *AggregateService,
	outliers *OutlierService,
	weeks *WeekService,
	accounts *AccountService,
) *AnalysisService {
	return &AnalysisService{
		repositories: repositories,
		harvester:    harvester,
		aggregator:   aggregator,
		outliers:     outliers,
		weeks:        weeks,
		accounts:     accounts,
	}
}

// Run analyzes every account for the configured week and returns the
// combined summary table with final grades applied. A failure to resolve one
// account's repository is logged and the run continues with the rest; only a
// missing week descriptor or accounts file is fatal.
func (s *AnalysisService) Run(ctx context.Context, opts RunOptions) ([]*models.FileSummaryRow, *models.WeekWindow, error) {
	week, err := s.weeks.Load()
	if err != nil {
		return nil, nil, err
	}

	accounts, err := s.accounts.Load(opts.AccountsFile)
	if err != nil {
		return nil, nil, err
	}

	var combined []*models.FileSummaryRow
	for _, account := range accounts {
		logger.WithFields(logrus.Fields{
			"name": account.DisplayName,
			"repo": account.RepoURL,
		}).Info("analyzing contributor")

		rows, err := s.analyzeAccount(ctx, account, week, opts)
		if err != nil {
			logger.WithError(err).Errorf("analysis failed for %s", account.DisplayName)
			continue
		}
		if len(rows) == 0 {
			logger.Warnf("no commit data for %s in %s", account.DisplayName, week.Label)
			continue
		}
		combined = append(combined, rows...)
	}

	s.outliers.Finalize(combined)
	return combined, week, nil
}

// analyzeAccount runs resolve, harvest and aggregate for a single account.
func (s *AnalysisService) analyzeAccount(ctx context.Context, account models.Account, week *models.WeekWindow, opts RunOptions) ([]*models.FileSummaryRow, error) {
	token := account.Token
	if token == "" {
		token = opts.FallbackToken
	}

	ref, err := s.repositories.Resolve(ctx, account.RepoURL, token)
	if err != nil {
		return nil, err
	}

	records := s.harvester.Harvest(ctx, token, ref, account.Username, week, HarvestOptions{
		Directory:          opts.Directory,
		Extension:          opts.Extension,
		ExcludeFirstCommit: opts.ExcludeFirstCommit,
	})
	if len(records) == 0 {
		return nil, nil
	}

	localBase := opts.LocalBaseDir
	if localBase == "" {
		localBase = week.Label
	}
	rows := s.aggregator.Aggregate(ctx, token, ref, records, AggregateOptions{
		Branch:          opts.Branch,
		LocalBaseDir:    localBase,
		DirectoryPrefix: opts.Directory,
		DisplayName:     account.DisplayName,
	})
	return rows, nil
}
