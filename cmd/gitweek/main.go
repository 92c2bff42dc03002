package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gitweek/gitweek/internal/models"
	"github.com/gitweek/gitweek/internal/report"
	"github.com/gitweek/gitweek/internal/repositories"
	"github.com/gitweek/gitweek/internal/services"
	"github.com/gitweek/gitweek/pkg/config"
	"github.com/gitweek/gitweek/pkg/database"
	"github.com/gitweek/gitweek/pkg/logger"
)

func main() {
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitweek",
		Short: "Audit weekly GitHub commit activity for tracked contributors",
	}
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newServeCmd())
	return rootCmd
}

func newAnalyzeCmd() *cobra.Command {
	cfg := config.AppConfig
	opts := services.RunOptions{
		AccountsFile:       cfg.Analysis.AccountsFile,
		Branch:             cfg.Analysis.Branch,
		Directory:          cfg.Analysis.Directory,
		Extension:          cfg.Analysis.Extension,
		LocalBaseDir:       cfg.Analysis.LocalBaseDir,
		ExcludeFirstCommit: cfg.Analysis.ExcludeFirstCommit,
		FallbackToken:      cfg.GitHub.Token,
	}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze every account's commits for the configured week and write reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.AccountsFile, "accounts", opts.AccountsFile, "accounts file (url,token,username[,name] per line)")
	cmd.Flags().StringVar(&opts.Branch, "branch", opts.Branch, "branch to audit")
	cmd.Flags().StringVar(&opts.Directory, "directory", opts.Directory, "remote directory prefix to scope commits to")
	cmd.Flags().StringVar(&opts.Extension, "extension", opts.Extension, "source file extension under study")
	cmd.Flags().BoolVar(&opts.ExcludeFirstCommit, "exclude-first-commit", opts.ExcludeFirstCommit, "drop each file's first commit in the window")
	return cmd
}

func runAnalyze(ctx context.Context, opts services.RunOptions) error {
	cfg := config.AppConfig

	// Wire up the pipeline
	repositoryService := services.NewRepositoryService(services.NewValidationClient)
	harvestService := services.NewHarvestService(services.NewGitHubClient, cfg.GitHub.RequestsPerSecond)
	contentService := services.NewContentService(services.NewGitHubClient)
	similarityService := services.NewSimilarityService(cfg.Analysis.FormatterCommand)
	aggregateService := services.NewAggregateService(contentService, similarityService)
	outlierService := services.NewOutlierService()
	weekService := services.NewWeekService(cfg.Analysis.WeekFile)
	accountService := services.NewAccountService()
	analysisService := services.NewAnalysisService(
		repositoryService, harvestService, aggregateService,
		outlierService, weekService, accountService,
	)

	rows, week, err := analysisService.Run(ctx, opts)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		logger.Warn("no commit data for any contributor, skipping report generation")
		return nil
	}

	outDir := cfg.Report.OutputDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	// Combined artifacts
	if err := report.WriteCSV(filepath.Join(outDir, "all_users_summary.csv"), rows); err != nil {
		return err
	}
	if err := report.WriteExcel(filepath.Join(outDir, "all_users_summary.xlsx"), rows); err != nil {
		return err
	}

	htmlWriter := report.NewHTMLWriter(week)
	contributors := outlierService.Summarize(rows)
	if err := htmlWriter.Write(filepath.Join(outDir, "commit_summary.html"), "전체 파일별 커밋 통계", rows, contributors); err != nil {
		return err
	}

	// One report per contributor
	for _, contributor := range contributors {
		var subset []*models.FileSummaryRow
		for _, row := range rows {
			if row.DisplayName == contributor.DisplayName && row.User == contributor.User {
				subset = append(subset, row)
			}
		}
		name := fmt.Sprintf("commit_summary(%s).html", contributor.DisplayName)
		title := fmt.Sprintf("%s 파일별 커밋 통계", contributor.DisplayName)
		if err := htmlWriter.Write(filepath.Join(outDir, name), title, subset, outlierService.Summarize(subset)); err != nil {
			return err
		}
	}

	// Keep a queryable copy of the run
	if err := persistRun(week.Label, rows); err != nil {
		logger.WithError(err).Error("failed to persist run history")
	}

	logger.Infof("report generated for %d files across %d contributors", len(rows), len(contributors))
	return nil
}

func persistRun(weekLabel string, rows []*models.FileSummaryRow) error {
	cfg := config.AppConfig
	if err := database.Init(cfg.Database.Path); err != nil {
		return err
	}
	defer database.Close()

	summaryRepo := repositories.NewSummaryRepository(database.DB)
	if err := summaryRepo.DeleteByWeek(weekLabel); err != nil {
		return err
	}
	for _, row := range rows {
		if err := summaryRepo.Create(weekLabel, row); err != nil {
			return err
		}
	}
	return nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated reports over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.AppConfig
			gin.SetMode(gin.ReleaseMode)

			router := gin.Default()
			router.StaticFS("/reports", http.Dir(cfg.Report.OutputDir))
			router.GET("/", func(c *gin.Context) {
				c.Redirect(http.StatusFound, "/reports/commit_summary.html")
			})

			logger.Infof("serving reports on :%s", cfg.Server.Port)
			return router.Run(":" + cfg.Server.Port)
		},
	}
}
