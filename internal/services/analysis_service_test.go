package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitweek/gitweek/internal/models"
)

func newTestAnalysisService(srv *httptest.Server, weekFile string) *AnalysisService {
	factory := testClientFactory(srv)
	return NewAnalysisService(
		NewRepositoryService(factory),
		NewHarvestService(factory, 1000),
		NewAggregateService(NewContentService(factory), NewSimilarityService("")),
		NewOutlierService(),
		NewWeekService(weekFile),
		NewAccountService(),
	)
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunContinuesPastFailedAccount(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("x = 1\ny = 2\n"))

	mux := http.NewServeMux()
	// Alice's repository is gone; her resolution must not sink the run
	mux.HandleFunc("/repos/alice/hello", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})
	mux.HandleFunc("/repos/bob/world", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 2, "full_name": "bob/world"}`)
	})
	mux.HandleFunc("/repos/bob/world/commits/c1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"sha": "c1",
			"html_url": "https://github.com/bob/world/commit/c1",
			"commit": {"author": {"name": "Bob Lee", "date": "2026-03-02T10:00:00Z"}},
			"files": [
				{"filename": "week03/app.py", "status": "added", "additions": 2, "deletions": 0, "changes": 2}
			]
		}`)
	})
	mux.HandleFunc("/repos/bob/world/commits", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, `[{"sha": "c1", "commit": {"author": {"name": "Bob Lee", "date": "2026-03-02T10:00:00Z"}}}]`)
			return
		}
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("/repos/bob/world/contents/week03/app.py", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"type": "file", "name": "app.py", "path": "week03/app.py", "encoding": "base64", "content": %q}`, encoded)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	weekFile := writeTestFile(t, dir, "week_information.txt", "week03, 2026-03-01, 2026-03-07\n")
	accountsFile := writeTestFile(t, dir, "users_account.txt",
		"https://github.com/alice/hello, t1, alice\n"+
			"https://github.com/bob/world, t2, bob\n")

	service := newTestAnalysisService(srv, weekFile)
	rows, week, err := service.Run(context.Background(), RunOptions{
		AccountsFile: accountsFile,
		Branch:       "main",
		Directory:    "week03/",
		Extension:    ".py",
		LocalBaseDir: t.TempDir(),
	})

	assert.NoError(t, err)
	assert.Equal(t, "week03", week.Label)

	// Bob's rows survive alice's resolution failure
	assert.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "bob", row.User)
	assert.Equal(t, "week03/app.py", row.Filename)
	assert.Equal(t, 2, row.Loc)
	// Finalize ran over the combined table: the single row has zero-variance
	// z-scores and only its missing similarity flagged
	assert.Equal(t, models.GradeFail, row.ProvisionalGrade)
	assert.Equal(t, 1, row.Outliers.Count())
	assert.True(t, row.Outliers.CodeSimilarity)
	assert.Equal(t, models.GradeWarning, row.FinalGrade)
}

func TestRunReturnsEmptyWhenNoAccountHasCommits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/alice/hello", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 1, "full_name": "alice/hello"}`)
	})
	mux.HandleFunc("/repos/alice/hello/commits", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	weekFile := writeTestFile(t, dir, "week_information.txt", "week03, 2026-03-01, 2026-03-07\n")
	accountsFile := writeTestFile(t, dir, "users_account.txt", "https://github.com/alice/hello, t1, alice\n")

	service := newTestAnalysisService(srv, weekFile)
	rows, week, err := service.Run(context.Background(), RunOptions{
		AccountsFile: accountsFile,
		Branch:       "main",
		Extension:    ".py",
	})

	assert.NoError(t, err)
	assert.Equal(t, "week03", week.Label)
	assert.Empty(t, rows)
}

func TestRunFailsWithoutWeekOrAccountsFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected API call before inputs are loaded")
	}))
	defer srv.Close()

	dir := t.TempDir()

	t.Run("Missing week file", func(t *testing.T) {
		service := newTestAnalysisService(srv, filepath.Join(dir, "no_week.txt"))
		_, _, err := service.Run(context.Background(), RunOptions{
			AccountsFile: writeTestFile(t, dir, "users_account.txt", "https://github.com/alice/hello, t1, alice\n"),
		})
		assert.Error(t, err)
	})

	t.Run("Missing accounts file", func(t *testing.T) {
		weekFile := writeTestFile(t, dir, "week_information.txt", "week03, 2026-03-01, 2026-03-07\n")
		service := newTestAnalysisService(srv, weekFile)
		_, _, err := service.Run(context.Background(), RunOptions{
			AccountsFile: filepath.Join(dir, "no_accounts.txt"),
		})
		assert.Error(t, err)
	})
}
