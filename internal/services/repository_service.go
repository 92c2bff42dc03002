package services

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/go-github/v57/github"

	"github.com/gitweek/gitweek/internal/models"
)

var repoURLPattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)`)

// RepositoryService resolves repository URLs and validates them against the
// GitHub API before any harvesting starts.
type RepositoryService struct {
	clients ClientFactory
}

func NewRepositoryService(clients ClientFactory) *RepositoryService {
	return &RepositoryService{clients: clients}
}

// Resolve parses a repository URL and performs a single existence/permission
// check. It never retries; the caller decides what to do with a failure.
func (s *RepositoryService) Resolve(ctx context.Context, repoURL, token string) (*models.RepositoryRef, error) {
	match := repoURLPattern.FindStringSubmatch(repoURL)
	if match == nil {
		return nil, &ValidationError{Reason: "invalid GitHub repository URL, expected https://github.com/owner/repo"}
	}

	owner, name := match[1], match[2]
	// Defend against trailing slashes or a .git suffix
	name = strings.TrimRight(name, "/")
	name = strings.TrimSuffix(name, ".git")

	client := s.clients(token)
	_, resp, err := client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, classifyAPIError(err, owner, name)
	}
	if resp != nil && resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: ""}
	}

	return &models.RepositoryRef{Owner: owner, Name: name}, nil
}

// classifyAPIError maps go-github errors onto the error taxonomy.
func classifyAPIError(err error, owner, name string) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &PermissionError{RateLimited: true, Message: rateErr.Message}
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &PermissionError{RateLimited: true, Message: abuseErr.Message}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return &NotFoundError{Owner: owner, Repo: name}
		case http.StatusUnauthorized, http.StatusForbidden:
			rateLimited := strings.Contains(strings.ToLower(respErr.Message), "rate limit")
			return &PermissionError{RateLimited: rateLimited, Message: respErr.Message}
		default:
			return &APIError{
				StatusCode: respErr.Response.StatusCode,
				Body:       truncate(respErr.Message, 200),
			}
		}
	}

	return &ConnectivityError{Err: err}
}

// truncate cuts s to at most limit bytes without splitting a UTF-8 rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
