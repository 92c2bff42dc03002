package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// ClientFactory builds a GitHub API client for a contributor's token.
// Tests swap this out for a factory pointed at a fake server.
type ClientFactory func(token string) *github.Client

// NewGitHubClient creates a GitHub client with the provided token.
// An empty token yields an unauthenticated client, which GitHub serves
// with much lower rate limits.
func NewGitHubClient(token string) *github.Client {
	return github.NewClient(oauthHTTPClient(token, 0))
}

// NewValidationClient is like NewGitHubClient but with a fixed request
// timeout. Only the initial repository validation call uses it; the rest of
// the pipeline relies on the API's own timeout behavior.
func NewValidationClient(token string) *github.Client {
	return github.NewClient(oauthHTTPClient(token, 10*time.Second))
}

func oauthHTTPClient(token string, timeout time.Duration) *http.Client {
	httpClient := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = timeout
	return httpClient
}
