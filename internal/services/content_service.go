package services

import (
	"context"
	"strings"

	"github.com/google/go-github/v57/github"
)

// ContentService fetches raw file contents at a branch reference. Every
// lookup is best-effort: a missing or moved file is an expected outcome and
// is reported as an absent value, never as an error.
type ContentService struct {
	clients ClientFactory
}

func NewContentService(clients ClientFactory) *ContentService {
	return &ContentService{clients: clients}
}

// FetchLineCount returns the line count of the file at branch/path, or nil
// when the file cannot be fetched.
func (s *ContentService) FetchLineCount(ctx context.Context, token, owner, repo, branch, path string) *int {
	content := s.FetchContent(ctx, token, owner, repo, branch, path)
	if content == nil {
		return nil
	}
	loc := strings.Count(*content, "\n") + 1
	return &loc
}

// FetchContent returns the decoded file content at branch/path, or nil when
// the lookup fails for any reason.
func (s *ContentService) FetchContent(ctx context.Context, token, owner, repo, branch, path string) *string {
	client := s.clients(token)
	opts := &github.RepositoryContentGetOptions{Ref: branch}

	fileContent, _, _, err := client.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil || fileContent == nil {
		return nil
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return nil
	}
	return &content
}
