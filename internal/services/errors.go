package services

import "fmt"

// ValidationError means the input was malformed before any network call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NotFoundError means GitHub answered 404 for the repository.
type NotFoundError struct {
	Owner string
	Repo  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("repository not found: %s/%s, check the URL", e.Owner, e.Repo)
}

// PermissionError means GitHub answered 401 or 403. RateLimited is set when
// the response message mentions the API rate limit.
type PermissionError struct {
	RateLimited bool
	Message     string
}

func (e *PermissionError) Error() string {
	if e.RateLimited {
		return "GitHub API rate limit exceeded, retry later or supply a personal access token"
	}
	return "no permission or private repository, check the personal access token and its access"
}

// ConnectivityError wraps a transport-level failure reaching the API.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("GitHub API connection failed: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// APIError is any other unexpected status code from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error (status %d): %s", e.StatusCode, e.Body)
}
