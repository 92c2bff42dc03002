package services

import (
	"net/http/httptest"
	"net/url"

	"github.com/google/go-github/v57/github"
)

// testClientFactory returns a ClientFactory pointed at a fake GitHub API
// server.
func testClientFactory(srv *httptest.Server) ClientFactory {
	return func(token string) *github.Client {
		client := github.NewClient(nil)
		baseURL, _ := url.Parse(srv.URL + "/")
		client.BaseURL = baseURL
		client.UploadURL = baseURL
		return client
	}
}
