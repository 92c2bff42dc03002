package models

// Account is one tracked contributor from the accounts file.
type Account struct {
	RepoURL     string `json:"repo_url"`
	Token       string `json:"-"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// NewAccount creates an account, defaulting the display name to the
// GitHub username when none was given.
func NewAccount(repoURL, token, username, displayName string) Account {
	if displayName == "" {
		displayName = username
	}
	return Account{
		RepoURL:     repoURL,
		Token:       token,
		Username:    username,
		DisplayName: displayName,
	}
}
