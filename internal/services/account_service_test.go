package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountServiceLoad(t *testing.T) {
	service := NewAccountService()

	t.Run("Parses well-formed lines", func(t *testing.T) {
		content := "https://github.com/alice/hello, ghp_token1, alice, Alice Kim\n" +
			"https://github.com/bob/world,ghp_token2,bob\n"
		path := filepath.Join(t.TempDir(), "users_account.txt")
		assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

		accounts, err := service.Load(path)
		assert.NoError(t, err)
		assert.Len(t, accounts, 2)

		assert.Equal(t, "https://github.com/alice/hello", accounts[0].RepoURL)
		assert.Equal(t, "ghp_token1", accounts[0].Token)
		assert.Equal(t, "alice", accounts[0].Username)
		assert.Equal(t, "Alice Kim", accounts[0].DisplayName)

		// Display name falls back to the username
		assert.Equal(t, "bob", accounts[1].Username)
		assert.Equal(t, "bob", accounts[1].DisplayName)
	})

	t.Run("Skips blank and malformed lines", func(t *testing.T) {
		content := "\n" +
			"https://github.com/alice/hello, ghp_token1\n" +
			"https://github.com/bob/world, ghp_token2, bob\n" +
			"   \n"
		path := filepath.Join(t.TempDir(), "users_account.txt")
		assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

		accounts, err := service.Load(path)
		assert.NoError(t, err)
		assert.Len(t, accounts, 1)
		assert.Equal(t, "bob", accounts[0].Username)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := service.Load(filepath.Join(t.TempDir(), "nope.txt"))
		assert.Error(t, err)
	})
}
