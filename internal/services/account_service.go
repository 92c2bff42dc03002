package services

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gitweek/gitweek/internal/models"
	"github.com/gitweek/gitweek/pkg/logger"
)

// AccountService reads the accounts file: one tracked contributor per line,
// "repo URL, token, GitHub username[, display name]". Blank lines are
// skipped; malformed lines are logged and skipped.
type AccountService struct{}

func NewAccountService() *AccountService {
	return &AccountService{}
}

// Load parses the accounts file at path.
func (s *AccountService) Load(path string) ([]models.Account, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open accounts file: %w", err)
	}
	defer file.Close()

	var accounts []models.Account
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 3 {
			logger.Warnf("skipping malformed accounts line: %q", line)
			continue
		}

		repoURL := strings.TrimSpace(parts[0])
		token := strings.TrimSpace(parts[1])
		username := strings.TrimSpace(parts[2])
		displayName := ""
		if len(parts) > 3 {
			displayName = strings.TrimSpace(parts[3])
		}
		accounts = append(accounts, models.NewAccount(repoURL, token, username, displayName))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	return accounts, nil
}
