package services

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gitweek/gitweek/internal/models"
)

// WeekService loads the week descriptor file: a single line of the form
// "week03, 2026-03-01, 2026-03-07". Dates are interpreted in the reporting
// timezone.
type WeekService struct {
	path string
}

func NewWeekService(path string) *WeekService {
	return &WeekService{path: path}
}

// Load reads and parses the week window.
func (s *WeekService) Load() (*models.WeekWindow, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open week file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return nil, &ValidationError{Reason: fmt.Sprintf("week file %s is empty", s.path)}
	}
	return ParseWeekLine(scanner.Text())
}

// ParseWeekLine parses "label, YYYY-MM-DD, YYYY-MM-DD".
func ParseWeekLine(line string) (*models.WeekWindow, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 3 {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid week line: %q", line)}
	}

	start, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(parts[1]), kst)
	if err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid week start date: %v", err)}
	}
	end, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(parts[2]), kst)
	if err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid week end date: %v", err)}
	}

	return &models.WeekWindow{
		Label: strings.TrimSpace(parts[0]),
		Start: start,
		End:   end,
	}, nil
}
