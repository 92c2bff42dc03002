package services

import (
	"bytes"
	"math"
	"os/exec"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// SimilarityService scores how close a local copy of a file is to its remote
// counterpart. Both sides are run through an external formatter first so
// that whitespace and import-order noise does not drag the score down.
type SimilarityService struct {
	formatterCmd string
}

// NewSimilarityService creates a scorer. formatterCmd is an external command
// reading code on stdin and writing the formatted result to stdout, e.g.
// "black -q -". An empty command disables normalization.
func NewSimilarityService(formatterCmd string) *SimilarityService {
	return &SimilarityService{formatterCmd: formatterCmd}
}

// Normalize formats the code with the configured external formatter.
// Normalization is best-effort: if the formatter is missing or fails, the
// original string comes back unchanged.
func (s *SimilarityService) Normalize(code string) string {
	if s.formatterCmd == "" {
		return code
	}

	parts := strings.Fields(s.formatterCmd)
	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdin = strings.NewReader(code)

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return code
	}
	if out.Len() == 0 {
		return code
	}
	return out.String()
}

// CalculateSimilarity returns a sequence-alignment ratio between the two
// normalized inputs, scaled to a percentage and rounded to 2 decimals.
// Identical inputs score 100.0.
func (s *SimilarityService) CalculateSimilarity(local, remote string) float64 {
	formattedLocal := s.Normalize(local)
	formattedRemote := s.Normalize(remote)

	matcher := difflib.NewMatcher(
		strings.Split(formattedLocal, ""),
		strings.Split(formattedRemote, ""),
	)

	return math.Round(matcher.Ratio()*100*100) / 100
}
