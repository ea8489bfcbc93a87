package replay

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggest returns the candidate closest to input, or "" when nothing is
// close enough to be a likely typo.
func suggest(input string, candidates []string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	best := ""
	bestDist := -1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(input, cand)
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}

	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func withSuggestion(err error, input string, candidates []string) error {
	if hint := suggest(input, candidates); hint != "" {
		return fmt.Errorf("%w (did you mean %q?)", err, hint)
	}

	return err
}
