package services

import (
	"strings"
	"unicode/utf8"
)

const (
	partScore         = 10
	goodAverageBonus  = 50
	badAveragePenalty = 20
	minAveragePart    = 5
	maxAveragePart    = 100
)

// ScoreDelimiter rates how well delim splits text. ok is false when the
// delimiter is absent or yields fewer than two non-empty parts.
func ScoreDelimiter(text, delim string) (score int, ok bool) {
	if delim == "" || !strings.Contains(text, delim) {
		return 0, false
	}

	var count, total int
	for _, part := range strings.Split(text, delim) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		count++
		total += utf8.RuneCountInString(part)
	}
	if count < 2 {
		return 0, false
	}

	score = count * partScore
	if avg := total / count; avg >= minAveragePart && avg <= maxAveragePart {
		score += goodAverageBonus
	} else {
		score -= badAveragePenalty
	}
	return score, true
}

// FindBestDelimiter returns the highest scoring delimiter. Ties go to the
// earlier candidate and a winner must score above zero.
func FindBestDelimiter(text string, delimiters []string) (string, bool) {
	best, bestScore := "", 0
	for _, delim := range delimiters {
		score, ok := ScoreDelimiter(text, delim)
		if ok && score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best, best != ""
}
