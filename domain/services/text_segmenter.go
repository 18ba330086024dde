package services

import (
	"regexp"
	"strings"
)

var (
	numberedItemPattern = regexp.MustCompile(`(?m)(?:^|\n)\s*\d+[.)]\s+(.+)`)
	bulletItemPattern   = regexp.MustCompile(`(?m)(?:^|\n)\s*[-–•*+]\s+(.+)`)
	sentencePattern     = regexp.MustCompile(`[^.!?]+[.!?]+`)
)

// minSentenceWords is exclusive: a sentence needs more words than this.
const minSentenceWords = 2

// ExtractListItems returns the text of numbered and bulleted list lines.
// Numbered items come first, then bulleted ones, each group in document order.
func ExtractListItems(text string) []string {
	items := make([]string, 0)
	for _, pattern := range []*regexp.Regexp{numberedItemPattern, bulletItemPattern} {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			if item := strings.TrimSpace(match[1]); item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}

// ExtractSentences splits text into terminated sentences of at least three
// words. When none qualify the whole trimmed text is returned as one segment.
func ExtractSentences(text string) []string {
	sentences := make([]string, 0)
	for _, match := range sentencePattern.FindAllString(text, -1) {
		sentence := strings.TrimSpace(match)
		if len(strings.Fields(sentence)) > minSentenceWords {
			sentences = append(sentences, sentence)
		}
	}

	if len(sentences) == 0 {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}
