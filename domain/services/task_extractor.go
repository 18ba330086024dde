package services

import (
	"context"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"stratagist-backend/domain/config"
	"stratagist-backend/domain/core/entities"
)

const ellipsis = "..."

// RuleBasedExtractor derives task titles from free text with fixed heuristics.
// It is deterministic and never fails. Rules can be swapped while requests
// are in flight; each extraction sees one consistent rule set.
type RuleBasedExtractor struct {
	rules atomic.Pointer[config.ExtractionRules]
}

// NewRuleBasedExtractor creates an extractor. A nil rule set selects the defaults.
func NewRuleBasedExtractor(rules *config.ExtractionRules) *RuleBasedExtractor {
	if rules == nil {
		rules = config.DefaultExtractionRules()
	}
	e := &RuleBasedExtractor{}
	e.rules.Store(rules.Clone())
	return e
}

// Rules returns a copy of the active rule set
func (e *RuleBasedExtractor) Rules() *config.ExtractionRules {
	return e.rules.Load().Clone()
}

// SetRules replaces the active rule set
func (e *RuleBasedExtractor) SetRules(rules *config.ExtractionRules) {
	if rules == nil {
		return
	}
	e.rules.Store(rules.Clone())
}

// Name identifies the extractor in logs and metrics
func (e *RuleBasedExtractor) Name() string {
	return "rules"
}

// Extract turns a thought into task drafts that share its timestamp and id
func (e *RuleBasedExtractor) Extract(_ context.Context, thought *entities.Thought) ([]*entities.Task, error) {
	titles := e.ExtractTitles(thought.Content())

	tasks := make([]*entities.Task, 0, len(titles))
	for _, title := range titles {
		tasks = append(tasks, entities.NewDraftTask(title, thought))
	}
	return tasks, nil
}

// ExtractTitles runs the heuristics in precedence order; the first branch
// that applies decides the result.
func (e *RuleBasedExtractor) ExtractTitles(content string) []string {
	rules := e.rules.Load()

	if items := ExtractListItems(content); len(items) > 0 {
		return dedupeTitles(items)
	}

	if utf8.RuneCountInString(content) < rules.ShortContentLength {
		return []string{strings.TrimSpace(content)}
	}

	if !rules.HasKeyword(content) {
		return sentenceTitles(content, rules)
	}

	return delimitedTitles(content, rules)
}

func sentenceTitles(content string, rules *config.ExtractionRules) []string {
	var candidates []string
	for _, sentence := range ExtractSentences(content) {
		n := utf8.RuneCountInString(sentence)
		if n > rules.MinSentenceLength && n < rules.MaxSentenceLength {
			candidates = append(candidates, sentence)
		}
	}

	if titles := dedupeTitles(candidates); len(titles) > 0 {
		return titles
	}
	return []string{truncateTitle(content, rules.FallbackTitleLength)}
}

func delimitedTitles(content string, rules *config.ExtractionRules) []string {
	parts := []string{content}
	if delim, ok := FindBestDelimiter(content, rules.Delimiters); ok {
		parts = strings.Split(content, delim)
	}

	candidates := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) < rules.MinPartLength {
			continue
		}
		part = strings.TrimSuffix(capitalizeFirst(part), ".")
		if part != "" {
			candidates = append(candidates, part)
		}
	}
	return dedupeTitles(candidates)
}

// dedupeTitles drops later titles that match an earlier one ignoring case
func dedupeTitles(titles []string) []string {
	seen := make(map[string]struct{}, len(titles))
	out := make([]string, 0, len(titles))
	for _, title := range titles {
		key := strings.ToLower(title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, title)
	}
	return out
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return strings.ToUpper(string(r)) + s[size:]
}

func truncateTitle(content string, limit int) string {
	if utf8.RuneCountInString(content) <= limit {
		return content
	}
	runes := []rune(content)
	return string(runes[:limit]) + ellipsis
}
