package config

import "strings"

// ExtractionRules holds the business rules used by the rule-based task extractor
type ExtractionRules struct {
	// Phrases whose presence marks content as actionable
	Keywords []string

	// Split candidates, in priority order
	Delimiters []string

	// Content shorter than this becomes a single task
	ShortContentLength int

	// Sentence titles must be strictly longer than MinSentenceLength
	// and strictly shorter than MaxSentenceLength
	MinSentenceLength int
	MaxSentenceLength int

	// Fallback title is truncated to this many characters
	FallbackTitleLength int

	// Delimiter parts shorter than this are dropped
	MinPartLength int
}

var defaultKeywords = []string{
	"need to", "must", "should", "todo", "to do", "task", "buy",
	"remember to", "don't forget", "have to", "get", "pickup", "pick up",
	"call", "email", "contact", "schedule", "meet", "appointment", "deadline",
	"finish", "complete", "start", "begin", "send", "pay", "make", "plan",
	"check", "review", "update", "organize", "clean", "fix", "prepare",
	"go to", "visit", "work on", "look at", "find", "search", "apply",
	"figure out", "talk", "discuss", "follow up", "arrange", "order",
}

var defaultDelimiters = []string{". ", ".\n", ", ", "; ", "\n", " and ", " then ", " also "}

// DefaultExtractionRules returns the built-in rule set
func DefaultExtractionRules() *ExtractionRules {
	return &ExtractionRules{
		Keywords:            append([]string(nil), defaultKeywords...),
		Delimiters:          append([]string(nil), defaultDelimiters...),
		ShortContentLength:  100,
		MinSentenceLength:   5,
		MaxSentenceLength:   150,
		FallbackTitleLength: 150,
		MinPartLength:       3,
	}
}

// WithOverrides returns a copy of the rules with non-empty keyword and
// delimiter lists replaced. The receiver is left untouched.
func (r *ExtractionRules) WithOverrides(keywords, delimiters []string) *ExtractionRules {
	next := r.Clone()
	if kw := normalizeKeywords(keywords); len(kw) > 0 {
		next.Keywords = kw
	}
	if d := nonEmpty(delimiters); len(d) > 0 {
		next.Delimiters = d
	}
	return next
}

// Clone returns a deep copy
func (r *ExtractionRules) Clone() *ExtractionRules {
	c := *r
	c.Keywords = append([]string(nil), r.Keywords...)
	c.Delimiters = append([]string(nil), r.Delimiters...)
	return &c
}

// HasKeyword reports whether content contains any keyword, ignoring case
func (r *ExtractionRules) HasKeyword(content string) bool {
	lower := strings.ToLower(content)
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func normalizeKeywords(in []string) []string {
	var out []string
	for _, kw := range in {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// Delimiters are whitespace-significant, so only empty strings are dropped.
func nonEmpty(in []string) []string {
	var out []string
	for _, d := range in {
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}
