package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*?\]`)

// ParseTaskTitles pulls a JSON array of task titles out of a model reply.
// The reply may be the bare array or prose around it. Anything that is not a
// non-blank string is skipped, and malformed JSON yields no titles.
func ParseTaskTitles(reply string) []string {
	reply = strings.TrimSpace(reply)

	candidate := reply
	if !strings.HasPrefix(reply, "[") {
		candidate = jsonArrayPattern.FindString(reply)
		if candidate == "" {
			return []string{}
		}
	}

	var items []interface{}
	if err := json.Unmarshal([]byte(candidate), &items); err != nil {
		return []string{}
	}

	titles := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			titles = append(titles, s)
		}
	}
	return titles
}
