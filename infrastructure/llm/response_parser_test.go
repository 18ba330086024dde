package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTaskTitles(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{"bare array", `["Buy milk", "Call mom"]`, []string{"Buy milk", "Call mom"}},
		{"padded array", "  \n[\"Buy milk\"]\n", []string{"Buy milk"}},
		{"array inside prose", "Here you go:\n[\"Pay rent\",\n \"Walk dog\"]\nHope that helps", []string{"Pay rent", "Walk dog"}},
		{"empty array", "[]", []string{}},
		{"blank and non-string entries dropped", `["  Trim me  ", "", "   ", 42, null, {"a": 1}, "Keep"]`, []string{"Trim me", "Keep"}},
		{"malformed json", `["unterminated`, []string{}},
		{"no array", "There are no tasks in this text.", []string{}},
		{"leading bracket but invalid", "[not json] and more", []string{}},
		{"first array wins", `tasks: ["One"] and also ["Two"]`, []string{"One"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTaskTitles(tt.reply))
		})
	}
}
