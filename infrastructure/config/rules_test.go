package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainconfig "stratagist-backend/domain/config"
)

func TestParseExtractionRules(t *testing.T) {
	tests := []struct {
		name           string
		yaml           string
		wantKeywords   []string
		wantDelimiters []string
		wantErr        bool
	}{
		{
			name:           "both lists",
			yaml:           "keywords: [urgent, Follow Up]\ndelimiters: [\" | \", \"; \"]\n",
			wantKeywords:   []string{"urgent", "follow up"},
			wantDelimiters: []string{" | ", "; "},
		},
		{
			name:           "keywords only keeps default delimiters",
			yaml:           "keywords: [urgent]\n",
			wantKeywords:   []string{"urgent"},
			wantDelimiters: domainconfig.DefaultExtractionRules().Delimiters,
		},
		{
			name:           "empty file keeps defaults",
			yaml:           "",
			wantKeywords:   domainconfig.DefaultExtractionRules().Keywords,
			wantDelimiters: domainconfig.DefaultExtractionRules().Delimiters,
		},
		{
			name:    "malformed",
			yaml:    "keywords: [unclosed\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := ParseExtractionRules([]byte(tt.yaml))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKeywords, rules.Keywords)
			assert.Equal(t, tt.wantDelimiters, rules.Delimiters)
		})
	}
}

type recordingSink struct {
	mu    sync.Mutex
	rules []*domainconfig.ExtractionRules
}

func (s *recordingSink) SetRules(r *domainconfig.ExtractionRules) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules, r)
}

func (s *recordingSink) last() *domainconfig.ExtractionRules {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.rules) == 0 {
		return nil
	}
	return s.rules[len(s.rules)-1]
}

// replaceFile swaps the file in with a rename so the watcher never sees a
// half-written file
func replaceFile(t *testing.T, path, content string) {
	t.Helper()
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0o644))
	require.NoError(t, os.Rename(tmp, path))
}

func TestRulesWatcher_Reloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keywords: [alpha]\n"), 0o644))

	sink := &recordingSink{}
	w, err := NewRulesWatcher(path, sink, 20*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	require.NotNil(t, sink.last())
	assert.Equal(t, []string{"alpha"}, sink.last().Keywords)

	replaceFile(t, path, "keywords: [beta]\n")
	assert.Eventually(t, func() bool {
		last := sink.last()
		return len(last.Keywords) == 1 && last.Keywords[0] == "beta"
	}, 3*time.Second, 20*time.Millisecond)

	// a broken file leaves the last good rules in place
	replaceFile(t, path, "keywords: [broken\n")
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, []string{"beta"}, sink.last().Keywords)
}

func TestRulesWatcher_MissingFile(t *testing.T) {
	_, err := NewRulesWatcher(filepath.Join(t.TempDir(), "nope.yaml"), &recordingSink{}, 0, zap.NewNop())
	assert.Error(t, err)
}
