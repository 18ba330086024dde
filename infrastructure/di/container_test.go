package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stratagist-backend/application/commands"
	"stratagist-backend/application/queries"
	"stratagist-backend/application/services"
	"stratagist-backend/domain/core/entities"
	"stratagist-backend/infrastructure/config"
	"stratagist-backend/infrastructure/messaging"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.DataDir = t.TempDir()
	cfg.LogLevel = "error"
	return cfg
}

func TestInitializeContainer_JSONFileDefaults(t *testing.T) {
	ctx := context.Background()
	container, cleanup, err := InitializeContainer(ctx, testConfig(t))
	require.NoError(t, err)
	t.Cleanup(cleanup)

	assert.IsType(t, &messaging.LogPublisher{}, container.EventPublisher)
	assert.Nil(t, container.RulesWatcher)
	assert.False(t, container.Extraction.ExternalEnabled())

	result, err := container.CommandBus.Send(ctx, commands.CreateThoughtCommand{Content: "call the plumber"})
	require.NoError(t, err)
	thought := result.(*entities.Thought)

	listed, err := container.QueryBus.Ask(ctx, queries.ListThoughtsQuery{})
	require.NoError(t, err)
	require.Len(t, listed.([]*entities.Thought), 1)
	assert.Equal(t, thought.ID(), listed.([]*entities.Thought)[0].ID())

	extracted, err := container.QueryBus.Ask(ctx, queries.ExtractTasksQuery{
		ThoughtID: thought.ID().String(),
		Content:   thought.Content(),
	})
	require.NoError(t, err)
	res := extracted.(*services.ExtractionResult)
	assert.False(t, res.UsedExternal)
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, "call the plumber", res.Tasks[0].Title())
}

func TestInitializeContainer_RulesFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.ExtractionRulesFile = filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(cfg.ExtractionRulesFile, []byte("keywords: [Ping]\ndelimiters: [\";\"]\n"), 0o644))

	container, cleanup, err := InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	require.NotNil(t, container.RulesWatcher)
	rules := container.RuleExtractor.Rules()
	assert.Equal(t, []string{"ping"}, rules.Keywords)
	assert.Equal(t, []string{";"}, rules.Delimiters)
}

func TestInitializeContainer_ExternalExtractorWhenKeySet(t *testing.T) {
	cfg := testConfig(t)
	cfg.OpenAIAPIKey = "sk-test"

	container, cleanup, err := InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	assert.True(t, container.Extraction.ExternalEnabled())
}

func TestProvideLogger_RejectsUnknownLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogLevel = "loud"

	_, err := ProvideLogger(cfg)
	assert.Error(t, err)
}
