// Package llm adapts a remote chat-completion model into a task extractor.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"

	"stratagist-backend/domain/core/entities"
	pkgerrors "stratagist-backend/pkg/errors"
)

const (
	systemPrompt = "You are a helpful assistant that extracts tasks and action items from text. Return only valid JSON."

	userPromptTemplate = `Analyze the following text and extract any tasks, to-dos, or action items.
For each task found, provide just the task description in a simple, actionable format.
If no tasks are found, return an empty list.

Text: %s

Return the tasks as a JSON array of strings, like:
["Task 1", "Task 2", "Task 3"]

If there are no tasks, return: []
`

	maxReplyTokens = 500
	serviceName    = "openai"
)

// ErrEmptyReply is returned when the model answers with no choices
var ErrEmptyReply = errors.New("model returned no choices")

// Completer is the slice of the langchaingo model API the extractor needs
type Completer interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// Options configures the remote extractor
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIExtractor asks a chat model for task titles. Calls go through a
// circuit breaker so a failing endpoint is skipped quickly.
type OpenAIExtractor struct {
	client  Completer
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewOpenAIExtractor builds an extractor backed by the OpenAI API
func NewOpenAIExtractor(opts Options, logger *zap.Logger) (*OpenAIExtractor, error) {
	if opts.APIKey == "" {
		return nil, pkgerrors.NewValidationError("remote extraction requires an API key")
	}

	clientOpts := []openai.Option{openai.WithToken(opts.APIKey)}
	if opts.Model != "" {
		clientOpts = append(clientOpts, openai.WithModel(opts.Model))
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, openai.WithBaseURL(opts.BaseURL))
	}

	client, err := openai.New(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI client: %w", err)
	}
	return NewExtractorWithClient(client, logger), nil
}

// NewExtractorWithClient wraps an existing completer
func NewExtractorWithClient(client Completer, logger *zap.Logger) *OpenAIExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIExtractor{
		client:  client,
		breaker: newBreaker(logger),
		logger:  logger,
	}
}

func newBreaker(logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "task-extraction",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

// Name identifies the extractor in logs and metrics
func (e *OpenAIExtractor) Name() string {
	return serviceName
}

// Extract asks the model for task titles and turns them into drafts. A reply
// that holds no usable array produces an empty list, not an error.
func (e *OpenAIExtractor) Extract(ctx context.Context, thought *entities.Thought) ([]*entities.Task, error) {
	reply, err := e.breaker.Execute(func() (interface{}, error) {
		return e.complete(ctx, thought.Content())
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, pkgerrors.NewUnavailableError(serviceName).WithCause(err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", serviceName, ctxErr)
		}
		return nil, pkgerrors.NewExternalError(serviceName, err)
	}

	titles := ParseTaskTitles(reply.(string))
	tasks := make([]*entities.Task, 0, len(titles))
	for _, title := range titles {
		tasks = append(tasks, entities.NewDraftTask(title, thought))
	}

	e.logger.Debug("Remote extraction finished",
		zap.String("thought_id", thought.ID().String()),
		zap.Int("tasks", len(tasks)),
	)
	return tasks, nil
}

func (e *OpenAIExtractor) complete(ctx context.Context, content string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, fmt.Sprintf(userPromptTemplate, content)),
	}

	resp, err := e.client.GenerateContent(ctx, messages,
		llms.WithTemperature(0),
		llms.WithMaxTokens(maxReplyTokens),
	)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", ErrEmptyReply
	}
	return resp.Choices[0].Content, nil
}
