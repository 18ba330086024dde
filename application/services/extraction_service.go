package services

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"stratagist-backend/application/ports"
	"stratagist-backend/domain/core/entities"
	"stratagist-backend/pkg/observability"
)

// DefaultExtractionTimeout bounds a single remote extraction attempt
const DefaultExtractionTimeout = 10 * time.Second

// Reasons a remote extraction produced nothing
const (
	failureError   = "error"
	failureTimeout = "timeout"
	failureEmpty   = "empty"
)

// ExtractionResult is the outcome of one extraction
type ExtractionResult struct {
	Tasks        []*entities.Task
	UsedExternal bool
}

// ExtractionService picks between the remote extractor and the rule-based
// baseline. Remote failures never reach the caller.
type ExtractionService struct {
	external ports.TaskExtractor
	rules    ports.TaskExtractor
	timeout  time.Duration
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewExtractionService creates the orchestrator. external may be nil when no
// remote credential is configured.
func NewExtractionService(
	rules ports.TaskExtractor,
	external ports.TaskExtractor,
	timeout time.Duration,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *ExtractionService {
	if timeout <= 0 {
		timeout = DefaultExtractionTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExtractionService{
		external: external,
		rules:    rules,
		timeout:  timeout,
		metrics:  metrics,
		logger:   logger,
	}
}

// ExternalEnabled reports whether a remote extractor is configured
func (s *ExtractionService) ExternalEnabled() bool {
	return s.external != nil
}

// Extract derives tasks from a thought, preferring the remote extractor when
// it is configured and returns at least one task
func (s *ExtractionService) Extract(ctx context.Context, thought *entities.Thought) ExtractionResult {
	ctx, span := observability.StartSpan(ctx, "extraction.extract",
		attribute.String("thought.id", thought.ID().String()),
		attribute.Bool("external.enabled", s.external != nil),
	)
	defer span.End()

	if s.external != nil {
		if tasks, ok := s.tryExternal(ctx, thought); ok {
			span.SetAttributes(attribute.Bool("external.used", true), attribute.Int("tasks", len(tasks)))
			return ExtractionResult{Tasks: tasks, UsedExternal: true}
		}
	}

	start := time.Now()
	tasks, err := s.rules.Extract(ctx, thought)
	if err != nil {
		// the rule-based extractor is not expected to fail
		s.logger.Error("Rule-based extraction failed",
			zap.String("thought_id", thought.ID().String()),
			zap.Error(err),
		)
		observability.RecordError(span, err)
		tasks = nil
	}
	if tasks == nil {
		tasks = []*entities.Task{}
	}
	s.metrics.RecordExtraction(observability.MethodRules, len(tasks), time.Since(start))

	span.SetAttributes(attribute.Bool("external.used", false), attribute.Int("tasks", len(tasks)))
	return ExtractionResult{Tasks: tasks, UsedExternal: false}
}

func (s *ExtractionService) tryExternal(ctx context.Context, thought *entities.Thought) ([]*entities.Task, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	tasks, err := s.external.Extract(ctx, thought)
	switch {
	case err != nil:
		reason := failureError
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			reason = failureTimeout
		}
		s.metrics.RecordExternalFailure(reason)
		s.logger.Warn("External extraction failed, falling back to rules",
			zap.String("extractor", s.external.Name()),
			zap.String("thought_id", thought.ID().String()),
			zap.String("reason", reason),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, false
	case len(tasks) == 0:
		s.metrics.RecordExternalFailure(failureEmpty)
		s.logger.Debug("External extraction returned no tasks",
			zap.String("extractor", s.external.Name()),
			zap.String("thought_id", thought.ID().String()),
		)
		return nil, false
	}

	s.metrics.RecordExtraction(observability.MethodExternal, len(tasks), time.Since(start))
	return tasks, true
}
