package di

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"stratagist-backend/application/commands"
	"stratagist-backend/application/commands/bus"
	commandhandlers "stratagist-backend/application/commands/handlers"
	"stratagist-backend/application/ports"
	"stratagist-backend/application/queries"
	querybus "stratagist-backend/application/queries/bus"
	queryhandlers "stratagist-backend/application/queries/handlers"
	"stratagist-backend/application/services"
	domainservices "stratagist-backend/domain/services"
	"stratagist-backend/infrastructure/config"
	"stratagist-backend/infrastructure/llm"
	"stratagist-backend/infrastructure/messaging"
	"stratagist-backend/infrastructure/messaging/eventbridge"
	"stratagist-backend/infrastructure/persistence/dynamodb"
	"stratagist-backend/infrastructure/persistence/jsonfile"
	"stratagist-backend/pkg/observability"
)

const (
	metricsNamespace = "stratagist"
	slowQuery        = 500 * time.Millisecond
)

// ExternalExtractor is the optional remote extractor. A nil value means
// extraction runs on rules only.
type ExternalExtractor interface {
	ports.TaskExtractor
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	return zcfg.Build()
}

// ProvideMetrics creates the Prometheus collectors
func ProvideMetrics() *observability.Metrics {
	return observability.NewMetrics(metricsNamespace)
}

// ProvideDynamoDBClient creates a DynamoDB client when that backend is
// selected and returns nil otherwise
func ProvideDynamoDBClient(ctx context.Context, cfg *config.Config) (dynamodb.API, error) {
	if cfg.StorageBackend != config.StorageDynamoDB {
		return nil, nil
	}
	return dynamodb.NewClient(ctx, cfg.AWSRegion)
}

// ProvideThoughtRepository creates the thought repository for the configured backend
func ProvideThoughtRepository(
	cfg *config.Config,
	client dynamodb.API,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (ports.ThoughtRepository, error) {
	if cfg.StorageBackend == config.StorageDynamoDB {
		return dynamodb.NewThoughtRepository(client, cfg.DynamoDBTable, metrics, logger), nil
	}
	return jsonfile.NewThoughtRepository(cfg.DataDir, metrics, logger)
}

// ProvideTaskRepository creates the task repository for the configured backend
func ProvideTaskRepository(
	cfg *config.Config,
	client dynamodb.API,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (ports.TaskRepository, error) {
	if cfg.StorageBackend == config.StorageDynamoDB {
		return dynamodb.NewTaskRepository(client, cfg.DynamoDBTable, metrics, logger), nil
	}
	return jsonfile.NewTaskRepository(cfg.DataDir, metrics, logger)
}

// ProvideEventPublisher publishes to EventBridge when a bus is configured and
// to the log otherwise
func ProvideEventPublisher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.EventPublisher, error) {
	if cfg.EventBusName == "" {
		return messaging.NewLogPublisher(logger), nil
	}

	client, err := eventbridge.NewClient(ctx, cfg.AWSRegion)
	if err != nil {
		return nil, err
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger), nil
}

// ProvideRuleExtractor creates the rule-based extractor with default rules.
// A configured rules file is applied by the watcher.
func ProvideRuleExtractor() *domainservices.RuleBasedExtractor {
	return domainservices.NewRuleBasedExtractor(nil)
}

// ProvideRulesWatcher loads and watches the rules file when one is configured
func ProvideRulesWatcher(
	cfg *config.Config,
	extractor *domainservices.RuleBasedExtractor,
	logger *zap.Logger,
) (*config.RulesWatcher, func(), error) {
	if cfg.ExtractionRulesFile == "" {
		return nil, func() {}, nil
	}

	watcher, err := config.NewRulesWatcher(cfg.ExtractionRulesFile, extractor, config.DefaultDebounce, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := watcher.Close(); err != nil {
			logger.Warn("Failed to stop rules watcher", zap.Error(err))
		}
	}
	return watcher, cleanup, nil
}

// ProvideExternalExtractor creates the remote extractor when an API key is set
func ProvideExternalExtractor(cfg *config.Config, logger *zap.Logger) (ExternalExtractor, error) {
	if !cfg.ExternalExtractionEnabled() {
		logger.Info("Remote extraction disabled, using rules only")
		return nil, nil
	}

	extractor, err := llm.NewOpenAIExtractor(llm.Options{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	}, logger)
	if err != nil {
		return nil, err
	}
	return extractor, nil
}

// ProvideExtractionService creates the extraction orchestrator
func ProvideExtractionService(
	cfg *config.Config,
	rules *domainservices.RuleBasedExtractor,
	external ExternalExtractor,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.ExtractionService {
	var remote ports.TaskExtractor
	if external != nil {
		remote = external
	}
	return services.NewExtractionService(rules, remote, cfg.ExtractionTimeout, metrics, logger)
}

// ProvideCommandBus registers every command handler
func ProvideCommandBus(
	thoughtRepo ports.ThoughtRepository,
	taskRepo ports.TaskRepository,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(bus.LoggingMiddleware(logger))

	createThought := commandhandlers.NewCreateThoughtHandler(thoughtRepo, publisher, metrics, logger)
	updateThought := commandhandlers.NewUpdateThoughtHandler(thoughtRepo, publisher, logger)
	deleteThought := commandhandlers.NewDeleteThoughtHandler(thoughtRepo, publisher, logger)
	clearThoughts := commandhandlers.NewClearThoughtsForDateHandler(thoughtRepo, publisher, logger)
	createTask := commandhandlers.NewCreateTaskHandler(taskRepo, publisher, metrics, logger)
	createTasks := commandhandlers.NewCreateTasksBulkHandler(taskRepo, publisher, metrics, logger)
	updateTask := commandhandlers.NewUpdateTaskHandler(taskRepo, publisher, logger)
	toggleTask := commandhandlers.NewToggleTaskHandler(taskRepo, publisher, logger)
	deleteTask := commandhandlers.NewDeleteTaskHandler(taskRepo, publisher, logger)

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandlerFunc
	}{
		{commands.CreateThoughtCommand{}, func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			return createThought.Handle(ctx, cmd.(commands.CreateThoughtCommand))
		}},
		{commands.UpdateThoughtCommand{}, func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			return updateThought.Handle(ctx, cmd.(commands.UpdateThoughtCommand))
		}},
		{commands.DeleteThoughtCommand{}, func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			return nil, deleteThought.Handle(ctx, cmd.(commands.DeleteThoughtCommand))
		}},
		{commands.ClearThoughtsForDateCommand{}, func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			return clearThoughts.Handle(ctx, cmd.(commands.ClearThoughtsForDateCommand))
		}},
		{commands.CreateTaskCommand{}, func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			return createTask.Handle(ctx, cmd.(commands.CreateTaskCommand))
		}},
		{commands.CreateTasksBulkCommand{}, func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			return createTasks.Handle(ctx, cmd.(commands.CreateTasksBulkCommand))
		}},
		{commands.UpdateTaskCommand{}, func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			return updateTask.Handle(ctx, cmd.(commands.UpdateTaskCommand))
		}},
		{commands.ToggleTaskCommand{}, func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			return toggleTask.Handle(ctx, cmd.(commands.ToggleTaskCommand))
		}},
		{commands.DeleteTaskCommand{}, func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			return nil, deleteTask.Handle(ctx, cmd.(commands.DeleteTaskCommand))
		}},
	}

	for _, r := range registrations {
		if err := commandBus.Register(r.cmd, r.handler); err != nil {
			return nil, err
		}
	}
	return commandBus, nil
}

// ProvideQueryBus registers every query handler
func ProvideQueryBus(
	thoughtRepo ports.ThoughtRepository,
	taskRepo ports.TaskRepository,
	extraction *services.ExtractionService,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(querybus.LoggingMiddleware(logger, slowQuery))

	thoughts := queryhandlers.NewThoughtQueryHandler(thoughtRepo, logger)
	tasks := queryhandlers.NewTaskQueryHandler(taskRepo, logger)
	extract := queryhandlers.NewExtractTasksHandler(extraction, publisher, logger)

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandlerFunc
	}{
		{queries.ListThoughtsQuery{}, func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return thoughts.ListThoughts(ctx, q.(queries.ListThoughtsQuery))
		}},
		{queries.GetThoughtQuery{}, func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return thoughts.GetThought(ctx, q.(queries.GetThoughtQuery))
		}},
		{queries.ListThoughtDatesQuery{}, func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return thoughts.ListThoughtDates(ctx, q.(queries.ListThoughtDatesQuery))
		}},
		{queries.ListThoughtsByDateQuery{}, func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return thoughts.ListThoughtsByDate(ctx, q.(queries.ListThoughtsByDateQuery))
		}},
		{queries.ListTasksQuery{}, func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return tasks.ListTasks(ctx, q.(queries.ListTasksQuery))
		}},
		{queries.GetTaskQuery{}, func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return tasks.GetTask(ctx, q.(queries.GetTaskQuery))
		}},
		{queries.ExtractTasksQuery{}, func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return extract.Handle(ctx, q.(queries.ExtractTasksQuery))
		}},
	}

	for _, r := range registrations {
		if err := queryBus.Register(r.query, r.handler); err != nil {
			return nil, err
		}
	}
	return queryBus, nil
}
