//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"stratagist-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideDynamoDBClient,
	ProvideThoughtRepository,
	ProvideTaskRepository,
	ProvideEventPublisher,
	ProvideRuleExtractor,
	ProvideRulesWatcher,
	ProvideExternalExtractor,
	ProvideExtractionService,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container. The returned cleanup
// stops background watchers.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil
}
