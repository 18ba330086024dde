// Package di assembles the application's dependency graph.
package di

import (
	"go.uber.org/zap"

	"stratagist-backend/application/commands/bus"
	"stratagist-backend/application/ports"
	querybus "stratagist-backend/application/queries/bus"
	"stratagist-backend/application/services"
	domainservices "stratagist-backend/domain/services"
	"stratagist-backend/infrastructure/config"
	"stratagist-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	ThoughtRepo    ports.ThoughtRepository
	TaskRepo       ports.TaskRepository
	EventPublisher ports.EventPublisher
	RuleExtractor  *domainservices.RuleBasedExtractor
	RulesWatcher   *config.RulesWatcher
	Extraction     *services.ExtractionService
	CommandBus     *bus.CommandBus
	QueryBus       *querybus.QueryBus
}
