// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"stratagist-backend/domain/core/entities"
	"stratagist-backend/domain/core/valueobjects"
	"stratagist-backend/domain/events"
)

// MockThoughtRepository is a mock implementation of ports.ThoughtRepository
type MockThoughtRepository struct {
	mock.Mock
}

func (m *MockThoughtRepository) Save(ctx context.Context, thought *entities.Thought) error {
	args := m.Called(ctx, thought)
	return args.Error(0)
}

func (m *MockThoughtRepository) FindByID(ctx context.Context, id valueobjects.ThoughtID) (*entities.Thought, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Thought), args.Error(1)
}

func (m *MockThoughtRepository) FindAll(ctx context.Context) ([]*entities.Thought, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Thought), args.Error(1)
}

func (m *MockThoughtRepository) Update(ctx context.Context, thought *entities.Thought) error {
	args := m.Called(ctx, thought)
	return args.Error(0)
}

func (m *MockThoughtRepository) Delete(ctx context.Context, id valueobjects.ThoughtID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockThoughtRepository) DeleteByDate(ctx context.Context, date time.Time) (int, error) {
	args := m.Called(ctx, date)
	return args.Int(0), args.Error(1)
}

// MockTaskRepository is a mock implementation of ports.TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Save(ctx context.Context, task *entities.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) SaveAll(ctx context.Context, tasks []*entities.Task) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id valueobjects.TaskID) (*entities.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Task), args.Error(1)
}

func (m *MockTaskRepository) FindAll(ctx context.Context) ([]*entities.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *entities.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id valueobjects.TaskID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTaskExtractor is a mock implementation of ports.TaskExtractor
type MockTaskExtractor struct {
	mock.Mock
}

func (m *MockTaskExtractor) Extract(ctx context.Context, thought *entities.Thought) ([]*entities.Task, error) {
	args := m.Called(ctx, thought)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Task), args.Error(1)
}

func (m *MockTaskExtractor) Name() string {
	return "mock"
}

// MockEventPublisher is a mock implementation of ports.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}
