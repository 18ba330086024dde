package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"stratagist-backend/application/ports"
	"stratagist-backend/domain/core/entities"
	"stratagist-backend/domain/core/valueobjects"
	pkgerrors "stratagist-backend/pkg/errors"
	"stratagist-backend/pkg/observability"
)

// TaskRepository implements ports.TaskRepository using DynamoDB
type TaskRepository struct {
	client    API
	tableName string
	metrics   *observability.Metrics
	logger    *zap.Logger
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(client API, tableName string, metrics *observability.Metrics, logger *zap.Logger) *TaskRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskRepository{client: client, tableName: tableName, metrics: metrics, logger: logger}
}

// Save stores a new task
func (r *TaskRepository) Save(ctx context.Context, task *entities.Task) error {
	item, err := attributevalue.MarshalMap(newTaskItem(task))
	if err != nil {
		return r.done("save", fmt.Errorf("failed to marshal task: %w", err))
	}
	expr, err := mustNotExist()
	if err != nil {
		return r.done("save", fmt.Errorf("failed to build expression: %w", err))
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(r.tableName),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if isConditionFailure(err) {
		return r.done("save", pkgerrors.NewValidationError("task already exists"))
	}
	return r.done("save", classifyError("save", "Task", err))
}

// SaveAll stores tasks with batched writes of up to 25 items
func (r *TaskRepository) SaveAll(ctx context.Context, tasks []*entities.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	requests := make([]types.WriteRequest, 0, len(tasks))
	for _, task := range tasks {
		item, err := attributevalue.MarshalMap(newTaskItem(task))
		if err != nil {
			return r.done("save_all", fmt.Errorf("failed to marshal task: %w", err))
		}
		requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
	}

	err := batchWrite(ctx, r.client, r.tableName, requests)
	return r.done("save_all", classifyError("save_all", "Task", err))
}

// FindByID retrieves a task by its ID
func (r *TaskRepository) FindByID(ctx context.Context, id valueobjects.TaskID) (*entities.Task, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       keyFor(entityTask, id.String()),
	})
	if err != nil {
		return nil, r.done("find", classifyError("find", "Task", err))
	}
	if out.Item == nil {
		r.metrics.RecordStorageOperation("find", taskEntity, nil)
		return nil, pkgerrors.NewNotFoundError("Task")
	}

	var item taskItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, r.done("find", fmt.Errorf("failed to unmarshal task: %w", err))
	}
	task, err := item.toEntity()
	if err != nil {
		return nil, r.done("find", err)
	}
	r.metrics.RecordStorageOperation("find", taskEntity, nil)
	return task, nil
}

// FindAll scans every task
func (r *TaskRepository) FindAll(ctx context.Context) ([]*entities.Task, error) {
	raw, err := scanEntities(ctx, r.client, r.tableName, entityTask)
	if err != nil {
		return nil, r.done("list", classifyError("list", "Task", err))
	}
	var items []taskItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, r.done("list", fmt.Errorf("failed to unmarshal tasks: %w", err))
	}

	tasks := make([]*entities.Task, 0, len(items))
	for _, item := range items {
		task, err := item.toEntity()
		if err != nil {
			r.logger.Warn("Skipping unreadable task item", zap.String("id", item.TaskID), zap.Error(err))
			continue
		}
		tasks = append(tasks, task)
	}
	r.metrics.RecordStorageOperation("list", taskEntity, nil)
	return tasks, nil
}

// Update overwrites an existing task
func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) error {
	item, err := attributevalue.MarshalMap(newTaskItem(task))
	if err != nil {
		return r.done("update", fmt.Errorf("failed to marshal task: %w", err))
	}
	expr, err := mustExist()
	if err != nil {
		return r.done("update", fmt.Errorf("failed to build expression: %w", err))
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(r.tableName),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	return r.done("update", classifyError("update", "Task", err))
}

// Delete removes a task
func (r *TaskRepository) Delete(ctx context.Context, id valueobjects.TaskID) error {
	expr, err := mustExist()
	if err != nil {
		return r.done("delete", fmt.Errorf("failed to build expression: %w", err))
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       keyFor(entityTask, id.String()),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	return r.done("delete", classifyError("delete", "Task", err))
}

func (r *TaskRepository) done(op string, err error) error {
	return finish(r.metrics, r.logger, op, taskEntity, err)
}
