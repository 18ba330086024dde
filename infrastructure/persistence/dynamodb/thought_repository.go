package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"stratagist-backend/application/ports"
	"stratagist-backend/domain/core/entities"
	"stratagist-backend/domain/core/valueobjects"
	pkgerrors "stratagist-backend/pkg/errors"
	"stratagist-backend/pkg/observability"
	"stratagist-backend/pkg/utils"
)

// ThoughtRepository implements ports.ThoughtRepository using DynamoDB
type ThoughtRepository struct {
	client    API
	tableName string
	metrics   *observability.Metrics
	logger    *zap.Logger
}

var _ ports.ThoughtRepository = (*ThoughtRepository)(nil)

// NewThoughtRepository creates a new ThoughtRepository
func NewThoughtRepository(client API, tableName string, metrics *observability.Metrics, logger *zap.Logger) *ThoughtRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ThoughtRepository{client: client, tableName: tableName, metrics: metrics, logger: logger}
}

// Save stores a new thought. Saving an existing id fails.
func (r *ThoughtRepository) Save(ctx context.Context, thought *entities.Thought) error {
	return r.put(ctx, "save", thought, mustNotExist)
}

// Update overwrites an existing thought
func (r *ThoughtRepository) Update(ctx context.Context, thought *entities.Thought) error {
	return r.put(ctx, "update", thought, mustExist)
}

func (r *ThoughtRepository) put(ctx context.Context, op string, thought *entities.Thought, cond func() (expression.Expression, error)) error {
	item, err := attributevalue.MarshalMap(newThoughtItem(thought))
	if err != nil {
		return r.done(op, fmt.Errorf("failed to marshal thought: %w", err))
	}
	expr, err := cond()
	if err != nil {
		return r.done(op, fmt.Errorf("failed to build expression: %w", err))
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(r.tableName),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if op == "save" && isConditionFailure(err) {
		return r.done(op, pkgerrors.NewValidationError("thought already exists"))
	}
	return r.done(op, classifyError(op, "Thought", err))
}

// FindByID retrieves a thought by its ID
func (r *ThoughtRepository) FindByID(ctx context.Context, id valueobjects.ThoughtID) (*entities.Thought, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       keyFor(entityThought, id.String()),
	})
	if err != nil {
		return nil, r.done("find", classifyError("find", "Thought", err))
	}
	if out.Item == nil {
		r.metrics.RecordStorageOperation("find", thoughtEntity, nil)
		return nil, pkgerrors.NewNotFoundError("Thought")
	}

	var item thoughtItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, r.done("find", fmt.Errorf("failed to unmarshal thought: %w", err))
	}
	thought, err := item.toEntity()
	if err != nil {
		return nil, r.done("find", err)
	}
	r.metrics.RecordStorageOperation("find", thoughtEntity, nil)
	return thought, nil
}

// FindAll scans every thought. Scan order is unspecified.
func (r *ThoughtRepository) FindAll(ctx context.Context) ([]*entities.Thought, error) {
	items, err := r.scan(ctx)
	if err != nil {
		return nil, r.done("list", err)
	}

	thoughts := make([]*entities.Thought, 0, len(items))
	for _, item := range items {
		thought, err := item.toEntity()
		if err != nil {
			r.logger.Warn("Skipping unreadable thought item", zap.String("id", item.ThoughtID), zap.Error(err))
			continue
		}
		thoughts = append(thoughts, thought)
	}
	r.metrics.RecordStorageOperation("list", thoughtEntity, nil)
	return thoughts, nil
}

// Delete removes a thought
func (r *ThoughtRepository) Delete(ctx context.Context, id valueobjects.ThoughtID) error {
	expr, err := mustExist()
	if err != nil {
		return r.done("delete", fmt.Errorf("failed to build expression: %w", err))
	}

	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       keyFor(entityThought, id.String()),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	return r.done("delete", classifyError("delete", "Thought", err))
}

// DeleteByDate removes every thought recorded on date's calendar day
func (r *ThoughtRepository) DeleteByDate(ctx context.Context, date time.Time) (int, error) {
	items, err := r.scan(ctx)
	if err != nil {
		return 0, r.done("delete_by_date", err)
	}

	var requests []types.WriteRequest
	for _, item := range items {
		ts, err := utils.ParseTimestamp(item.Timestamp)
		if err != nil || !utils.SameDay(ts, date) {
			continue
		}
		requests = append(requests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: keyFor(entityThought, item.ThoughtID)},
		})
	}

	if err := batchWrite(ctx, r.client, r.tableName, requests); err != nil {
		return 0, r.done("delete_by_date", classifyError("delete_by_date", "Thought", err))
	}
	r.metrics.RecordStorageOperation("delete_by_date", thoughtEntity, nil)
	return len(requests), nil
}

func (r *ThoughtRepository) scan(ctx context.Context) ([]thoughtItem, error) {
	raw, err := scanEntities(ctx, r.client, r.tableName, entityThought)
	if err != nil {
		return nil, classifyError("scan", "Thought", err)
	}
	var items []thoughtItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal thoughts: %w", err)
	}
	return items, nil
}

func (r *ThoughtRepository) done(op string, err error) error {
	return finish(r.metrics, r.logger, op, thoughtEntity, err)
}
