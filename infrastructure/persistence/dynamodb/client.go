// Package dynamodb stores thoughts and tasks in a single DynamoDB table.
//
// Every item uses PK = THOUGHT#<id> or TASK#<id>, SK = METADATA and an
// EntityType attribute used to filter scans.
package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	pkgerrors "stratagist-backend/pkg/errors"
	"stratagist-backend/pkg/observability"
)

const (
	metadataSK = "METADATA"

	entityThought = "THOUGHT"
	entityTask    = "TASK"

	// metric labels
	thoughtEntity = "thought"
	taskEntity    = "task"

	// maxBatchWrite is the BatchWriteItem request limit
	maxBatchWrite = 25
	// maxBatchAttempts bounds retries of unprocessed batch items
	maxBatchAttempts = 3
)

// API is the subset of the DynamoDB client the repositories use
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// NewClient loads the default AWS configuration for region
func NewClient(ctx context.Context, region string) (*dynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg), nil
}

func keyFor(prefix, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: prefix + "#" + id},
		"SK": &types.AttributeValueMemberS{Value: metadataSK},
	}
}

// classifyError maps DynamoDB API errors onto application errors. A failed
// existence condition means the item is missing.
func classifyError(op, resource string, err error) error {
	if err == nil {
		return nil
	}

	if isConditionFailure(err) {
		return pkgerrors.NewNotFoundError(resource)
	}

	var ae smithy.APIError
	if errors.As(err, &ae) {
		switch ae.ErrorCode() {
		case "ProvisionedThroughputExceededException", "ThrottlingException", "RequestLimitExceeded":
			return pkgerrors.NewUnavailableError("dynamodb").WithCause(err)
		case "ResourceNotFoundException":
			return pkgerrors.NewStorageError(op, err).WithCode("TABLE_NOT_FOUND")
		}
	}
	return pkgerrors.NewStorageError(op, err)
}

func isConditionFailure(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// finish records the operation metric and logs failures. Errors that are
// not already application errors become storage errors.
func finish(metrics *observability.Metrics, logger *zap.Logger, op, entity string, err error) error {
	if err == nil || pkgerrors.IsNotFound(err) || pkgerrors.IsValidation(err) {
		metrics.RecordStorageOperation(op, entity, nil)
		return err
	}

	metrics.RecordStorageOperation(op, entity, err)
	logger.Error("DynamoDB operation failed",
		zap.String("operation", op),
		zap.String("entity", entity),
		zap.Error(err),
	)
	if pkgerrors.GetAppError(err) != nil {
		return err
	}
	return pkgerrors.NewStorageError(op, err)
}

// batchWrite sends requests in chunks, retrying unprocessed items
func batchWrite(ctx context.Context, client API, table string, requests []types.WriteRequest) error {
	for start := 0; start < len(requests); start += maxBatchWrite {
		end := start + maxBatchWrite
		if end > len(requests) {
			end = len(requests)
		}

		pending := requests[start:end]
		for attempt := 0; len(pending) > 0; attempt++ {
			if attempt == maxBatchAttempts {
				return fmt.Errorf("%d items left unprocessed", len(pending))
			}
			out, err := client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{table: pending},
			})
			if err != nil {
				return err
			}
			pending = out.UnprocessedItems[table]
		}
	}
	return nil
}

// scanEntities pages through every item of one entity type
func scanEntities(ctx context.Context, client API, table, entityType string) ([]map[string]types.AttributeValue, error) {
	expr, err := entityFilter(entityType)
	if err != nil {
		return nil, err
	}

	paginator := dynamodb.NewScanPaginator(client, &dynamodb.ScanInput{
		TableName:                 aws.String(table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	var items []map[string]types.AttributeValue
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}
