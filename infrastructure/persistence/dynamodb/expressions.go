package dynamodb

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
)

func entityFilter(entityType string) (expression.Expression, error) {
	return expression.NewBuilder().
		WithFilter(expression.Name("EntityType").Equal(expression.Value(entityType))).
		Build()
}

func mustNotExist() (expression.Expression, error) {
	return expression.NewBuilder().
		WithCondition(expression.Name("PK").AttributeNotExists()).
		Build()
}

func mustExist() (expression.Expression, error) {
	return expression.NewBuilder().
		WithCondition(expression.Name("PK").AttributeExists()).
		Build()
}
