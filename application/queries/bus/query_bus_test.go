package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countQuery struct {
	N int
}

func (q countQuery) Validate() error {
	if q.N < 0 {
		return errors.New("n cannot be negative")
	}
	return nil
}

func TestQueryBus_Ask(t *testing.T) {
	b := NewQueryBus(LoggingMiddleware(zap.NewNop(), time.Second))
	require.NoError(t, b.Register(countQuery{}, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		return q.(countQuery).N * 2, nil
	})))

	result, err := b.Ask(context.Background(), countQuery{N: 21})
	require.NoError(t, err)
	assert.Equal(t, 42, result)

	_, err = b.Ask(context.Background(), countQuery{N: -1})
	assert.ErrorContains(t, err, "cannot be negative")

	assert.Error(t, b.Register(countQuery{}, QueryHandlerFunc(nil)))
}

type unknownQuery struct{}

func (unknownQuery) Validate() error { return nil }

func TestQueryBus_Unregistered(t *testing.T) {
	_, err := NewQueryBus().Ask(context.Background(), unknownQuery{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)
}
