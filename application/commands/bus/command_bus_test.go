package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pingCommand struct {
	Value string
}

func (c pingCommand) Validate() error {
	if c.Value == "" {
		return errors.New("value is required")
	}
	return nil
}

type otherCommand struct{}

func (otherCommand) Validate() error { return nil }

func TestCommandBus_Send(t *testing.T) {
	b := NewCommandBus(LoggingMiddleware(zap.NewNop()))
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		return "pong:" + cmd.(pingCommand).Value, nil
	})))

	result, err := b.Send(context.Background(), pingCommand{Value: "a"})
	require.NoError(t, err)
	assert.Equal(t, "pong:a", result)
}

func TestCommandBus_Errors(t *testing.T) {
	sentinel := errors.New("handler exploded")
	b := NewCommandBus()
	require.NoError(t, b.Register(pingCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		return nil, sentinel
	})))

	t.Run("duplicate registration", func(t *testing.T) {
		err := b.Register(pingCommand{}, CommandHandlerFunc(nil))
		assert.Error(t, err)
	})

	t.Run("validation runs first", func(t *testing.T) {
		_, err := b.Send(context.Background(), pingCommand{})
		assert.ErrorContains(t, err, "value is required")
	})

	t.Run("unregistered", func(t *testing.T) {
		_, err := b.Send(context.Background(), otherCommand{})
		assert.ErrorIs(t, err, ErrHandlerNotFound)
	})

	t.Run("handler error is wrapped", func(t *testing.T) {
		_, err := b.Send(context.Background(), pingCommand{Value: "x"})
		assert.ErrorIs(t, err, sentinel)
	})
}

func TestPipeline_Order(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next CommandHandler) CommandHandler {
			return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
				order = append(order, name)
				return next.Handle(ctx, cmd)
			})
		}
	}

	handler := NewPipeline(tag("outer"), tag("inner")).Execute(CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		order = append(order, "handler")
		return nil, nil
	}))

	_, err := handler.Handle(context.Background(), otherCommand{})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
