package eventbridge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stratagist-backend/domain/events"
)

type mockEventBridge struct {
	mock.Mock
}

func (m *mockEventBridge) PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventbridge.PutEventsOutput), args.Error(1)
}

func someEvents(n int) []events.DomainEvent {
	at := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	out := make([]events.DomainEvent, n)
	for i := range out {
		out[i] = events.NewTaskDeleted("task", at)
	}
	return out
}

func TestPublisher_PublishBatchChunks(t *testing.T) {
	client := new(mockEventBridge)
	pub := NewPublisher(client, "bus", zap.NewNop())

	client.On("PutEvents", mock.Anything, mock.MatchedBy(func(in *eventbridge.PutEventsInput) bool {
		return len(in.Entries) == 10
	})).Return(&eventbridge.PutEventsOutput{}, nil).Twice()
	client.On("PutEvents", mock.Anything, mock.MatchedBy(func(in *eventbridge.PutEventsInput) bool {
		return len(in.Entries) == 3
	})).Return(&eventbridge.PutEventsOutput{}, nil).Once()

	require.NoError(t, pub.PublishBatch(context.Background(), someEvents(23)))
	client.AssertExpectations(t)
}

func TestPublisher_EntryShape(t *testing.T) {
	client := new(mockEventBridge)
	pub := NewPublisher(client, "bus", nil)
	at := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	var captured *eventbridge.PutEventsInput
	client.On("PutEvents", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*eventbridge.PutEventsInput) }).
		Return(&eventbridge.PutEventsOutput{}, nil)

	require.NoError(t, pub.Publish(context.Background(), events.NewThoughtCreated("t-1", 5, at)))

	require.Len(t, captured.Entries, 1)
	entry := captured.Entries[0]
	assert.Equal(t, "bus", aws.ToString(entry.EventBusName))
	assert.Equal(t, Source, aws.ToString(entry.Source))
	assert.Equal(t, events.TypeThoughtCreated, aws.ToString(entry.DetailType))
	assert.True(t, aws.ToTime(entry.Time).Equal(at))

	var detail map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(entry.Detail)), &detail))
	assert.Equal(t, "t-1", detail["thought_id"])
}

func TestPublisher_Failures(t *testing.T) {
	tests := []struct {
		name string
		out  *eventbridge.PutEventsOutput
		err  error
	}{
		{"client error", nil, errors.New("network down")},
		{"rejected entries", &eventbridge.PutEventsOutput{
			FailedEntryCount: 1,
			Entries:          []types.PutEventsResultEntry{{ErrorCode: aws.String("InternalFailure")}},
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockEventBridge)
			client.On("PutEvents", mock.Anything, mock.Anything).Return(tt.out, tt.err)

			err := NewPublisher(client, "bus", nil).PublishBatch(context.Background(), someEvents(1))
			assert.Error(t, err)
		})
	}
}

func TestPublisher_EmptyBatch(t *testing.T) {
	client := new(mockEventBridge)
	require.NoError(t, NewPublisher(client, "bus", nil).PublishBatch(context.Background(), nil))
	client.AssertNotCalled(t, "PutEvents", mock.Anything, mock.Anything)
}
