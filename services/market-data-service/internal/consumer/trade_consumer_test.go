package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/muhammadchandra19/exchange/pkg/logger"
	"github.com/muhammadchandra19/exchange/services/market-data-service/internal/consumer/mock"
	liveDomain "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/live/v1"
	liveMock "github.com/muhammadchandra19/exchange/services/market-data-service/internal/domain/live/v1/mock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTradeConsumer_Start(t *testing.T) {
	testCases := []struct {
		name   string
		value  string
		mockFn func(reader *mock.MockMessageReader, dispatcher *liveMock.MockDispatcher, msg kafka.Message)
	}{
		{
			name:  "dispatches decoded trade",
			value: `{"market":"XBTUSD","t":61500,"p":10.5,"a":2,"s":"buy"}`,
			mockFn: func(reader *mock.MockMessageReader, dispatcher *liveMock.MockDispatcher, msg kafka.Message) {
				dispatcher.EXPECT().OnTrade(liveDomain.Trade{Market: "xbtusd", TimestampSec: 61, Price: 10.5, Amount: 2})
				reader.EXPECT().CommitMessages(gomock.Any(), msg).Return(nil)
			},
		},
		{
			name:  "undecodable message is committed without dispatch",
			value: `{"market":`,
			mockFn: func(reader *mock.MockMessageReader, dispatcher *liveMock.MockDispatcher, msg kafka.Message) {
				reader.EXPECT().CommitMessages(gomock.Any(), msg).Return(nil)
			},
		},
		{
			name:  "unknown market is skipped",
			value: `{"market":"btcjpy","t":1000,"p":1,"a":1,"s":"sell"}`,
			mockFn: func(reader *mock.MockMessageReader, dispatcher *liveMock.MockDispatcher, msg kafka.Message) {
				reader.EXPECT().CommitMessages(gomock.Any(), msg).Return(nil)
			},
		},
		{
			name:  "negative timestamp is skipped",
			value: `{"market":"ethusd","t":-1,"p":1,"a":1,"s":"sell"}`,
			mockFn: func(reader *mock.MockMessageReader, dispatcher *liveMock.MockDispatcher, msg kafka.Message) {
				reader.EXPECT().CommitMessages(gomock.Any(), msg).Return(nil)
			},
		},
		{
			name:  "negative amount is skipped",
			value: `{"market":"ethusd","t":1000,"p":1,"a":-5,"s":"sell"}`,
			mockFn: func(reader *mock.MockMessageReader, dispatcher *liveMock.MockDispatcher, msg kafka.Message) {
				reader.EXPECT().CommitMessages(gomock.Any(), msg).Return(nil)
			},
		},
		{
			name:  "commit is retried",
			value: `{"market":"solusd","t":2000,"p":3,"a":1,"s":"buy"}`,
			mockFn: func(reader *mock.MockMessageReader, dispatcher *liveMock.MockDispatcher, msg kafka.Message) {
				dispatcher.EXPECT().OnTrade(liveDomain.Trade{Market: "solusd", TimestampSec: 2, Price: 3, Amount: 1})
				gomock.InOrder(
					reader.EXPECT().CommitMessages(gomock.Any(), msg).Return(errors.New("rebalance")),
					reader.EXPECT().CommitMessages(gomock.Any(), msg).Return(nil),
				)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := mock.NewMockMessageReader(ctrl)
			dispatcher := liveMock.NewMockDispatcher(ctrl)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			msg := kafka.Message{Offset: 7, Value: []byte(tc.value)}
			gomock.InOrder(
				reader.EXPECT().FetchMessage(gomock.Any()).Return(msg, nil),
				reader.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(func(context.Context) (kafka.Message, error) {
					cancel()
					return kafka.Message{}, context.Canceled
				}),
			)
			tc.mockFn(reader, dispatcher, msg)

			c := NewTradeConsumerWithReader(reader, dispatcher, logger.NewNop())
			c.retryDelay = time.Millisecond

			err := c.Start(ctx)
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestTradeConsumer_FetchErrorBacksOff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := mock.NewMockMessageReader(ctrl)
	dispatcher := liveMock.NewMockDispatcher(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		reader.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{}, errors.New("broker down")),
		reader.EXPECT().FetchMessage(gomock.Any()).DoAndReturn(func(context.Context) (kafka.Message, error) {
			cancel()
			return kafka.Message{}, context.Canceled
		}),
	)

	c := NewTradeConsumerWithReader(reader, dispatcher, logger.NewNop())
	c.retryDelay = time.Millisecond

	require.ErrorIs(t, c.Start(ctx), context.Canceled)
}

func TestTradeConsumer_Stop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := mock.NewMockMessageReader(ctrl)
	reader.EXPECT().Close().Return(nil)

	c := NewTradeConsumerWithReader(reader, liveMock.NewMockDispatcher(ctrl), logger.NewNop())
	assert.NoError(t, c.Stop())
}
