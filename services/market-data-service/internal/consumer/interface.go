package consumer

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageReader is the part of *kafka.Reader the consumers use.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
