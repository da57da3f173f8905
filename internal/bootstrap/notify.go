package bootstrap

import (
	"context"
	"fmt"

	"flightdb/pkg/kafka"
)

const (
	EventDatabaseBootstrapped = "database.bootstrapped"
	eventSchemaVersion        = "1"

	HeaderDatabase = "database"
)

// Notifier announces a completed bootstrap run.
type Notifier interface {
	Notify(ctx context.Context, result *Result) error
}

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type KafkaNotifier struct {
	publisher Publisher
	source    string
}

func NewKafkaNotifier(publisher Publisher, source string) *KafkaNotifier {
	return &KafkaNotifier{publisher: publisher, source: source}
}

func (n *KafkaNotifier) Notify(ctx context.Context, result *Result) error {
	msg, err := kafka.NewMessage().
		WithKey(result.Database).
		WithValue(result).
		WithEventID(result.RunID).
		WithEventType(EventDatabaseBootstrapped).
		WithSchemaVersion(eventSchemaVersion).
		WithSource(n.source).
		WithHeader(HeaderDatabase, result.Database).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build bootstrap event: %w", err)
	}
	return n.publisher.Publish(ctx, msg)
}
