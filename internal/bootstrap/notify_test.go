package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightdb/pkg/kafka"
	"flightdb/pkg/logger"
)

type capturingPublisher struct {
	messages []kafka.Message
	err      error
}

func (p *capturingPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	p.messages = append(p.messages, msg)
	return p.err
}

func TestKafkaNotifier_Notify(t *testing.T) {
	publisher := &capturingPublisher{}
	notifier := NewKafkaNotifier(publisher, "bootstrap")

	result := &Result{
		RunID:              "0d7c2a55-6b86-4f0c-9e55-2d8f0f1c2a11",
		Database:           "flight_booking_db",
		CollectionsCreated: []string{UsersCollection},
		UserCreated:        true,
		PlacesInserted:     5,
		WeekDaysInserted:   7,
		StartedAt:          time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.NoError(t, notifier.Notify(context.Background(), result))
	require.Len(t, publisher.messages, 1)

	msg := publisher.messages[0]
	assert.Equal(t, "flight_booking_db", msg.Key)
	assert.Equal(t, result.RunID, msg.GetEventID())
	assert.Equal(t, EventDatabaseBootstrapped, msg.GetEventType())
	assert.Equal(t, "bootstrap", msg.Headers[kafka.HeaderSource])
	assert.Equal(t, "1", msg.Headers[kafka.HeaderSchemaVersion])
	assert.Equal(t, "flight_booking_db", msg.Headers[HeaderDatabase])

	var decoded Result
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, result.Database, decoded.Database)
	assert.Equal(t, 5, decoded.PlacesInserted)
	assert.Equal(t, 7, decoded.WeekDaysInserted)
	assert.True(t, decoded.UserCreated)
}

func TestKafkaNotifier_PublishError(t *testing.T) {
	boom := errors.New("leader not available")
	notifier := NewKafkaNotifier(&capturingPublisher{err: boom}, "bootstrap")

	err := notifier.Notify(context.Background(), &Result{RunID: "x", Database: "flight_booking_db"})
	assert.ErrorIs(t, err, boom)
}

func TestRun_NotifierFailureLogsWhetherPermanent(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantPermanent bool
	}{
		{name: "broker down", err: errors.New("leader not available"), wantPermanent: false},
		{name: "bad payload", err: kafka.NewPermanentError("failed to encode message value", errors.New("unsupported type")), wantPermanent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.New(logger.Config{Level: logger.WARN, Format: logger.JSON, Output: &buf})

			opts := fullOptions()
			opts.Notifier = &recordingNotifier{err: tt.err}
			_, err := New(newFakeStore(), log, opts).Run(context.Background())
			require.NoError(t, err)

			var record map[string]any
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				var r map[string]any
				require.NoError(t, json.Unmarshal([]byte(line), &r))
				if r["msg"] == "Failed to publish bootstrap event" {
					record = r
				}
			}
			require.NotNil(t, record)
			assert.Equal(t, tt.wantPermanent, record["permanent"])
		})
	}
}
