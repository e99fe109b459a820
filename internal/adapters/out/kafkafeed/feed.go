// Package kafkafeed carries the change feed over Kafka. Events are keyed by
// order ID so Kafka's per-partition ordering gives the feed its per-order
// ordering guarantee; delivery stays at least once, which the domain
// consumers already tolerate.
package kafkafeed

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Feed implements ports.ChangeFeed over one Kafka topic.
type Feed struct {
	brokers []string
	topic   string
	groupID string
	writer  *kafka.Writer
	logger  *slog.Logger
}

// NewFeed creates a Kafka-backed change feed. brokersCSV is a comma-separated
// broker list; groupID names the consumer group for subscriptions.
func NewFeed(brokersCSV, topic, groupID string, logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.Default()
	}

	brokers := make([]string, 0)
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}

	return &Feed{
		brokers: brokers,
		topic:   topic,
		groupID: groupID,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		logger: logger,
	}
}

// Publish appends an event to the feed. Order events hash on the order ID so
// one order's events land on one partition; courier events hash on the
// courier ID.
func (f *Feed) Publish(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	key := event.OrderID
	if key == "" {
		key = event.CourierID
	}

	return f.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now().UTC(),
	})
}

// Subscribe consumes the topic through a fresh reader in the feed's consumer
// group and forwards matching events until ctx is done. Malformed messages
// are logged and skipped; the feed never stalls on one bad payload.
func (f *Feed) Subscribe(ctx context.Context, predicate ports.EventPredicate) (<-chan events.Event, error) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  f.brokers,
		Topic:    f.topic,
		GroupID:  f.groupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})

	out := make(chan events.Event)

	go func() {
		defer close(out)
		defer func() {
			if err := reader.Close(); err != nil {
				f.logger.Warn("Closing feed reader failed", "error", err)
			}
		}()

		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() == nil {
					f.logger.Error("Reading from feed failed", "error", err)
				}
				return
			}

			var ev events.Event
			if err = json.Unmarshal(msg.Value, &ev); err != nil {
				f.logger.Warn("Skipping malformed feed message",
					"offset", msg.Offset, "error", err)
				continue
			}

			if predicate != nil && !predicate(ev) {
				continue
			}

			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// Close releases the underlying writer.
func (f *Feed) Close() error {
	return f.writer.Close()
}
