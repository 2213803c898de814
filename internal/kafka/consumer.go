package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/planepal/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// NotificationHandler processes one decoded booking confirmation.
type NotificationHandler func(ctx context.Context, event BookingNotification) error

// NotificationConsumer reads booking confirmations from the notifications
// topic. Malformed events are logged and skipped so one bad message never
// wedges the group.
type NotificationConsumer struct {
	reader *kafka.Reader
	log    logger.Logger
}

func NewNotificationConsumer(brokers []string, groupID, topic string, log logger.Logger) *NotificationConsumer {
	return &NotificationConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log: log,
	}
}

func (c *NotificationConsumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func (c *NotificationConsumer) Consume(ctx context.Context, handler NotificationHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		var event BookingNotification
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.log.Error("decode notification event", "offset", msg.Offset, "error", err)
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}
