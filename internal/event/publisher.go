package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/osse101/gameinventory/internal/domain"
	"github.com/osse101/gameinventory/internal/metrics"
)

const publishTimeout = 5 * time.Second

// Publisher writes catalog-update events to the shop stream
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a Publisher for the given brokers and topic
func NewPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &Publisher{writer: writer}
}

// PublishItemCreated emits the created item, keyed by its id
func (p *Publisher) PublishItemCreated(ctx context.Context, item domain.Item) error {
	value, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(strconv.Itoa(item.ID)),
		Value: value,
		Time:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		metrics.EventErrors.WithLabelValues(p.writer.Topic, "publish_failed").Inc()
		return fmt.Errorf("failed to write item event: %w", err)
	}

	metrics.EventsPublished.WithLabelValues(p.writer.Topic).Inc()
	return nil
}

// Close flushes and closes the underlying writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
