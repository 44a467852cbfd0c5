package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/segmentio/kafka-go"

	"github.com/osse101/gameinventory/internal/domain"
	"github.com/osse101/gameinventory/internal/logger"
	"github.com/osse101/gameinventory/internal/metrics"
)

// InventoryProvisioner is the slice of the inventory service the consumer
// needs to auto-provision inventories for new users
type InventoryProvisioner interface {
	CreateInventory(ctx context.Context, user domain.UserInfo) (*domain.Inventory, error)
}

// Consumer subscribes to the new-user fact stream and provisions an
// inventory per user. It runs as one long-lived background task for the
// lifetime of the process.
type Consumer struct {
	reader      *kafka.Reader
	inventories InventoryProvisioner
	topic       string
}

// NewConsumer creates a Consumer reading the topic from the earliest offset
func NewConsumer(brokers []string, topic, groupID string, inventories InventoryProvisioner) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})
	return &Consumer{reader: reader, inventories: inventories, topic: topic}
}

// Run consumes messages until ctx is cancelled or the reader is closed.
// A single bad message never stops the loop; only reader-level failures
// surface as errors.
func (c *Consumer) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Event consumer started", "topic", c.topic)

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
				log.Info("Event consumer stopped", "topic", c.topic)
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		c.handleMessage(ctx, msg.Value)
	}
}

// handleMessage provisions an inventory for the user in the payload.
// Malformed payloads and duplicate users are logged and skipped.
func (c *Consumer) handleMessage(ctx context.Context, value []byte) {
	log := logger.FromContext(ctx)

	var evt domain.NewUserEvent
	if err := json.Unmarshal(value, &evt); err != nil {
		log.Warn("Skipping malformed new-user event", "error", err)
		metrics.EventErrors.WithLabelValues(c.topic, "malformed").Inc()
		return
	}
	if evt.UserID == 0 {
		log.Warn("Skipping new-user event without user_id")
		metrics.EventErrors.WithLabelValues(c.topic, "malformed").Inc()
		return
	}

	user := domain.UserInfo{UserID: evt.UserID, Role: evt.Role}
	if _, err := c.inventories.CreateInventory(ctx, user); err != nil {
		if errors.Is(err, domain.ErrInventoryAlreadyExists) {
			// Duplicate fact, e.g. a replayed partition. Nothing to do.
			log.Info("Inventory already provisioned", "user_id", evt.UserID)
		} else {
			log.Error("Failed to provision inventory", "error", err, "user_id", evt.UserID)
			metrics.EventErrors.WithLabelValues(c.topic, "provision_failed").Inc()
			return
		}
	} else {
		log.Info("Inventory auto-provisioned", "user_id", evt.UserID)
	}

	metrics.EventsConsumed.WithLabelValues(c.topic).Inc()
}

// Close releases the underlying reader connection
func (c *Consumer) Close() error {
	return c.reader.Close()
}
