package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/IBM/sarama"

	"mollie-bridge/internal/models"
)

// ErasureConsumer listens for customer-erasure requests published by the
// host platform when a shop customer's data must be removed.
type ErasureConsumer struct {
	consumer sarama.ConsumerGroup
	topics   []string
}

func NewErasureConsumer(brokers []string, groupID string) (*ErasureConsumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin
	config.Consumer.Offsets.Initial = sarama.OffsetNewest

	consumer, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &ErasureConsumer{
		consumer: consumer,
		topics:   []string{"customer-erasure"},
	}, nil
}

func (c *ErasureConsumer) ConsumeErasures(ctx context.Context, handler func(*models.ErasureEvent) error) error {
	consumerHandler := &erasureConsumerHandler{handler: handler}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := c.consumer.Consume(ctx, c.topics, consumerHandler); err != nil {
				log.Printf("Error consuming messages: %v", err)
				return err
			}
		}
	}
}

func (c *ErasureConsumer) Close() error {
	return c.consumer.Close()
}

type erasureConsumerHandler struct {
	handler func(*models.ErasureEvent) error
}

func (h *erasureConsumerHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *erasureConsumerHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *erasureConsumerHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var event models.ErasureEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Failed to unmarshal message: %v", err)
			continue
		}

		if err := h.handler(&event); err != nil {
			log.Printf("Failed to handle erasure event: %v", err)
			continue
		}

		session.MarkMessage(message, "")
	}

	return nil
}
