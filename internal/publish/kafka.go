package publish

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/triagehq/mailtriage/pkg/models"
)

// KafkaPublisher sends ticket outcomes to a Kafka topic, keyed by ticket ID
// so per-ticket ordering is preserved.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *KafkaPublisher) PublishOutcome(ctx context.Context, outcome models.TicketOutcome) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(outcome.TicketID.String()),
		Value: data,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

var _ Publisher = (*KafkaPublisher)(nil)
