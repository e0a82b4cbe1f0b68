// Package publisher sends volunteer domain events to Kafka.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	vmodels "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/models"
)

// EventTypeHeader names the record header carrying the event type.
const EventTypeHeader = "event_type"

const eventCorePromoted = "core_volunteer_promoted"

// Producer is the slice of *kgo.Client the publisher uses.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// KafkaPublisher writes promotion events keyed by volunteer id, so every event
// of one volunteer lands on one partition in order.
type KafkaPublisher struct {
	producer Producer
	topic    string
	logger   *slog.Logger
}

type Option func(*KafkaPublisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *KafkaPublisher) {
		p.logger = logger
	}
}

func NewKafka(producer Producer, topic string, opts ...Option) *KafkaPublisher {
	p := &KafkaPublisher{producer: producer, topic: topic}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PublishPromotion produces msg and waits for the broker acknowledgement.
func (p *KafkaPublisher) PublishPromotion(ctx context.Context, msg vmodels.PromotionMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal promotion event: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(msg.VolunteerID.String()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: EventTypeHeader, Value: []byte(eventCorePromoted)},
			{Key: "content-type", Value: []byte("application/json")},
		},
	}
	if err := p.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce promotion event: %w", err)
	}

	if p.logger != nil {
		p.logger.DebugContext(ctx, "promotion event published",
			"volunteer_id", msg.VolunteerID.String(),
			"topic", p.topic,
		)
	}
	return nil
}
