package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nsqio/go-nsq"
)

// NSQPublisher sends events to an nsqd topic.
type NSQPublisher struct {
	producer *nsq.Producer
	topic    string
}

// NewNSQPublisher connects a producer to nsqd at addr.
func NewNSQPublisher(addr, topic string) (*NSQPublisher, error) {
	if !nsq.IsValidTopicName(topic) {
		return nil, fmt.Errorf("invalid nsq topic %q", topic)
	}

	producer, err := nsq.NewProducer(addr, nsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create nsq producer: %w", err)
	}
	producer.SetLogger(nsqLogger{}, nsq.LogLevelWarning)

	if err := producer.Ping(); err != nil {
		producer.Stop()
		return nil, fmt.Errorf("failed to reach nsqd at %s: %w", addr, err)
	}

	return &NSQPublisher{producer: producer, topic: topic}, nil
}

// Publish encodes the event as JSON and publishes it synchronously.
func (p *NSQPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := p.producer.Publish(p.topic, body); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

// Close stops the producer.
func (p *NSQPublisher) Close() error {
	p.producer.Stop()
	return nil
}

// nsqLogger routes go-nsq's internal logging into slog.
type nsqLogger struct{}

func (nsqLogger) Output(_ int, s string) error {
	slog.Warn("nsq", "message", s)
	return nil
}
