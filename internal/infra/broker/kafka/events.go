package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"frontdesk/internal/domain/shared/events"
)

// EventPublisher serializes domain events onto Kafka topics, one topic
// per event name with an optional environment prefix.
type EventPublisher struct {
	Producer    *Producer
	TopicPrefix string
	Source      string
}

type envelope struct {
	Name        string    `json:"name"`
	AggregateID string    `json:"aggregateId"`
	OccurredAt  time.Time `json:"occurredAt"`
	Source      string    `json:"source,omitempty"`
	Payload     any       `json:"payload"`
}

func (p *EventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	payload, err := json.Marshal(envelope{
		Name:        event.EventName(),
		AggregateID: event.AggregateID(),
		OccurredAt:  event.OccurredAt(),
		Source:      p.Source,
		Payload:     event,
	})
	if err != nil {
		return err
	}
	headers := map[string]string{"event-name": event.EventName()}
	return p.Producer.Publish(ctx, p.topicFor(event.EventName()), event.AggregateID(), payload, headers)
}

func (p *EventPublisher) topicFor(name string) string {
	topic := strings.ReplaceAll(name, ".", "-")
	if p.TopicPrefix != "" {
		return p.TopicPrefix + "-" + topic
	}
	return topic
}

// NoopPublisher drops events when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, events.DomainEvent) error { return nil }
