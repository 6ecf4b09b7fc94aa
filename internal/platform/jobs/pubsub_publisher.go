package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/pubsub"

	"github.com/wedloom/api/internal/services"
)

// PubSubEventPublisher publishes wedding lifecycle events to a Pub/Sub topic.
type PubSubEventPublisher struct {
	topic   *pubsub.Topic
	marshal func(any) ([]byte, error)
}

var _ services.WeddingEventPublisher = (*PubSubEventPublisher)(nil)

// NewPubSubEventPublisher constructs a Pub/Sub backed wedding event publisher.
func NewPubSubEventPublisher(topic *pubsub.Topic) (*PubSubEventPublisher, error) {
	if topic == nil {
		return nil, errors.New("pubsub event publisher: topic is required")
	}
	return &PubSubEventPublisher{
		topic:   topic,
		marshal: json.Marshal,
	}, nil
}

type weddingEventEnvelope struct {
	Type       string            `json:"type"`
	WeddingID  string            `json:"weddingId"`
	OwnerID    string            `json:"ownerId,omitempty"`
	SectionID  string            `json:"sectionId,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// PublishWeddingEvent enqueues a lifecycle event on the configured topic.
// Attributes mirror the routing fields so subscribers can filter without
// decoding the payload.
func (p *PubSubEventPublisher) PublishWeddingEvent(ctx context.Context, event services.WeddingEvent) error {
	if p == nil || p.topic == nil {
		return errors.New("pubsub event publisher: not initialised")
	}

	envelope := weddingEventEnvelope{
		Type:       event.Type,
		WeddingID:  event.WeddingID,
		OwnerID:    event.OwnerID,
		SectionID:  event.SectionID,
		OccurredAt: event.OccurredAt.UTC(),
		Metadata:   event.Metadata,
	}
	data, err := p.marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal wedding event: %w", err)
	}

	attrs := make(map[string]string)
	setAttr(attrs, "type", event.Type)
	setAttr(attrs, "weddingId", event.WeddingID)
	setAttr(attrs, "ownerUid", event.OwnerID)
	setAttr(attrs, "sectionId", event.SectionID)

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attrs,
	})

	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publish wedding event: %w", err)
	}
	return nil
}

func setAttr(attrs map[string]string, key string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		attrs[key] = v
	}
}
