package kafka

import (
	"context"

	"github.com/turtacn/GeoRose/internal/domain/rose"
)

// Publisher is the interface DiagramEventPublisher writes through.
type Publisher interface {
	Publish(ctx context.Context, msg *Message) error
}

// DiagramEventPublisher sends rose domain events as enveloped JSON records.
type DiagramEventPublisher struct {
	producer Publisher
	topic    string
}

func NewDiagramEventPublisher(producer Publisher, topic string) *DiagramEventPublisher {
	if topic == "" {
		topic = TopicDiagramGenerated
	}
	return &DiagramEventPublisher{producer: producer, topic: topic}
}

// PublishDiagramGenerated keys the record by diagram id so that all events of
// one diagram land on the same partition.
func (p *DiagramEventPublisher) PublishDiagramGenerated(ctx context.Context, ev *rose.DiagramGeneratedEvent) error {
	env, err := NewEventEnvelope(ev.EventType(), ev)
	if err != nil {
		return err
	}
	env.Metadata["palette"] = ev.Palette.String()

	msg, err := env.ToMessage(p.topic, ev.DiagramID)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

var _ rose.EventPublisher = (*DiagramEventPublisher)(nil)

//Personal.AI order the ending
