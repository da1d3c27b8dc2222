package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobboard-be/internal/pkg/logger"
	"jobboard-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IPublisherService puts raw payloads on the in-process message bus.
type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (p *publisherService) Publish(ctx context.Context, payload []byte) error {
	// The message outlives the request, so ctx is not attached to it.
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return p.pubSub.Publish(p.topicName, msg)
}

// EventSink is anything that accepts lifecycle events, e.g. the NATS
// JetStream publisher.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

// IEventPublisher fans order lifecycle events out to every sink. Callers
// treat a returned error as non-fatal.
type IEventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// BusEnvelope is the JSON shape of an event on the in-process bus.
type BusEnvelope struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload"`
}

// DefaultSinkTimeout bounds a sink publish when no timeout is configured.
const DefaultSinkTimeout = 500 * time.Millisecond

type eventPublisher struct {
	bus         IPublisherService
	sinks       []EventSink
	sinkTimeout time.Duration
	logger      logger.ILogger
}

// NewEventPublisher publishes to the bus (may be nil) and to each non-nil
// sink. Each sink publish gets at most sinkTimeout.
func NewEventPublisher(bus IPublisherService, log logger.ILogger, sinkTimeout time.Duration, sinks ...EventSink) IEventPublisher {
	if sinkTimeout <= 0 {
		sinkTimeout = DefaultSinkTimeout
	}
	active := make([]EventSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}
	return &eventPublisher{bus: bus, sinks: active, sinkTimeout: sinkTimeout, logger: log}
}

func (p *eventPublisher) Publish(ctx context.Context, event events.Event) error {
	var errs []error

	if p.bus != nil {
		data, err := json.Marshal(BusEnvelope{
			Type:       event.EventType(),
			OccurredAt: event.Timestamp(),
			Payload:    event.Payload(),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("marshal %s: %w", event.EventType(), err))
		} else if err := p.bus.Publish(ctx, data); err != nil {
			errs = append(errs, fmt.Errorf("bus publish %s: %w", event.EventType(), err))
		}
	}

	for _, sink := range p.sinks {
		if err := p.publishToSink(ctx, sink, event); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		p.logger.Warn("EventPublisher", "Event delivery incomplete", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
		return err
	}
	return nil
}

func (p *eventPublisher) publishToSink(ctx context.Context, sink EventSink, event events.Event) error {
	sinkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.sinkTimeout)
	defer cancel()
	return sink.Publish(sinkCtx, event)
}
