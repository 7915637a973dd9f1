package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/nutri-api/pkg/messaging"
	"github.com/jwalitptl/nutri-api/pkg/metrics"
)

// Subscriber delivers change events until ctx is done
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan messaging.Event, error)
}

// HandlerFunc reacts to one change event
type HandlerFunc func(ctx context.Context, event messaging.Event) error

type EventConsumer struct {
	subscriber Subscriber
	handlers   []HandlerFunc
	logger     zerolog.Logger
	metrics    *metrics.Metrics
}

func NewEventConsumer(subscriber Subscriber, logger zerolog.Logger, m *metrics.Metrics, handlers ...HandlerFunc) *EventConsumer {
	return &EventConsumer{
		subscriber: subscriber,
		handlers:   handlers,
		logger:     logger.With().Str("component", "event_consumer").Logger(),
		metrics:    m,
	}
}

// Start consumes events until ctx is cancelled or the subscription ends.
// A failing handler is logged and does not stop the loop.
func (c *EventConsumer) Start(ctx context.Context) error {
	events, err := c.subscriber.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	c.logger.Info().Msg("starting event consumer")
	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("shutting down event consumer")
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			c.handle(ctx, event)
		}
	}
}

func (c *EventConsumer) handle(ctx context.Context, event messaging.Event) {
	var errs []error
	for _, h := range c.handlers {
		if err := h(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	err := errors.Join(errs...)
	c.metrics.ObserveConsumed(event.Type, err)
	if err != nil {
		c.logger.Error().Err(err).Str("type", event.Type).Str("id", event.ID.String()).Msg("failed to handle event")
	}
}

// LogEvent writes each event to logger
func LogEvent(logger zerolog.Logger) HandlerFunc {
	return func(_ context.Context, event messaging.Event) error {
		e := logger.Info().
			Str("type", event.Type).
			Str("resource", event.Resource).
			Str("id", event.ID.String()).
			Time("occurred_at", event.OccurredAt)
		if event.OwnerID != nil {
			e = e.Str("owner_id", event.OwnerID.String())
		}
		e.Msg("change event")
		return nil
	}
}
