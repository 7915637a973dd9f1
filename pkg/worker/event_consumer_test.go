package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/nutri-api/pkg/messaging"
	"github.com/jwalitptl/nutri-api/pkg/metrics"
)

type chanSubscriber struct {
	events chan messaging.Event
	err    error
}

func (s chanSubscriber) Subscribe(context.Context) (<-chan messaging.Event, error) {
	return s.events, s.err
}

func TestConsumerRunsHandlersAndCounts(t *testing.T) {
	events := make(chan messaging.Event, 3)
	m := metrics.New(prometheus.NewRegistry(), "nutri")

	var mu sync.Mutex
	var seen []string
	record := func(_ context.Context, e messaging.Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, e.Type)
		return nil
	}
	failDeletes := func(_ context.Context, e messaging.Event) error {
		if e.Type == "patients.deleted" {
			return errors.New("boom")
		}
		return nil
	}

	c := NewEventConsumer(chanSubscriber{events: events}, zerolog.Nop(), m, record, failDeletes, LogEvent(zerolog.Nop()))
	events <- messaging.Event{Type: "patients.created", ID: uuid.New(), OccurredAt: time.Now()}
	events <- messaging.Event{Type: "patients.deleted", ID: uuid.New(), OccurredAt: time.Now()}
	close(events)

	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, []string{"patients.created", "patients.deleted"}, seen)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsConsumed.WithLabelValues("patients.created", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsConsumed.WithLabelValues("patients.deleted", "error")))
}

func TestConsumerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := NewEventConsumer(chanSubscriber{events: make(chan messaging.Event)}, zerolog.Nop(), nil)

	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop")
	}
}

func TestConsumerSubscribeError(t *testing.T) {
	c := NewEventConsumer(chanSubscriber{err: errors.New("redis down")}, zerolog.Nop(), nil)
	assert.ErrorContains(t, c.Start(context.Background()), "redis down")
}
