package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishRunsAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	boom := errors.New("boom")

	d.Subscribe(EventTicketUpdated, func(_ context.Context, e Event) error {
		calls = append(calls, "first")
		return boom
	})
	d.Subscribe(EventTicketUpdated, func(_ context.Context, e Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventLoginFailed, func(context.Context, Event) error {
		calls = append(calls, "other")
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventTicketUpdated, Actor{}, TicketUpdatedPayload{TicketID: "t1"}))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestPublishWithoutListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), NewEvent(EventLoginSucceeded, Actor{}, nil)))
}

func TestNewEventStampsIDAndTime(t *testing.T) {
	e := NewEvent(EventLoginFailed, Actor{Email: "a@b.c"}, LoginAttemptPayload{Email: "a@b.c"})
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, EventLoginFailed, e.Type)
}
