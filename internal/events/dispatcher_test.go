package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/account-service/internal/events"
)

func TestInMemoryDispatcher(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers events to subscribed handlers", func(t *testing.T) {
		dispatcher := events.NewInMemoryDispatcher()

		var received []events.Event
		dispatcher.Subscribe(events.EventUserRegistered, func(_ context.Context, e events.Event) error {
			received = append(received, e)
			return nil
		})

		event := events.Event{ID: "evt-1", Type: events.EventUserRegistered, UserID: "user-1"}
		assert.NoError(t, dispatcher.Publish(ctx, event))
		assert.Len(t, received, 1)
		assert.Equal(t, "user-1", received[0].UserID)
	})

	t.Run("does not deliver events of other types", func(t *testing.T) {
		dispatcher := events.NewInMemoryDispatcher()

		called := false
		dispatcher.Subscribe(events.EventUserDeleted, func(context.Context, events.Event) error {
			called = true
			return nil
		})

		assert.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventUserRegistered}))
		assert.False(t, called)
	})

	t.Run("a failing handler does not block the rest", func(t *testing.T) {
		dispatcher := events.NewInMemoryDispatcher()

		dispatcher.Subscribe(events.EventUserUpdated, func(context.Context, events.Event) error {
			return errors.New("boom")
		})
		second := false
		dispatcher.Subscribe(events.EventUserUpdated, func(context.Context, events.Event) error {
			second = true
			return nil
		})

		assert.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventUserUpdated}))
		assert.True(t, second)
	})
}
