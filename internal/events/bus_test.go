package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := NewEventBus[any]()
	first := bus.Subscribe()
	second := bus.Subscribe()

	bus.Publish(PriceChanged{ProductID: "prod_1", FinalPrice: 80})

	for _, sub := range []Subscriber[any]{first, second} {
		event := <-sub
		changed, ok := event.(PriceChanged)
		require.True(t, ok)
		assert.Equal(t, "prod_1", changed.ProductID)
		assert.Equal(t, 80.0, changed.FinalPrice)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := NewEventBus[any]()
	sub := bus.Subscribe()

	bus.Unsubscribe(sub)
	_, open := <-sub
	assert.False(t, open)

	// Publishing after unsubscribe must not panic
	bus.Publish(ProductDeleted{ProductID: "prod_1"})
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	bus := NewEventBus[any]()
	sub := bus.Subscribe()

	// Flood well past the buffer capacity; Publish must never block
	for i := 0; i < 500; i++ {
		bus.Publish(ProductAdded{ProductID: "prod_1"})
	}

	assert.Equal(t, cap(sub), len(sub))
}
