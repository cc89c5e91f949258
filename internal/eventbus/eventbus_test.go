package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversSynchronously(t *testing.T) {
	b := New()

	var got []SectionScrolledEvent
	b.Subscribe(EventSectionScrolled, func(e DomainEvent) {
		got = append(got, e.(SectionScrolledEvent))
	})
	b.Subscribe(EventSectionScrolled, func(e DomainEvent) {
		got = append(got, e.(SectionScrolledEvent))
	})

	b.Publish(SectionScrolledEvent{Index: 2, IsScrolled: true, Progress: 0.5})

	require.Len(t, got, 2, "both handlers run before Publish returns")
	assert.Equal(t, 2, got[0].Index)
	assert.InDelta(t, 0.5, got[1].Progress, 1e-9)
}

func TestPublishOnlyReachesMatchingType(t *testing.T) {
	b := New()

	called := false
	b.Subscribe(EventSnapDestroyed, func(DomainEvent) { called = true })
	b.Publish(SectionScrolledEvent{Index: 1})

	assert.False(t, called)
}

func TestUnsubscribe(t *testing.T) {
	b := New()

	first, second := 0, 0
	unsubFirst := b.Subscribe(EventSectionScrolled, func(DomainEvent) { first++ })
	b.Subscribe(EventSectionScrolled, func(DomainEvent) { second++ })

	b.Publish(SectionScrolledEvent{})
	unsubFirst()
	unsubFirst() // second call is a no-op
	b.Publish(SectionScrolledEvent{})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	b := New()

	after := false
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(DomainEvent) { after = true })

	require.NotPanics(t, func() { b.Publish(ErrorEvent{Message: "x"}) })
	assert.True(t, after, "later handlers still run after a panic")
}

func TestHandlerMaySubscribeDuringPublish(t *testing.T) {
	b := New()

	b.Subscribe(EventDeckReloaded, func(DomainEvent) {
		b.Subscribe(EventDeckReloaded, func(DomainEvent) {})
	})

	require.NotPanics(t, func() { b.Publish(DeckReloadedEvent{Path: "deck.toml"}) })
}
