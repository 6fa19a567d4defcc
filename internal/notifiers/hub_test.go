package notifiers_test

import (
	"testing"

	"probe-metrics/internal/notifiers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_TriggerFansOutToEverySubscriber(t *testing.T) {
	t.Parallel()

	hub := notifiers.NewHub()
	first, unsubscribeFirst := hub.Subscribe(4)
	defer unsubscribeFirst()
	second, unsubscribeSecond := hub.Subscribe(4)
	defer unsubscribeSecond()

	hub.Trigger("probe:measure", map[string]any{"probe": "p"})

	want := notifiers.Notification{Event: "probe:measure", Payload: map[string]any{"probe": "p"}}
	assert.Equal(t, want, <-first)
	assert.Equal(t, want, <-second)
}

func TestHub_TriggerWithoutSubscribersIsNoop(t *testing.T) {
	t.Parallel()

	hub := notifiers.NewHub()
	assert.NotPanics(t, func() { hub.Trigger("probe:measure", nil) })
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	t.Parallel()

	hub := notifiers.NewHub()
	ch, unsubscribe := hub.Subscribe(1)
	defer unsubscribe()

	hub.Trigger("e", 1)
	hub.Trigger("e", 2)

	got := <-ch
	assert.Equal(t, 1, got.Payload)
	select {
	case extra := <-ch:
		t.Fatalf("unexpected notification %v", extra)
	default:
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	t.Parallel()

	hub := notifiers.NewHub()
	ch, unsubscribe := hub.Subscribe(1)
	unsubscribe()
	unsubscribe()

	_, ok := <-ch
	require.False(t, ok)

	assert.NotPanics(t, func() { hub.Trigger("e", nil) })
}
