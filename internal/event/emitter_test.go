package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitterDeliversInRegistrationOrder(t *testing.T) {
	var e Emitter[int]
	var got []string

	e.Subscribe(func(v int) { got = append(got, "a") })
	e.Subscribe(func(v int) { got = append(got, "b") })
	e.Subscribe(func(v int) { got = append(got, "c") })

	e.Emit(1)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestEmitterIsSynchronous(t *testing.T) {
	var e Emitter[string]
	delivered := false
	e.Subscribe(func(string) { delivered = true })

	e.Emit("x")
	assert.True(t, delivered, "handler must run before Emit returns")
}

func TestEmitterZeroHandlers(t *testing.T) {
	var e Emitter[int]
	assert.NotPanics(t, func() { e.Emit(1) })
	assert.Equal(t, 0, e.Len())
}

func TestSubscriptionCancel(t *testing.T) {
	var e Emitter[int]
	count := 0
	sub := e.Subscribe(func(int) { count++ })
	require.Equal(t, 1, e.Len())

	e.Emit(1)
	sub.Cancel()
	sub.Cancel()
	e.Emit(2)

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, SubscriptionStateCancelled, sub.State())

	var nilSub *Subscription
	assert.NotPanics(t, func() { nilSub.Cancel() })
}

func TestSubscriptionPauseResume(t *testing.T) {
	var e Emitter[int]
	count := 0
	sub := e.Subscribe(func(int) { count++ })

	sub.Pause()
	assert.Equal(t, SubscriptionStatePaused, sub.State())
	e.Emit(1)
	assert.Equal(t, 0, count)

	sub.Resume()
	assert.True(t, sub.IsActive())
	e.Emit(2)
	assert.Equal(t, 1, count)

	sub.Cancel()
	sub.Resume()
	assert.Equal(t, SubscriptionStateCancelled, sub.State(), "resume cannot revive a cancelled subscription")
}

func TestCancelDuringEmit(t *testing.T) {
	var e Emitter[int]
	var got []string

	var second *Subscription
	e.Subscribe(func(int) {
		got = append(got, "first")
		second.Cancel()
	})
	second = e.Subscribe(func(int) { got = append(got, "second") })
	e.Subscribe(func(int) { got = append(got, "third") })

	e.Emit(1)
	assert.Equal(t, []string{"first", "third"}, got)
	assert.Equal(t, 2, e.Len())
}

func TestSubscribeDuringEmitWaitsForNextEvent(t *testing.T) {
	var e Emitter[int]
	late := 0
	e.Subscribe(func(int) {
		if late == 0 {
			e.Subscribe(func(int) { late++ })
		}
	})

	e.Emit(1)
	assert.Equal(t, 0, late)
	e.Emit(2)
	assert.Equal(t, 1, late)
}

func TestWithFilter(t *testing.T) {
	var e Emitter[int]
	var got []int
	e.Subscribe(func(v int) { got = append(got, v) }, WithFilter[int](func(v int) bool { return v%2 == 0 }))

	for i := range 5 {
		e.Emit(i)
	}
	assert.Equal(t, []int{0, 2, 4}, got)
}

func TestWithOnce(t *testing.T) {
	var e Emitter[int]
	count := 0
	sub := e.Subscribe(func(int) { count++ }, WithOnce[int]())

	e.Emit(1)
	e.Emit(2)
	assert.Equal(t, 1, count)
	assert.Equal(t, SubscriptionStateCancelled, sub.State())
}

func TestEmitterClear(t *testing.T) {
	var e Emitter[int]
	a := e.Subscribe(func(int) {})
	b := e.Subscribe(func(int) {})

	e.Clear()
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, SubscriptionStateCancelled, a.State())
	assert.Equal(t, SubscriptionStateCancelled, b.State())
}

func TestSubscriptionIDsAreUnique(t *testing.T) {
	var e Emitter[int]
	a := e.Subscribe(func(int) {})
	b := e.Subscribe(func(int) {})
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSubscriptionStateString(t *testing.T) {
	assert.Equal(t, "active", SubscriptionStateActive.String())
	assert.Equal(t, "paused", SubscriptionStatePaused.String())
	assert.Equal(t, "cancelled", SubscriptionStateCancelled.String())
	assert.Equal(t, "unknown", SubscriptionState(9).String())
}
