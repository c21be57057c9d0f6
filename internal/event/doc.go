// Package event provides a synchronous, ordered, single-threaded emitter.
//
// An Emitter keeps its handlers in registration order and calls them
// inline from Emit, on the caller's goroutine. There is no queuing, no
// deduplication and no cross-goroutine delivery:
//
//	var changes event.Emitter[string]
//	sub := changes.Subscribe(func(s string) { fmt.Println("changed:", s) })
//	changes.Emit("hello") // prints before Emit returns
//	sub.Cancel()
//
// Subscriptions can be paused, resumed, and cancelled. Cancelling (or
// subscribing) from inside a handler is allowed: Emit iterates over the
// handler list as it was when the emission started, and skips handlers
// that have been cancelled since.
//
// Emitters are not safe for concurrent use. They are meant to live on the
// one goroutine that owns the object emitting the events.
package event
