package event

// SubscriptionState represents the state of a subscription.
type SubscriptionState int32

const (
	// SubscriptionStateActive means the subscription is receiving events.
	SubscriptionStateActive SubscriptionState = iota

	// SubscriptionStatePaused means the subscription is temporarily not receiving events.
	SubscriptionStatePaused

	// SubscriptionStateCancelled means the subscription has been permanently cancelled.
	SubscriptionStateCancelled
)

// String returns a human-readable state name.
func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionStateActive:
		return "active"
	case SubscriptionStatePaused:
		return "paused"
	case SubscriptionStateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// FilterFunc decides whether an event is delivered to a subscription.
type FilterFunc[E any] func(E) bool

// subscriptionConfig contains configuration for a subscription.
type subscriptionConfig[E any] struct {
	filter FilterFunc[E]
	once   bool
}

// SubscriptionOption configures a subscription.
type SubscriptionOption[E any] func(*subscriptionConfig[E])

// WithFilter delivers only the events for which f returns true.
func WithFilter[E any](f FilterFunc[E]) SubscriptionOption[E] {
	return func(c *subscriptionConfig[E]) {
		c.filter = f
	}
}

// WithOnce cancels the subscription after the first delivered event.
func WithOnce[E any]() SubscriptionOption[E] {
	return func(c *subscriptionConfig[E]) {
		c.once = true
	}
}

// Subscription is a handle on a registered handler.
type Subscription struct {
	id     uint64
	state  SubscriptionState
	remove func(id uint64)
}

// ID returns the subscription identifier, unique within its emitter.
func (s *Subscription) ID() uint64 {
	return s.id
}

// State returns the current subscription state.
func (s *Subscription) State() SubscriptionState {
	return s.state
}

// IsActive returns true if the subscription can receive events.
func (s *Subscription) IsActive() bool {
	return s.state == SubscriptionStateActive
}

// Pause temporarily stops event delivery to this subscription.
func (s *Subscription) Pause() {
	if s.state == SubscriptionStateActive {
		s.state = SubscriptionStatePaused
	}
}

// Resume restarts event delivery after a pause.
func (s *Subscription) Resume() {
	if s.state == SubscriptionStatePaused {
		s.state = SubscriptionStateActive
	}
}

// Cancel permanently removes the handler. Calling Cancel more than once,
// or on a nil subscription, is a no-op.
func (s *Subscription) Cancel() {
	if s == nil || s.state == SubscriptionStateCancelled {
		return
	}
	s.state = SubscriptionStateCancelled
	if s.remove != nil {
		s.remove(s.id)
		s.remove = nil
	}
}

type entry[E any] struct {
	sub     *Subscription
	handler func(E)
	cfg     subscriptionConfig[E]
}

// Emitter delivers events of type E to its handlers synchronously, in
// registration order. The zero value is ready to use.
type Emitter[E any] struct {
	entries []entry[E]
	nextID  uint64
}

// Subscribe registers handler and returns its subscription.
func (e *Emitter[E]) Subscribe(handler func(E), opts ...SubscriptionOption[E]) *Subscription {
	var cfg subscriptionConfig[E]
	for _, opt := range opts {
		opt(&cfg)
	}

	sub := &Subscription{id: e.nextID}
	sub.remove = e.remove
	e.nextID++

	e.entries = append(e.entries, entry[E]{sub: sub, handler: handler, cfg: cfg})
	return sub
}

// Emit calls every active handler with ev before returning.
func (e *Emitter[E]) Emit(ev E) {
	if len(e.entries) == 0 {
		return
	}
	snapshot := make([]entry[E], len(e.entries))
	copy(snapshot, e.entries)

	for _, en := range snapshot {
		if !en.sub.IsActive() {
			continue
		}
		if en.cfg.filter != nil && !en.cfg.filter(ev) {
			continue
		}
		if en.cfg.once {
			en.sub.Cancel()
		}
		en.handler(ev)
	}
}

// Len returns the number of registered (non-cancelled) subscriptions.
func (e *Emitter[E]) Len() int {
	return len(e.entries)
}

// Clear cancels every subscription.
func (e *Emitter[E]) Clear() {
	entries := e.entries
	e.entries = nil
	for _, en := range entries {
		en.sub.remove = nil
		en.sub.Cancel()
	}
}

func (e *Emitter[E]) remove(id uint64) {
	for i, en := range e.entries {
		if en.sub.id == id {
			e.entries = append(e.entries[:i:i], e.entries[i+1:]...)
			return
		}
	}
}
