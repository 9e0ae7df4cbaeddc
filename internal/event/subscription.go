package event

import "sync/atomic"

// Subscription is a registered handler.
type Subscription struct {
	id       uint64
	pattern  Topic
	handler  HandlerFunc
	priority Priority
	once     bool

	cancelled atomic.Bool
	bus       *Bus
}

// ID returns the subscription identifier, unique within its bus.
func (s *Subscription) ID() uint64 {
	return s.id
}

// Topic returns the subscribed pattern.
func (s *Subscription) Topic() Topic {
	return s.pattern
}

// IsActive reports whether the subscription still receives events.
func (s *Subscription) IsActive() bool {
	return !s.cancelled.Load()
}

// Cancel removes the subscription from its bus. Safe to call more than once.
func (s *Subscription) Cancel() {
	if s.cancelled.Swap(true) {
		return
	}
	s.bus.remove(s.id)
}
