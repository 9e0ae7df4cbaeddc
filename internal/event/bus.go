package event

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Bus delivers events to subscribers synchronously.
type Bus struct {
	mu     sync.RWMutex
	subs   []*Subscription
	nextID uint64

	panicHandler PanicHandler
	errorHandler ErrorHandler

	eventsPublished  atomic.Uint64
	handlersExecuted atomic.Uint64
	handlerErrors    atomic.Uint64
	handlerPanics    atomic.Uint64
}

// NewBus creates an event bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers fn for every topic matching pattern.
func (b *Bus) Subscribe(pattern Topic, fn HandlerFunc, opts ...SubscriptionOption) (*Subscription, error) {
	if err := pattern.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %q", err, pattern)
	}
	if fn == nil {
		return nil, ErrNilHandler
	}

	sub := &Subscription{
		pattern:  pattern,
		handler:  fn,
		priority: PriorityNormal,
		bus:      b,
	}
	for _, opt := range opts {
		opt(sub)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub.id = b.nextID
	b.subs = append(b.subs, sub)
	sort.SliceStable(b.subs, func(i, j int) bool {
		return b.subs[i].priority < b.subs[j].priority
	})
	return sub, nil
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// match returns the active subscriptions for a topic. The slice is a copy so
// handlers may subscribe or cancel during delivery.
func (b *Bus) match(t Topic) []*Subscription {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []*Subscription
	for _, s := range b.subs {
		if s.IsActive() && s.pattern.Matches(t) {
			out = append(out, s)
		}
	}
	return out
}

// Publish delivers ev to every matching subscriber and returns the first
// handler error, if any. All handlers run regardless of earlier failures.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	if err := ev.Topic.Validate(); err != nil {
		return err
	}
	b.eventsPublished.Add(1)

	var first error
	for _, sub := range b.match(ev.Topic) {
		err := b.deliver(ctx, sub, ev)
		b.handlersExecuted.Add(1)
		if err != nil {
			herr := &HandlerError{SubscriptionID: sub.id, Topic: ev.Topic, Err: err}
			b.handlerErrors.Add(1)
			if b.errorHandler != nil {
				b.errorHandler(herr)
			}
			if first == nil {
				first = herr
			}
			continue
		}
		if sub.once {
			sub.Cancel()
		}
	}
	return first
}

func (b *Bus) deliver(ctx context.Context, sub *Subscription, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			if b.panicHandler != nil {
				b.panicHandler(ev, r)
			}
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return sub.handler(ctx, ev)
}

// Stats returns the bus counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()

	return Stats{
		EventsPublished:  b.eventsPublished.Load(),
		HandlersExecuted: b.handlersExecuted.Load(),
		HandlerErrors:    b.handlerErrors.Load(),
		HandlerPanics:    b.handlerPanics.Load(),
		Subscriptions:    n,
	}
}
