package event

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/tupshar/internal/engine/cursor"
)

func TestTopicMatches(t *testing.T) {
	tests := []struct {
		pattern, topic Topic
		want           bool
	}{
		{"document.changed", "document.changed", true},
		{"document.changed", "document.saved", false},
		{"document.*", "document.changed", true},
		{"document.*", "document.changed.lines", false},
		{"document.**", "document.changed.lines", true},
		{"document.**", "document", false},
		{"*.selected", "node.selected", true},
		{"node", "node.selected", false},
	}
	for _, tt := range tests {
		if got := tt.pattern.Matches(tt.topic); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", tt.pattern, tt.topic, got, tt.want)
		}
	}
}

func TestTopicValidate(t *testing.T) {
	for _, bad := range []Topic{"", ".", "a..b", "a."} {
		if err := bad.Validate(); !errors.Is(err, ErrInvalidTopic) {
			t.Errorf("expected ErrInvalidTopic for %q, got %v", bad, err)
		}
	}
}

func TestPublishDeliversInOrder(t *testing.T) {
	b := NewBus()
	var order []string

	record := func(name string) HandlerFunc {
		return func(context.Context, Event) error {
			order = append(order, name)
			return nil
		}
	}
	mustSubscribe(t, b, TopicDocumentChanged, record("first"))
	mustSubscribe(t, b, "document.*", record("second"))
	mustSubscribe(t, b, TopicDocumentChanged, record("critical"), WithPriority(PriorityCritical))
	mustSubscribe(t, b, TopicNodeSelected, record("other"))

	ev := New(TopicDocumentChanged, "U1", cursor.Append(1, 1), nil)
	if err := b.Publish(context.Background(), ev); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	want := []string{"critical", "first", "second"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("expected %v, got %v", want, order)
			break
		}
	}
}

func TestEventCarriesCursor(t *testing.T) {
	b := NewBus()
	var got Event
	mustSubscribe(t, b, TopicNodeSelected, func(_ context.Context, ev Event) error {
		got = ev
		return nil
	})

	_ = b.Publish(context.Background(), New(TopicNodeSelected, "U9", cursor.Selection(2, 3), "select"))
	if got.Cursor != cursor.Selection(2, 3) || got.TextID != "U9" || got.Payload != "select" {
		t.Errorf("unexpected event %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestCancel(t *testing.T) {
	b := NewBus()
	calls := 0
	sub := mustSubscribe(t, b, TopicDocumentChanged, func(context.Context, Event) error {
		calls++
		return nil
	})

	ev := Event{Topic: TopicDocumentChanged}
	_ = b.Publish(context.Background(), ev)
	sub.Cancel()
	sub.Cancel()
	_ = b.Publish(context.Background(), ev)

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if sub.IsActive() {
		t.Error("cancelled subscription should be inactive")
	}
	if b.Stats().Subscriptions != 0 {
		t.Errorf("expected no subscriptions, got %d", b.Stats().Subscriptions)
	}
}

func TestOnce(t *testing.T) {
	b := NewBus()
	calls := 0
	mustSubscribe(t, b, TopicDocumentChanged, func(context.Context, Event) error {
		calls++
		return nil
	}, Once())

	for i := 0; i < 3; i++ {
		_ = b.Publish(context.Background(), Event{Topic: TopicDocumentChanged})
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestPanicIsRecovered(t *testing.T) {
	var recovered any
	b := NewBus(WithPanicHandler(func(_ Event, r any) { recovered = r }))

	ran := false
	mustSubscribe(t, b, TopicDocumentChanged, func(context.Context, Event) error {
		panic("boom")
	})
	mustSubscribe(t, b, TopicDocumentChanged, func(context.Context, Event) error {
		ran = true
		return nil
	})

	err := b.Publish(context.Background(), Event{Topic: TopicDocumentChanged})
	if !errors.Is(err, ErrHandlerPanic) {
		t.Errorf("expected ErrHandlerPanic, got %v", err)
	}
	if recovered != "boom" {
		t.Errorf("panic handler got %v", recovered)
	}
	if !ran {
		t.Error("later handlers should still run")
	}
	if s := b.Stats(); s.HandlerPanics != 1 || s.HandlersExecuted != 2 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestHandlerError(t *testing.T) {
	var reported *HandlerError
	b := NewBus(WithErrorHandler(func(err *HandlerError) { reported = err }))

	fail := errors.New("fail")
	mustSubscribe(t, b, TopicNodeSelected, func(context.Context, Event) error { return fail })

	err := b.Publish(context.Background(), Event{Topic: TopicNodeSelected})
	if !errors.Is(err, fail) {
		t.Errorf("expected wrapped error, got %v", err)
	}
	var herr *HandlerError
	if !errors.As(err, &herr) || herr.Topic != TopicNodeSelected {
		t.Errorf("expected HandlerError, got %T", err)
	}
	if reported == nil {
		t.Error("error handler not called")
	}
}

func TestSubscribeErrors(t *testing.T) {
	b := NewBus()
	if _, err := b.Subscribe("", func(context.Context, Event) error { return nil }); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("expected ErrInvalidTopic, got %v", err)
	}
	if _, err := b.Subscribe(TopicNodeSelected, nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("expected ErrNilHandler, got %v", err)
	}
	if err := b.Publish(context.Background(), Event{}); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("expected ErrInvalidTopic, got %v", err)
	}
}

func TestSubscribeDuringDelivery(t *testing.T) {
	b := NewBus()
	inner := 0
	mustSubscribe(t, b, TopicDocumentChanged, func(context.Context, Event) error {
		mustSubscribe(t, b, TopicDocumentChanged, func(context.Context, Event) error {
			inner++
			return nil
		})
		return nil
	}, Once())

	_ = b.Publish(context.Background(), Event{Topic: TopicDocumentChanged})
	if inner != 0 {
		t.Error("handler added during delivery should wait for the next event")
	}
	_ = b.Publish(context.Background(), Event{Topic: TopicDocumentChanged})
	if inner != 1 {
		t.Errorf("expected 1 inner call, got %d", inner)
	}
}

func mustSubscribe(t *testing.T, b *Bus, p Topic, fn HandlerFunc, opts ...SubscriptionOption) *Subscription {
	t.Helper()
	sub, err := b.Subscribe(p, fn, opts...)
	if err != nil {
		t.Fatalf("Subscribe(%q) failed: %v", p, err)
	}
	return sub
}
