// Package event is the observer bus of a document session.
//
// Components that render or react to a document subscribe to topics instead
// of holding references to each other. Two topics are published by the
// document layer:
//
//	document.changed  - the node structure was mutated
//	node.selected     - the cursor moved
//
// Patterns may end in ".*" to match one further segment, or ".**" to match
// any number of segments:
//
//	sub := bus.Subscribe(event.TopicDocumentChanged, func(ctx context.Context, ev event.Event) error {
//	    redraw(ev.Cursor)
//	    return nil
//	})
//	defer sub.Cancel()
//
// Delivery is synchronous: Publish returns once every matching handler has
// run in the publisher's goroutine, ordered by priority and then by
// subscription order. A panicking handler is recovered and reported to the
// bus panic handler; the remaining handlers still run.
package event
