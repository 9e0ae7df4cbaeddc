package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/tupshar/internal/cdl"
	"github.com/dshills/tupshar/internal/engine/cursor"
	"github.com/dshills/tupshar/internal/engine/history"
	"github.com/dshills/tupshar/internal/engine/store"
	"github.com/dshills/tupshar/internal/event"
	"github.com/dshills/tupshar/internal/render"
)

// Logger is the logging interface used by documents.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}

// Option configures a Document.
type Option func(*Document)

// WithBus sets the event bus the document publishes to. A private bus is
// used when none is given.
func WithBus(b *event.Bus) Option {
	return func(d *Document) {
		if b != nil {
			d.bus = b
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(d *Document) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithStrict makes mode mismatches return store.ErrModeMismatch instead of
// being ignored.
func WithStrict(strict bool) Option {
	return func(d *Document) {
		d.strict = strict
	}
}

// WithHistoryLimit bounds the number of undo steps.
func WithHistoryLimit(n int) Option {
	return func(d *Document) {
		d.historyLimit = n
	}
}

// WithProject sets the project of a new document.
func WithProject(project string) Option {
	return func(d *Document) {
		if project != "" {
			d.meta.Project = project
		}
	}
}

// Document is an editing session.
type Document struct {
	store       *store.Store
	meta        Metadata
	translation string
	resolver    cdl.Resolver

	bus          *event.Bus
	logger       Logger
	strict       bool
	history      *history.History[state]
	historyLimit int

	path  string
	saved [32]byte
}

func newDocument(id cdl.TextID, resolver cdl.Resolver, opts []Option) *Document {
	d := &Document{
		meta:     NewMetadata(id),
		resolver: resolver,
		logger:   nopLogger{},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.bus == nil {
		d.bus = event.NewBus()
	}
	d.history = history.New[state](d.historyLimit)
	return d
}

// New creates an empty document with a fresh text id. Lemmas get their
// glyphs from resolver, which may be nil.
func New(resolver cdl.Resolver, opts ...Option) *Document {
	id := cdl.NewTextID()
	d := newDocument(id, resolver, opts)
	d.store = store.New(id, store.WithResolver(resolver))
	d.markSaved()
	return d
}

// TextID returns the document identifier.
func (d *Document) TextID() cdl.TextID {
	return d.meta.ID
}

// Bus returns the event bus of the document.
func (d *Document) Bus() *event.Bus {
	return d.bus
}

// Strict reports whether mode mismatches are returned as errors.
func (d *Document) Strict() bool {
	return d.strict
}

// SetStrict changes how mode mismatches are reported.
func (d *Document) SetStrict(strict bool) {
	d.strict = strict
}

// SetResolver replaces the glyph resolver for lemmas created from now on.
func (d *Document) SetResolver(r cdl.Resolver) {
	d.resolver = r
	d.store.SetResolver(r)
}

func (d *Document) publish(t event.Topic, op string) {
	ev := event.New(t, d.meta.ID, d.store.Cursor(), op)
	if err := d.bus.Publish(context.Background(), ev); err != nil {
		d.logger.Warn("%s handler failed: %v", t, err)
	}
}

// state is one undoable state of a document.
type state struct {
	nodes       store.Snapshot
	meta        Metadata
	translation string
}

func (d *Document) capture() state {
	return state{nodes: d.store.Snapshot(), meta: d.meta, translation: d.translation}
}

// mutate runs fn against the store, records the change and notifies
// observers. A mode mismatch leaves the store untouched and is only
// returned in strict mode.
func (d *Document) mutate(op string, fn func() error) error {
	before := d.capture()
	cur := d.store.Cursor()

	if err := fn(); err != nil {
		if errors.Is(err, store.ErrModeMismatch) && !d.strict {
			d.logger.Debug("ignored %s: %v", op, err)
			return nil
		}
		return err
	}

	d.history.Record(op, before, d.capture())
	d.publish(event.TopicDocumentChanged, op)
	if d.store.Cursor() != cur {
		d.publish(event.TopicNodeSelected, op)
	}
	return nil
}

// atCursor wraps an operation on the node under the cursor. A cursor naming
// a node that no longer exists counts as a mode mismatch.
func atCursor(fn func() error) func() error {
	return func() error {
		err := fn()
		if errors.Is(err, store.ErrLineNotFound) || errors.Is(err, store.ErrInvalidAddress) {
			return fmt.Errorf("%w: %w", store.ErrModeMismatch, err)
		}
		return err
	}
}

// AppendLemma appends a lemma at an Append cursor.
func (d *Document) AppendLemma(normalisation, transliteration, translation string) error {
	return d.mutate("append", func() error {
		return d.store.AppendLemma(normalisation, transliteration, translation)
	})
}

// InsertLemma inserts a lemma at an Insertion cursor.
func (d *Document) InsertLemma(normalisation, transliteration, translation string) error {
	return d.mutate("insert", func() error {
		return d.store.InsertLemma(normalisation, transliteration, translation)
	})
}

// ModifyLemma overwrites the lemma under a Selection cursor.
func (d *Document) ModifyLemma(normalisation, transliteration, translation string) error {
	return d.mutate("modify", atCursor(func() error {
		return d.store.ModifyLemma(normalisation, transliteration, translation)
	}))
}

// Enter dispatches a lemma entry by cursor mode: append, insert or modify.
func (d *Document) Enter(normalisation, transliteration, translation string) error {
	switch d.store.Cursor().Mode {
	case cursor.ModeInsertion:
		return d.InsertLemma(normalisation, transliteration, translation)
	case cursor.ModeSelection:
		return d.ModifyLemma(normalisation, transliteration, translation)
	default:
		return d.AppendLemma(normalisation, transliteration, translation)
	}
}

// UpdateNode replaces or moves a lemma.
func (d *Document) UpdateNode(old, updated cdl.Node) error {
	return d.mutate("update", func() error {
		return d.store.UpdateNode(old, updated)
	})
}

// DeleteNode removes the lemma at (line, position).
func (d *Document) DeleteNode(line, position int) error {
	return d.mutate("delete", func() error {
		return d.store.DeleteNode(line, position)
	})
}

// DeleteSelection removes the lemma under a Selection cursor.
func (d *Document) DeleteSelection() error {
	return d.mutate("delete", atCursor(d.store.DeleteSelection))
}

// IncrementLine starts the next line.
func (d *Document) IncrementLine() {
	_ = d.mutate("newline", func() error {
		d.store.IncrementLine()
		return nil
	})
}

// Cursor returns the current cursor.
func (d *Document) Cursor() cursor.Cursor {
	return d.store.Cursor()
}

// SetCursor moves the cursor.
func (d *Document) SetCursor(c cursor.Cursor) {
	d.store.SetCursor(c)
	d.publish(event.TopicNodeSelected, "cursor")
}

// SetCursorToEnd moves the cursor to Append at the end of the document.
func (d *Document) SetCursorToEnd() {
	d.store.SetCursorToEnd()
	d.publish(event.TopicNodeSelected, "cursor")
}

// Select resolves a caret or range in the view of kind to a cursor. When the
// selection does not name a valid node the cursor returns to the end of the
// document. The resulting cursor is returned.
func (d *Document) Select(kind render.Kind, sel cursor.Caret) cursor.Cursor {
	c, ok := cursor.Resolve(sel, d.View(kind), d.store)
	if !ok {
		d.SetCursorToEnd()
	} else {
		d.SetCursor(c)
	}
	return d.store.Cursor()
}

// Undo reverts the last edit. It fails with ErrBatchOpen inside Batch.
func (d *Document) Undo() error {
	if d.history.IsGrouping() {
		return fmt.Errorf("undo: %w", ErrBatchOpen)
	}
	st, err := d.history.Undo()
	if err != nil {
		return err
	}
	d.restore(st, "undo")
	return nil
}

// Redo reapplies the last undone edit. It fails with ErrBatchOpen inside
// Batch.
func (d *Document) Redo() error {
	if d.history.IsGrouping() {
		return fmt.Errorf("redo: %w", ErrBatchOpen)
	}
	st, err := d.history.Redo()
	if err != nil {
		return err
	}
	d.restore(st, "redo")
	return nil
}

func (d *Document) restore(st state, op string) {
	d.store.Restore(st.nodes)
	d.meta = st.meta
	d.translation = st.translation
	d.publish(event.TopicDocumentChanged, op)
	d.publish(event.TopicNodeSelected, op)
}

// CanUndo reports whether there is an edit to undo.
func (d *Document) CanUndo() bool {
	return d.history.CanUndo()
}

// CanRedo reports whether there is an undone edit to reapply.
func (d *Document) CanRedo() bool {
	return d.history.CanRedo()
}

// NextUndo names the edit Undo would revert.
func (d *Document) NextUndo() (string, bool) {
	info, ok := d.history.PeekUndo()
	return info.Description, ok
}

// NextRedo names the edit Redo would reapply.
func (d *Document) NextRedo() (string, bool) {
	info, ok := d.history.PeekRedo()
	return info.Description, ok
}

// Batch runs fn as one undo step. When fn fails, every edit it made,
// including metadata and translation changes, is reverted and the error
// returned.
func (d *Document) Batch(name string, fn func() error) error {
	return d.history.Transaction(name, fn, func(st state) {
		d.restore(st, "rollback")
	})
}

// Lines returns the line numbers in ascending order.
func (d *Document) Lines() []int {
	return d.store.Lines()
}

// Line returns a copy of line n.
func (d *Document) Line(n int) ([]cdl.Node, bool) {
	return d.store.Line(n)
}

// LineLen returns the length of line n including its marker.
func (d *Document) LineLen(n int) (int, bool) {
	return d.store.LineLen(n)
}

// NodeAt returns the node at (line, position).
func (d *Document) NodeAt(line, position int) (cdl.Node, bool) {
	return d.store.NodeAt(line, position)
}

// Nodes returns the flattened node sequence.
func (d *Document) Nodes() []cdl.Node {
	return d.store.Flatten()
}

// Len returns the number of lemmas.
func (d *Document) Len() int {
	return d.store.Len()
}

// Validate checks the structural invariants of the node store.
func (d *Document) Validate() error {
	return d.store.Validate()
}

// Metadata returns the catalogue entry.
func (d *Document) Metadata() Metadata {
	return d.meta
}

// SetMetadata replaces the catalogue entry. The text id cannot change.
func (d *Document) SetMetadata(m Metadata) {
	m.ID = d.meta.ID
	_ = d.mutate("metadata", func() error {
		d.meta = m
		return nil
	})
}

// Translation returns the free translation.
func (d *Document) Translation() string {
	return d.translation
}

// SetTranslation replaces the free translation.
func (d *Document) SetTranslation(s string) {
	_ = d.mutate("translation", func() error {
		d.translation = s
		return nil
	})
}

// View renders the document in the view of kind.
func (d *Document) View(kind render.Kind) render.View {
	return render.Render(d.store.Flatten(), kind)
}

// Cuneiform returns the cuneiform text.
func (d *Document) Cuneiform() string {
	return d.View(render.Cuneiform).Text
}

// Transliteration returns the transliterated text.
func (d *Document) Transliteration() string {
	return d.View(render.Transliteration).Text
}

// Normalisation returns the normalised text.
func (d *Document) Normalisation() string {
	return d.View(render.Normalisation).Text
}

// LiteralTranslation returns the lemma-by-lemma translation.
func (d *Document) LiteralTranslation() string {
	return d.View(render.Translation).Text
}

// Path returns the file the document was opened from or last saved to.
func (d *Document) Path() string {
	return d.path
}

// SetPath sets the save destination.
func (d *Document) SetPath(path string) {
	d.path = path
}
