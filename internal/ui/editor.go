package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/tupshar/internal/document"
	"github.com/dshills/tupshar/internal/engine/cursor"
	"github.com/dshills/tupshar/internal/event"
	"github.com/dshills/tupshar/internal/render"
)

// Saver writes a document. The application supplies one that logs.
type Saver func(*document.Document) error

// Option configures an Editor.
type Option func(*Editor)

// WithView sets the initial view.
func WithView(kind render.Kind) Option {
	return func(e *Editor) {
		e.kind = kind
	}
}

// WithTheme sets the colours.
func WithTheme(t Theme) Option {
	return func(e *Editor) {
		e.theme = t
	}
}

// WithSaver sets how Ctrl-S saves. The default calls Document.Save.
func WithSaver(s Saver) Option {
	return func(e *Editor) {
		if s != nil {
			e.save = s
		}
	}
}

// Editor edits one document on a tcell screen.
type Editor struct {
	screen tcell.Screen
	doc    *document.Document
	kind   render.Kind
	theme  Theme
	save   Saver

	view   render.View
	layout layout
	caret  int
	top    int

	prompt    *prompt
	message   string
	isError   bool
	quitArmed bool
	done      bool

	subs []*event.Subscription
}

// New creates an editor for doc on screen. The screen must be initialised
// by the caller, or by Run.
func New(screen tcell.Screen, doc *document.Document, opts ...Option) *Editor {
	e := &Editor{
		screen: screen,
		doc:    doc,
		kind:   render.Transliteration,
		theme:  DefaultTheme(),
		save:   func(d *document.Document) error { return d.Save() },
	}
	for _, opt := range opts {
		opt(e)
	}

	// Edits made through the document, by this editor or anyone else,
	// refresh the view and move the caret to the new cursor.
	if sub, err := doc.Bus().Subscribe(event.TopicDocumentChanged, e.onChanged); err == nil {
		e.subs = append(e.subs, sub)
	}

	e.refresh()
	e.syncCaret()
	return e
}

func (e *Editor) onChanged(_ context.Context, ev event.Event) error {
	if ev.TextID != e.doc.TextID() {
		return nil
	}
	e.refresh()
	e.syncCaret()
	return nil
}

// Close detaches the editor from the document.
func (e *Editor) Close() {
	for _, s := range e.subs {
		s.Cancel()
	}
	e.subs = nil
}

// Kind returns the current view.
func (e *Editor) Kind() render.Kind {
	return e.kind
}

// Caret returns the caret offset in the current view.
func (e *Editor) Caret() int {
	return e.caret
}

// Message returns the status message.
func (e *Editor) Message() string {
	return e.message
}

// Done reports whether the user asked to quit.
func (e *Editor) Done() bool {
	return e.done
}

// Run initialises the screen and processes events until the user quits or
// ctx is cancelled. The screen is finalised on return.
func (e *Editor) Run(ctx context.Context) error {
	if err := e.screen.Init(); err != nil {
		return err
	}
	defer e.screen.Fini()
	defer e.Close()

	e.screen.EnableMouse()
	e.screen.EnablePaste()

	quit := make(chan struct{})
	defer close(quit)
	go func() {
		select {
		case <-ctx.Done():
			_ = e.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-quit:
		}
	}()

	e.refresh()
	e.syncCaret()
	e.Draw()
	for !e.done {
		ev := e.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return ctx.Err()
		}
		e.HandleEvent(ev)
		e.Draw()
	}
	return nil
}

func (e *Editor) width() int {
	w, _ := e.screen.Size()
	return w
}

// refresh re-renders the current view.
func (e *Editor) refresh() {
	e.view = e.doc.View(e.kind)
	e.layout = newLayout(e.view.Text, e.width())
	if e.caret > e.view.Len() {
		e.caret = e.view.Len()
	}
}

// syncCaret places the caret where the document cursor points.
func (e *Editor) syncCaret() {
	e.caret = caretFor(e.view, e.doc.Cursor(), e.doc.Lines())
}

// caretFor maps a cursor to a caret offset in view. A selection places the
// caret at the start of its lemma, an insertion before its lemma and an
// append after the last lemma of the line.
func caretFor(view render.View, c cursor.Cursor, lines []int) int {
	switch c.Mode {
	case cursor.ModeSelection, cursor.ModeInsertion:
		if s, ok := view.SpanForAddress(c.Line, c.Position); ok {
			return s.Start
		}
		if s, ok := view.SpanForAddress(c.Line, c.Position-1); ok {
			return s.End
		}
	case cursor.ModeAppend:
		if s, ok := view.SpanForAddress(c.Line, c.Position-1); ok {
			return s.End
		}
	}
	return lineEnd(view, c.Line, lines)
}

// lineEnd returns the offset after the last character of line n, or the end
// of the view when the line is not shown.
func lineEnd(view render.View, n int, lines []int) int {
	offset := 0
	for i, text := range view.Lines() {
		offset += utf8.RuneCountInString(text)
		if i < len(lines) && lines[i] == n {
			return offset
		}
		offset++
	}
	return view.Len()
}

// selectCaret resolves a caret in the current view through the document.
func (e *Editor) selectCaret(sel cursor.Caret) {
	e.doc.Select(e.kind, sel)
	e.caret = sel.Head
}

// HandleEvent processes one event.
func (e *Editor) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
		e.refresh()
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 && e.prompt == nil {
			x, y := ev.Position()
			e.clearMessage()
			e.selectCaret(cursor.NewCaret(e.layout.offsetAt(x, y+e.top)))
		}
	case *tcell.EventKey:
		if e.prompt != nil {
			e.handlePromptKey(ev)
			return
		}
		e.handleKey(ev)
	}
}

func (e *Editor) handleKey(ev *tcell.EventKey) {
	if ev.Key() != tcell.KeyCtrlQ {
		e.quitArmed = false
	}
	e.clearMessage()

	switch ev.Key() {
	case tcell.KeyTab:
		e.kind = e.kind.Next()
		e.refresh()
		e.syncCaret()
	case tcell.KeyLeft:
		e.selectCaret(cursor.NewCaret(e.layout.prev(e.caret)))
	case tcell.KeyRight:
		e.selectCaret(cursor.NewCaret(e.layout.next(e.caret)))
	case tcell.KeyHome:
		e.selectCaret(cursor.NewCaret(0))
	case tcell.KeyEnd:
		e.selectCaret(cursor.NewCaret(e.view.Len()))
	case tcell.KeyUp:
		e.selectLemma(-1)
	case tcell.KeyDown:
		e.selectLemma(1)
	case tcell.KeyEnter:
		e.prompt = newPrompt(e.doc.Cursor().Mode.String())
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		e.report(e.doc.DeleteSelection())
	case tcell.KeyCtrlN:
		e.doc.IncrementLine()
	case tcell.KeyCtrlS:
		if err := e.save(e.doc); err != nil {
			e.report(err)
		} else {
			e.setMessage("saved " + filepath.Base(e.doc.Path()))
		}
	case tcell.KeyCtrlZ:
		if e.doc.CanUndo() {
			name, _ := e.doc.NextUndo()
			e.step("undid "+name, e.doc.Undo)
		}
	case tcell.KeyCtrlY:
		if e.doc.CanRedo() {
			name, _ := e.doc.NextRedo()
			e.step("redid "+name, e.doc.Redo)
		}
	case tcell.KeyCtrlQ:
		if e.doc.IsModified() && !e.quitArmed {
			e.quitArmed = true
			e.setMessage("unsaved changes: press Ctrl-Q again to quit")
			return
		}
		e.done = true
	}
}

// selectLemma selects the lemma dir spans away from the caret.
func (e *Editor) selectLemma(dir int) {
	spans := e.view.Spans
	if len(spans) == 0 {
		return
	}

	var target int
	if dir > 0 {
		target = len(spans) - 1
		selected := e.doc.Cursor().IsSelection()
		for i, s := range spans {
			if s.Start > e.caret || (!selected && s.Start == e.caret) {
				target = i
				break
			}
		}
	} else {
		target = 0
		for i := len(spans) - 1; i >= 0; i-- {
			if spans[i].Start < e.caret {
				target = i
				break
			}
		}
	}

	s := spans[target]
	e.doc.Select(e.kind, cursor.NewRange(s.Start, s.End))
	e.caret = s.Start
}

func (e *Editor) handlePromptKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		e.prompt = nil
	case tcell.KeyEnter:
		text := e.prompt.text()
		e.prompt = nil
		entry, err := parseEntry(text)
		if err != nil {
			e.report(err)
			return
		}
		e.report(e.doc.Enter(entry.normalisation, entry.transliteration, entry.translation))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.prompt.backspace()
	case tcell.KeyRune:
		e.prompt.insert(ev.Rune())
	}
}

func (e *Editor) step(msg string, fn func() error) {
	if err := fn(); err != nil {
		e.report(err)
		return
	}
	e.setMessage(msg)
}

func (e *Editor) report(err error) {
	if err != nil {
		e.message = err.Error()
		e.isError = true
	}
}

func (e *Editor) setMessage(msg string) {
	e.message = msg
	e.isError = false
}

func (e *Editor) clearMessage() {
	e.message = ""
	e.isError = false
}

// Draw paints the screen.
func (e *Editor) Draw() {
	e.screen.Clear()
	w, h := e.screen.Size()
	textRows := h - 1
	if e.prompt != nil {
		textRows--
	}
	if textRows < 1 {
		textRows = 1
	}

	cx, cy := e.layout.locate(e.caret)
	if cy < e.top {
		e.top = cy
	}
	if cy >= e.top+textRows {
		e.top = cy - textRows + 1
	}

	selStart, selEnd := -1, -1
	if c := e.doc.Cursor(); c.IsSelection() {
		if s, ok := e.view.SpanForAddress(c.Line, c.Position); ok {
			selStart, selEnd = s.Start, s.End
		}
	}

	for y := 0; y < textRows && e.top+y < len(e.layout.rows); y++ {
		r := e.layout.rows[e.top+y]
		label := e.isLabelRow(r)
		for _, c := range r.cells {
			style := e.theme.Text
			switch {
			case c.offset >= selStart && c.offset < selEnd:
				style = e.theme.Selection
			case label:
				style = e.theme.Label
			}
			if c.text == " " {
				label = false
			}
			putCluster(e.screen, c.x, y, c.text, style)
		}
	}

	if e.prompt != nil {
		e.drawPrompt(w, h-2)
	} else {
		e.screen.ShowCursor(cx, cy-e.top)
	}
	e.drawStatus(w, h-1)
	e.screen.Show()
}

// isLabelRow reports whether r begins a text line rather than continuing a
// wrapped one.
func (e *Editor) isLabelRow(r row) bool {
	if r.start == 0 {
		return true
	}
	for _, prev := range e.layout.rows {
		if prev.end == r.start-1 {
			return true
		}
	}
	return false
}

func (e *Editor) drawPrompt(w, y int) {
	label := e.prompt.label + "> "
	x := putString(e.screen, 0, y, w, label, e.theme.Prompt)
	x = putString(e.screen, x, y, w, e.prompt.text(), e.theme.Text)
	e.screen.ShowCursor(x, y)
}

func (e *Editor) drawStatus(w, y int) {
	for x := 0; x < w; x++ {
		e.screen.SetContent(x, y, ' ', nil, e.theme.Status)
	}

	c := e.doc.Cursor()
	name := filepath.Base(e.doc.Path())
	if e.doc.Path() == "" {
		name = "[scratch]"
	}
	if e.doc.IsModified() {
		name += " [+]"
	}
	left := fmt.Sprintf(" %s | %s %d.%d | %s ", e.kind, c.Mode, c.Line, c.Position, name)
	x := putString(e.screen, 0, y, w, left, e.theme.Status)

	if e.message != "" {
		style := e.theme.Status
		if e.isError {
			style = style.Foreground(tcell.ColorRed).Bold(true)
		}
		msg := e.message + " "
		start := w - uniseg.StringWidth(msg)
		if start < x {
			start = x
		}
		putString(e.screen, start, y, w, msg, style)
	}
}

// putString draws s from x, clipped at w, and returns the next column.
func putString(s tcell.Screen, x, y, w int, str string, style tcell.Style) int {
	state := -1
	for str != "" && x < w {
		var cluster string
		var width int
		cluster, str, width, state = uniseg.FirstGraphemeClusterInString(str, state)
		putCluster(s, x, y, cluster, style)
		x += width
	}
	return x
}

func putCluster(s tcell.Screen, x, y int, cluster string, style tcell.Style) {
	runes := []rune(cluster)
	if len(runes) == 0 {
		return
	}
	s.SetContent(x, y, runes[0], runes[1:], style)
}
