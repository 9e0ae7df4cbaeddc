package store

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/dshills/tupshar/internal/atf"
	"github.com/dshills/tupshar/internal/cdl"
	"github.com/dshills/tupshar/internal/engine/cursor"
)

// Store owns the mapping from line number to node sequence and the cursor
// that decides how the next edit applies.
//
// Store is not safe for concurrent use; a document session drives it from a
// single goroutine.
type Store struct {
	textID   cdl.TextID
	resolver cdl.Resolver
	lines    map[int][]cdl.Node
	cursor   cursor.Cursor
}

// Option configures a Store.
type Option func(*Store)

// WithResolver sets the glyph resolver used when lemmas are constructed.
func WithResolver(r cdl.Resolver) Option {
	return func(s *Store) {
		s.resolver = r
	}
}

// WithLines seeds the store with existing line sequences. The sequences are
// used as given; call Validate to check them.
func WithLines(lines map[int][]cdl.Node) Option {
	return func(s *Store) {
		s.lines = make(map[int][]cdl.Node, len(lines))
		for n, seq := range lines {
			s.lines[n] = append([]cdl.Node(nil), seq...)
		}
	}
}

// WithCursor sets the initial cursor.
func WithCursor(c cursor.Cursor) Option {
	return func(s *Store) {
		s.cursor = c
	}
}

// New creates a store for the text id, seeded with line 1 holding only its
// line-start marker and the cursor at Append(1, 1).
func New(id cdl.TextID, opts ...Option) *Store {
	s := &Store{
		textID: id,
		cursor: cursor.Start,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.lines) == 0 {
		s.lines = map[int][]cdl.Node{1: {cdl.NewLineStart(1)}}
	}
	return s
}

// FromNodes rebuilds a store from a flattened node sequence. Lemmas are
// grouped by the line of their reference and ordered by stored position;
// each group gets a fresh line-start marker and contiguous positions. Other
// discontinuities are dropped since line markers are synthesized. The
// cursor is placed at the end of the document.
func FromNodes(id cdl.TextID, nodes []cdl.Node, opts ...Option) (*Store, error) {
	groups := make(map[int][]cdl.Lemma)
	for _, n := range nodes {
		l, ok := n.(cdl.Lemma)
		if !ok {
			continue
		}
		if l.Ref.Line < 1 {
			return nil, fmt.Errorf("%w: lemma %q", ErrInvalidAddress, l.Ref)
		}
		groups[l.Ref.Line] = append(groups[l.Ref.Line], l)
	}

	lines := make(map[int][]cdl.Node, len(groups))
	for line, lemmas := range groups {
		sort.SliceStable(lemmas, func(i, j int) bool {
			return lemmas[i].Ref.Position < lemmas[j].Ref.Position
		})
		seq := make([]cdl.Node, 0, len(lemmas)+1)
		seq = append(seq, cdl.NewLineStart(line))
		for _, l := range lemmas {
			seq = append(seq, l)
		}
		lines[line] = renumber(line, seq)
	}

	s := New(id, append([]Option{WithLines(lines)}, opts...)...)
	s.SetCursorToEnd()
	return s, nil
}

// TextID returns the document identifier stamped on new lemmas.
func (s *Store) TextID() cdl.TextID {
	return s.textID
}

// Cursor returns the current cursor.
func (s *Store) Cursor() cursor.Cursor {
	return s.cursor
}

// SetCursor replaces the cursor. Selection events use this after resolving
// an address; the address is not validated here.
func (s *Store) SetCursor(c cursor.Cursor) {
	s.cursor = c
}

// SetResolver replaces the glyph resolver for lemmas created from now on.
func (s *Store) SetResolver(r cdl.Resolver) {
	s.resolver = r
}

// lineOrNew returns the sequence of line n, or a new sequence holding only
// its marker.
func (s *Store) lineOrNew(n int) []cdl.Node {
	if seq, ok := s.lines[n]; ok {
		return seq
	}
	return []cdl.Node{cdl.NewLineStart(n)}
}

func (s *Store) newLemma(line, position int, normalisation, transliteration, translation string) cdl.Lemma {
	return cdl.MakeLemma(
		atf.Normalize(normalisation),
		atf.Normalize(transliteration),
		translation,
		s.resolver,
		cdl.NewReference(s.textID, line, position),
	)
}

// AppendLemma appends a lemma at the cursor. The cursor must be
// Append(line, position); it advances to Append(line, position+1).
//
// The lemma always lands at the tail of the line. A stale cursor position
// that disagrees with the line length is corrected rather than trusted.
func (s *Store) AppendLemma(normalisation, transliteration, translation string) error {
	c := s.cursor
	if !c.IsAppend() {
		return modeMismatch("append", cursor.ModeAppend, c)
	}

	seq := s.lineOrNew(c.Line)
	position := len(seq)
	lemma := s.newLemma(c.Line, position, normalisation, transliteration, translation)

	s.lines[c.Line] = appendAt(seq, lemma)
	s.cursor = cursor.Append(c.Line, position+1)
	return nil
}

// InsertLemma inserts a lemma at the cursor, which must be
// Insertion(line, position). Inside the line, later nodes shift right and
// the cursor moves to the end of the document. At or beyond the end of the
// line the call behaves exactly like AppendLemma at the line's end.
func (s *Store) InsertLemma(normalisation, transliteration, translation string) error {
	c := s.cursor
	if !c.IsInsertion() {
		return modeMismatch("insert", cursor.ModeInsertion, c)
	}

	// Index 0 belongs to the line marker.
	position := max(c.Position, 1)

	seq := s.lineOrNew(c.Line)
	if position < len(seq) {
		lemma := s.newLemma(c.Line, position, normalisation, transliteration, translation)
		s.lines[c.Line] = insertAt(seq, position, lemma)
		s.SetCursorToEnd()
		return nil
	}

	s.cursor = cursor.Append(c.Line, len(seq))
	return s.AppendLemma(normalisation, transliteration, translation)
}

// ModifyLemma overwrites the node under a Selection cursor in place.
func (s *Store) ModifyLemma(normalisation, transliteration, translation string) error {
	c := s.cursor
	if !c.IsSelection() {
		return modeMismatch("modify", cursor.ModeSelection, c)
	}

	seq, err := s.lemmaSlot(c.Line, c.Position)
	if err != nil {
		return err
	}

	lemma := s.newLemma(c.Line, c.Position, normalisation, transliteration, translation)
	s.lines[c.Line] = replaceAt(seq, c.Position, lemma)
	return nil
}

// UpdateNode replaces old with updated. When both carry the same address the
// node is overwritten in place. Otherwise the call is a move: old is deleted
// from its line and updated is inserted at its own address, shifting later
// nodes right. A target position at or past the end of the target line
// appends instead, and the node's position is rewritten to match.
func (s *Store) UpdateNode(old, updated cdl.Node) error {
	from, ok := old.(cdl.Lemma)
	if !ok {
		return fmt.Errorf("%w: old node", ErrNotLemma)
	}
	to, ok := updated.(cdl.Lemma)
	if !ok {
		return fmt.Errorf("%w: new node", ErrNotLemma)
	}
	if to.Ref.TextID == "" {
		to.Ref.TextID = s.textID
	}

	seq, err := s.lemmaSlot(from.Line(), from.Position())
	if err != nil {
		return err
	}

	if from.Ref.SameAddress(to.Ref) {
		s.lines[from.Line()] = replaceAt(seq, from.Position(), to)
		return nil
	}

	if to.Line() < 1 {
		return invalidAddress(to.Line(), to.Position())
	}

	s.lines[from.Line()] = removeAt(seq, from.Position())

	line := to.Line()
	target := s.lineOrNew(line)
	position := max(to.Position(), 1)
	if position < len(target) {
		s.lines[line] = insertAt(target, position, to.WithAddress(line, position))
	} else {
		s.lines[line] = appendAt(target, to.WithAddress(line, len(target)))
	}
	return nil
}

// DeleteNode removes the node at (line, position). Later nodes on the line
// move one position left. The cursor is not changed.
func (s *Store) DeleteNode(line, position int) error {
	seq, err := s.lemmaSlot(line, position)
	if err != nil {
		return err
	}
	s.lines[line] = removeAt(seq, position)
	return nil
}

// DeleteSelection removes the node under a Selection cursor and moves the
// cursor to the end of the document.
func (s *Store) DeleteSelection() error {
	c := s.cursor
	if !c.IsSelection() {
		return modeMismatch("delete", cursor.ModeSelection, c)
	}
	if err := s.DeleteNode(c.Line, c.Position); err != nil {
		return err
	}
	s.SetCursorToEnd()
	return nil
}

// lemmaSlot returns the sequence of line when position addresses a node
// after the line marker.
func (s *Store) lemmaSlot(line, position int) ([]cdl.Node, error) {
	seq, ok := s.lines[line]
	if !ok {
		return nil, lineNotFound(line)
	}
	if position < 1 || position >= len(seq) {
		return nil, invalidAddress(line, position)
	}
	return seq, nil
}

// SetCursorToEnd moves the cursor to Append(lastLine, len(lastLine)).
func (s *Store) SetCursorToEnd() {
	last := s.LastLine()
	s.cursor = cursor.Append(last, len(s.lineOrNew(last)))
}

// IncrementLine starts the next line: the cursor moves to
// Append(line+1, len(line+1)). The line is created with its marker when it
// does not exist yet, so the new cursor position is 1.
func (s *Store) IncrementLine() {
	next := s.cursor.Line + 1
	seq := s.lineOrNew(next)
	s.lines[next] = seq
	s.cursor = cursor.Append(next, len(seq))
}

// LastLine returns the greatest line number, or 1 for an empty store.
func (s *Store) LastLine() int {
	last := 0
	for n := range s.lines {
		if n > last {
			last = n
		}
	}
	if last == 0 {
		return 1
	}
	return last
}

// Lines returns the line numbers in ascending order.
func (s *Store) Lines() []int {
	keys := make([]int, 0, len(s.lines))
	for n := range s.lines {
		keys = append(keys, n)
	}
	sort.Ints(keys)
	return keys
}

// Line returns a copy of the sequence of line n.
func (s *Store) Line(n int) ([]cdl.Node, bool) {
	seq, ok := s.lines[n]
	if !ok {
		return nil, false
	}
	return append([]cdl.Node(nil), seq...), true
}

// LineLen returns the length of line n including its marker.
func (s *Store) LineLen(n int) (int, bool) {
	seq, ok := s.lines[n]
	return len(seq), ok
}

// NodeAt returns the node at (line, position).
func (s *Store) NodeAt(line, position int) (cdl.Node, bool) {
	seq, ok := s.lines[line]
	if !ok || position < 0 || position >= len(seq) {
		return nil, false
	}
	return seq[position], true
}

// Flatten concatenates all lines in line-number order.
func (s *Store) Flatten() []cdl.Node {
	var out []cdl.Node
	for _, n := range s.Lines() {
		out = append(out, s.lines[n]...)
	}
	return out
}

// Len returns the number of lemmas in the store.
func (s *Store) Len() int {
	count := 0
	for _, seq := range s.lines {
		for _, n := range seq {
			if _, ok := n.(cdl.Lemma); ok {
				count++
			}
		}
	}
	return count
}

// Validate checks the structural invariants: every line starts with a
// line-start marker labelled with its number, and every lemma's reference
// matches its line and index.
func (s *Store) Validate() error {
	for _, n := range s.Lines() {
		seq := s.lines[n]
		if n < 1 {
			return fmt.Errorf("line %d: line numbers start at 1", n)
		}
		if len(seq) == 0 {
			return fmt.Errorf("line %d: empty sequence", n)
		}
		d, ok := seq[0].(cdl.Discontinuity)
		if !ok || d.Kind != cdl.LineStart {
			return fmt.Errorf("line %d: first node is not a line start", n)
		}
		if d.Label != strconv.Itoa(n) {
			return fmt.Errorf("line %d: marker labelled %q", n, d.Label)
		}
		for i, node := range seq[1:] {
			l, ok := node.(cdl.Lemma)
			if !ok {
				continue
			}
			if l.Ref.Line != n || l.Ref.Position != i+1 {
				return fmt.Errorf("line %d index %d: lemma %q has address %d.%d", n, i+1, l.Transliteration, l.Ref.Line, l.Ref.Position)
			}
		}
	}
	return nil
}

// Snapshot captures the structure and cursor. Restoring it later is exact
// because stored sequences are never modified in place.
type Snapshot struct {
	lines  map[int][]cdl.Node
	cursor cursor.Cursor
}

// Cursor returns the cursor captured by the snapshot.
func (snap Snapshot) Cursor() cursor.Cursor {
	return snap.cursor
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	lines := make(map[int][]cdl.Node, len(s.lines))
	for n, seq := range s.lines {
		lines[n] = seq
	}
	return Snapshot{lines: lines, cursor: s.cursor}
}

// Restore returns the store to a previously captured state.
func (s *Store) Restore(snap Snapshot) {
	lines := make(map[int][]cdl.Node, len(snap.lines))
	for n, seq := range snap.lines {
		lines[n] = seq
	}
	s.lines = lines
	s.cursor = snap.cursor
}
