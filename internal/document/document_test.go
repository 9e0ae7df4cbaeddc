package document

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tupshar/internal/cdl"
	"github.com/dshills/tupshar/internal/engine/cursor"
	"github.com/dshills/tupshar/internal/engine/history"
	"github.com/dshills/tupshar/internal/engine/store"
	"github.com/dshills/tupshar/internal/event"
	"github.com/dshills/tupshar/internal/render"
)

type signs map[string]string

func (s signs) Resolve(token string) string {
	if g, ok := s[token]; ok {
		return g
	}
	return "[X]"
}

var testSigns = signs{"LUGAL": "𒈗", "šar": "𒊬", "ru": "𒊒"}

func newTestDocument(t *testing.T, opts ...Option) *Document {
	t.Helper()
	d := New(testSigns, opts...)
	require.NoError(t, d.AppendLemma("šarru", "LUGAL", "king"))
	require.NoError(t, d.AppendLemma("dannu", "dan-nu", "strong"))
	d.IncrementLine()
	require.NoError(t, d.AppendLemma("šarru", "šar-ru", "king"))
	return d
}

func TestNewDocument(t *testing.T) {
	d := New(nil)

	meta := d.Metadata()
	assert.Equal(t, "New Document", meta.DisplayName)
	assert.Equal(t, "New Document", meta.Title)
	assert.Equal(t, "Unassigned", meta.Project)
	assert.Equal(t, d.TextID(), meta.ID)
	assert.Len(t, string(d.TextID()), 37)
	assert.Empty(t, d.Translation())
	assert.Equal(t, cursor.Append(1, 1), d.Cursor())
	assert.False(t, d.IsModified())
	assert.Equal(t, "1. ", d.Transliteration())
}

func TestWithProject(t *testing.T) {
	d := New(nil, WithProject("saao"))
	assert.Equal(t, "saao", d.Metadata().Project)
}

func TestAppendScenario(t *testing.T) {
	d := New(nil)
	require.NoError(t, d.AppendLemma("first", "fi-ir-st", "First Lemma"))

	line, ok := d.Line(1)
	require.True(t, ok)
	require.Len(t, line, 2)
	assert.True(t, cdl.IsLineStart(line[0]))

	l := line[1].(cdl.Lemma)
	assert.Equal(t, "fi-ir-st", l.Transliteration)
	assert.Equal(t, "first", l.Normalisation)
	assert.Equal(t, "First Lemma", l.Translation)
	assert.Equal(t, cursor.Append(1, 2), d.Cursor())
	assert.True(t, d.IsModified())
}

func TestViews(t *testing.T) {
	d := newTestDocument(t)

	assert.Equal(t, "1. 𒈗 [X][X] \n2. 𒊬𒊒 ", d.Cuneiform())
	assert.Equal(t, "1. LUGAL dan-nu \n2. šar-ru ", d.Transliteration())
	assert.Equal(t, "1. šarru dannu \n2. šarru ", d.Normalisation())
	assert.Equal(t, "1. king strong \n2. king ", d.LiteralTranslation())
	assert.Equal(t, 3, d.Len())
	require.NoError(t, d.Validate())
}

func TestModeMismatchIsIgnored(t *testing.T) {
	d := newTestDocument(t)
	before := d.Nodes()

	d.SetCursor(cursor.Selection(1, 1))
	assert.NoError(t, d.AppendLemma("x", "x", "x"))
	assert.NoError(t, d.InsertLemma("x", "x", "x"))
	assert.Equal(t, len(before), len(d.Nodes()))
	assert.Equal(t, cursor.Selection(1, 1), d.Cursor())
}

func TestStrictModeMismatch(t *testing.T) {
	d := newTestDocument(t, WithStrict(true))
	assert.True(t, d.Strict())

	err := d.ModifyLemma("x", "x", "x")
	assert.True(t, errors.Is(err, store.ErrModeMismatch), "got %v", err)

	d.SetStrict(false)
	assert.NoError(t, d.ModifyLemma("x", "x", "x"))
}

func TestAddressErrorsAreReturned(t *testing.T) {
	d := newTestDocument(t)
	assert.ErrorIs(t, d.DeleteNode(9, 1), store.ErrLineNotFound)
	assert.ErrorIs(t, d.DeleteNode(1, 0), store.ErrInvalidAddress)
}

func TestStaleSelection(t *testing.T) {
	d := newTestDocument(t)
	before := d.Normalisation()

	d.SetCursor(cursor.Selection(1, 9))
	assert.NoError(t, d.ModifyLemma("x", "x", "x"))
	assert.NoError(t, d.DeleteSelection())
	d.SetCursor(cursor.Selection(7, 1))
	assert.NoError(t, d.ModifyLemma("x", "x", "x"))
	assert.Equal(t, before, d.Normalisation())
	assert.Equal(t, cursor.Selection(7, 1), d.Cursor())

	d.SetStrict(true)
	err := d.ModifyLemma("x", "x", "x")
	assert.ErrorIs(t, err, store.ErrLineNotFound)
	assert.ErrorIs(t, err, store.ErrModeMismatch)
	d.SetCursor(cursor.Selection(1, 9))
	assert.ErrorIs(t, d.DeleteSelection(), store.ErrInvalidAddress)
	assert.Equal(t, before, d.Normalisation())
}

func TestEnterDispatchesByMode(t *testing.T) {
	d := newTestDocument(t)

	d.SetCursor(cursor.Insertion(1, 2))
	require.NoError(t, d.Enter("rabû", "GAL", "great"))
	assert.Equal(t, "1. šarru rabû dannu \n2. šarru ", d.Normalisation())
	assert.Equal(t, cursor.Append(2, 2), d.Cursor())

	d.SetCursor(cursor.Selection(1, 3))
	require.NoError(t, d.Enter("dannu", "dan-nu", "mighty"))
	assert.Equal(t, "1. king great mighty \n2. king ", d.LiteralTranslation())

	d.SetCursorToEnd()
	require.NoError(t, d.Enter("ša", "ša", "of"))
	assert.Equal(t, "1. šarru rabû dannu \n2. šarru ša ", d.Normalisation())
}

func TestEvents(t *testing.T) {
	bus := event.NewBus()
	var changed, selected []event.Event
	_, err := bus.Subscribe(event.TopicDocumentChanged, func(_ context.Context, ev event.Event) error {
		changed = append(changed, ev)
		return nil
	})
	require.NoError(t, err)
	_, err = bus.Subscribe(event.TopicNodeSelected, func(_ context.Context, ev event.Event) error {
		selected = append(selected, ev)
		return nil
	})
	require.NoError(t, err)

	d := New(nil, WithBus(bus))
	require.NoError(t, d.AppendLemma("a", "a", "a"))
	require.Len(t, changed, 1)
	require.Len(t, selected, 1)
	assert.Equal(t, d.TextID(), changed[0].TextID)
	assert.Equal(t, cursor.Append(1, 2), selected[0].Cursor)
	assert.Equal(t, "append", changed[0].Payload)

	// Deleting by address keeps the cursor.
	require.NoError(t, d.DeleteNode(1, 1))
	assert.Len(t, changed, 2)
	assert.Len(t, selected, 1)

	// A swallowed mismatch notifies nobody.
	d.SetCursor(cursor.Selection(1, 1))
	require.NoError(t, d.AppendLemma("a", "a", "a"))
	assert.Len(t, changed, 2)
	assert.Len(t, selected, 2)
}

func TestSelect(t *testing.T) {
	d := newTestDocument(t)

	// "1. šarru dannu \n2. šarru "
	c := d.Select(render.Normalisation, cursor.NewRange(3, 6))
	assert.Equal(t, cursor.Selection(1, 1), c)

	c = d.Select(render.Normalisation, cursor.NewCaret(10))
	assert.Equal(t, cursor.Insertion(1, 3), c)

	c = d.Select(render.Normalisation, cursor.NewCaret(2))
	assert.Equal(t, cursor.Append(2, 2), c)

	c = d.Select(render.Transliteration, cursor.NoCaret)
	assert.Equal(t, cursor.Append(2, 2), c)
}

func TestDeleteSelectionScenario(t *testing.T) {
	d := newTestDocument(t)
	d.SetCursor(cursor.Selection(1, 1))
	require.NoError(t, d.DeleteSelection())

	assert.Equal(t, "1. dannu \n2. šarru ", d.Normalisation())
	assert.Equal(t, cursor.Append(2, 2), d.Cursor())
	n, ok := d.NodeAt(1, 1)
	require.True(t, ok)
	assert.Equal(t, 1, n.(cdl.Lemma).Position())
}

func TestUpdateNodeMove(t *testing.T) {
	d := newTestDocument(t)
	old, ok := d.NodeAt(2, 1)
	require.True(t, ok)

	require.NoError(t, d.UpdateNode(old, old.(cdl.Lemma).WithAddress(1, 1)))
	assert.Equal(t, "1. šarru šarru dannu \n2. ", d.Normalisation())
	require.NoError(t, d.Validate())
}

func TestUndoRedo(t *testing.T) {
	d := newTestDocument(t)
	before := d.Normalisation()

	d.SetCursor(cursor.Selection(1, 2))
	require.NoError(t, d.DeleteSelection())
	require.NotEqual(t, before, d.Normalisation())

	require.NoError(t, d.Undo())
	assert.Equal(t, before, d.Normalisation())
	assert.Equal(t, cursor.Selection(1, 2), d.Cursor())

	require.NoError(t, d.Redo())
	assert.Equal(t, "1. šarru \n2. šarru ", d.Normalisation())

	assert.ErrorIs(t, d.Redo(), history.ErrNothingToRedo)
}

func TestBatchRollsBack(t *testing.T) {
	d := newTestDocument(t)
	before := d.Normalisation()
	boom := errors.New("boom")

	err := d.Batch("script", func() error {
		if err := d.AppendLemma("x", "x", "x"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, d.Normalisation())

	require.NoError(t, d.Batch("script", func() error {
		if err := d.AppendLemma("x", "x", "x"); err != nil {
			return err
		}
		return d.AppendLemma("y", "y", "y")
	}))
	require.NoError(t, d.Undo())
	assert.Equal(t, before, d.Normalisation())
}

func TestMetadataAndTranslation(t *testing.T) {
	d := New(nil)
	id := d.TextID()

	d.SetMetadata(Metadata{ID: "other", DisplayName: "Letter", Title: "Letter to the king", Project: "saao", AncientAuthor: "Nabû-ahhe-eriba"})
	assert.Equal(t, id, d.Metadata().ID)
	assert.Equal(t, "Letter", d.Metadata().DisplayName)

	d.SetTranslation("To the king, my lord")
	assert.Equal(t, "To the king, my lord", d.Translation())
	assert.True(t, d.IsModified())
}

func TestExportText(t *testing.T) {
	d := newTestDocument(t)
	d.SetTranslation("The king is strong. The king.")

	data, err := d.ExportText()
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, d.Cuneiform(), got["cuneiform"])
	assert.Equal(t, d.Transliteration(), got["transliteration"])
	assert.Equal(t, d.Normalisation(), got["normalisation"])
	assert.Equal(t, "The king is strong. The king.", got["translation"])
	assert.Len(t, got, 4)
}

func TestExportHTML(t *testing.T) {
	d := newTestDocument(t)
	meta := d.Metadata()
	meta.Title = "Kings & Queens"
	meta.AncientAuthor = "Scribe"
	d.SetMetadata(meta)

	data, err := d.ExportHTML()
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "<title>Kings &amp; Queens</title>")
	assert.Contains(t, html, `<meta name="author" content="Scribe">`)
	assert.Contains(t, html, `<section class="cuneiform">`)
	assert.Contains(t, html, "<p>1. 𒈗 [X][X] </p>")
	assert.Contains(t, html, "<p>2. šar-ru </p>")
}

func TestBatchRollsBackMetadataAndTranslation(t *testing.T) {
	d := newTestDocument(t)
	meta := d.Metadata()
	boom := errors.New("boom")

	err := d.Batch("script", func() error {
		d.SetTranslation("changed")
		m := d.Metadata()
		m.Title = "Changed"
		d.SetMetadata(m)
		if err := d.AppendLemma("x", "x", "x"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, d.Translation())
	assert.Equal(t, meta, d.Metadata())
	assert.Equal(t, 3, d.Len())
}

func TestMetadataUndo(t *testing.T) {
	d := New(nil)
	d.SetTranslation("The king.")
	m := d.Metadata()
	m.Title = "Letter"
	d.SetMetadata(m)

	name, ok := d.NextUndo()
	require.True(t, ok)
	assert.Equal(t, "metadata", name)

	require.NoError(t, d.Undo())
	assert.Equal(t, "New Document", d.Metadata().Title)
	assert.Equal(t, "The king.", d.Translation())
	assert.True(t, d.CanRedo())

	name, ok = d.NextRedo()
	require.True(t, ok)
	assert.Equal(t, "metadata", name)

	require.NoError(t, d.Undo())
	assert.Empty(t, d.Translation())
	require.NoError(t, d.Redo())
	assert.Equal(t, "The king.", d.Translation())
}

func TestUndoInsideBatch(t *testing.T) {
	d := newTestDocument(t)

	err := d.Batch("script", func() error {
		if err := d.AppendLemma("y", "y", "y"); err != nil {
			return err
		}
		if err := d.Undo(); !errors.Is(err, ErrBatchOpen) {
			t.Errorf("Undo in batch = %v, want ErrBatchOpen", err)
		}
		if err := d.Redo(); !errors.Is(err, ErrBatchOpen) {
			t.Errorf("Redo in batch = %v, want ErrBatchOpen", err)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, d.Len())

	require.NoError(t, d.Undo())
	assert.Equal(t, 3, d.Len())
}
