package lua

import (
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/tupshar/internal/cdl"
	"github.com/dshills/tupshar/internal/document"
	"github.com/dshills/tupshar/internal/engine/cursor"
	"github.com/dshills/tupshar/internal/render"
)

// ModuleName is the global the document API is installed under.
const ModuleName = "tup"

// Module exposes a document to Lua.
type Module struct {
	doc *document.Document
}

// NewModule creates a module over doc.
func NewModule(doc *document.Document) *Module {
	return &Module{doc: doc}
}

// Register installs the module into s.
func (m *Module) Register(s *State) error {
	if m.doc == nil {
		return ErrNoDocument
	}
	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"append":      m.lemmaOp("append", m.doc.AppendLemma),
		"insert":      m.lemmaOp("insert", m.doc.InsertLemma),
		"modify":      m.lemmaOp("modify", m.doc.ModifyLemma),
		"enter":       m.lemmaOp("enter", m.doc.Enter),
		"delete":      m.delete,
		"delete_at":   m.deleteAt,
		"select":      m.moveTo(cursor.Selection),
		"insert_at":   m.moveTo(cursor.Insertion),
		"append_at":   m.moveTo(cursor.Append),
		"newline":     m.newline,
		"to_end":      m.toEnd,
		"cursor":      m.cursor,
		"lines":       m.lines,
		"line":        m.line,
		"text":        m.text,
		"translation": m.translation,
		"undo":        m.undo,
		"redo":        m.redo,
	})
	return nil
}

// lemmaOp wraps an entry operation taking (norm, translit, transl).
func (m *Module) lemmaOp(name string, op func(n, tl, tr string) error) lua.LGFunction {
	return func(L *lua.LState) int {
		norm := L.CheckString(1)
		translit := L.CheckString(2)
		transl := L.OptString(3, "")

		if err := op(norm, translit, transl); err != nil {
			L.RaiseError("%s: %v", name, err)
		}
		return 0
	}
}

// delete() removes the lemma under a selection cursor.
func (m *Module) delete(L *lua.LState) int {
	if err := m.doc.DeleteSelection(); err != nil {
		L.RaiseError("delete: %v", err)
	}
	return 0
}

// delete_at(line, pos)
func (m *Module) deleteAt(L *lua.LState) int {
	line := L.CheckInt(1)
	pos := L.CheckInt(2)

	if err := m.doc.DeleteNode(line, pos); err != nil {
		L.RaiseError("delete_at: %v", err)
	}
	return 0
}

func (m *Module) moveTo(mk func(line, pos int) cursor.Cursor) lua.LGFunction {
	return func(L *lua.LState) int {
		line := L.CheckInt(1)
		pos := L.CheckInt(2)
		if line < 1 {
			L.ArgError(1, "line must be positive")
			return 0
		}
		if pos < 1 {
			L.ArgError(2, "position must be positive")
			return 0
		}
		m.doc.SetCursor(mk(line, pos))
		return 0
	}
}

func (m *Module) newline(L *lua.LState) int {
	m.doc.IncrementLine()
	return 0
}

func (m *Module) toEnd(L *lua.LState) int {
	m.doc.SetCursorToEnd()
	return 0
}

// cursor() -> mode, line, pos
func (m *Module) cursor(L *lua.LState) int {
	c := m.doc.Cursor()
	L.Push(lua.LString(c.Mode.String()))
	L.Push(lua.LNumber(c.Line))
	L.Push(lua.LNumber(c.Position))
	return 3
}

// lines() -> {numbers}
func (m *Module) lines(L *lua.LState) int {
	tbl := L.NewTable()
	for _, n := range m.doc.Lines() {
		tbl.Append(lua.LNumber(n))
	}
	L.Push(tbl)
	return 1
}

// line(n) -> {{pos, norm, translit, transl}} or nil
func (m *Module) line(L *lua.LState) int {
	n := L.CheckInt(1)

	nodes, ok := m.doc.Line(n)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}

	tbl := L.NewTable()
	for _, node := range nodes {
		lem, ok := node.(cdl.Lemma)
		if !ok {
			continue
		}
		entry := L.NewTable()
		entry.RawSetString("pos", lua.LNumber(lem.Position()))
		entry.RawSetString("norm", lua.LString(lem.Normalisation))
		entry.RawSetString("translit", lua.LString(lem.Transliteration))
		entry.RawSetString("transl", lua.LString(lem.Translation))
		tbl.Append(entry)
	}
	L.Push(tbl)
	return 1
}

// text([kind]) -> string
func (m *Module) text(L *lua.LState) int {
	kind := render.Transliteration
	if L.GetTop() >= 1 {
		k, err := render.ParseKind(L.CheckString(1))
		if err != nil {
			L.ArgError(1, err.Error())
			return 0
		}
		kind = k
	}
	L.Push(lua.LString(m.doc.View(kind).Text))
	return 1
}

// translation([s]) -> string
func (m *Module) translation(L *lua.LState) int {
	if L.GetTop() >= 1 {
		m.doc.SetTranslation(L.CheckString(1))
	}
	L.Push(lua.LString(m.doc.Translation()))
	return 1
}

// undo() -> bool. Raises an error inside RunFile and RunString, where the
// whole script is a single undo step.
func (m *Module) undo(L *lua.LState) int {
	return m.step(L, "undo", m.doc.Undo)
}

// redo() -> bool. Same restriction as undo.
func (m *Module) redo(L *lua.LState) int {
	return m.step(L, "redo", m.doc.Redo)
}

func (m *Module) step(L *lua.LState, name string, fn func() error) int {
	err := fn()
	if errors.Is(err, document.ErrBatchOpen) {
		L.RaiseError("%s: %v", name, err)
		return 0
	}
	L.Push(lua.LBool(err == nil))
	return 1
}
