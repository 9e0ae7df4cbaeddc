package document

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerOpenReusesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.tup")
	require.NoError(t, newTestDocument(t).SaveAs(path))

	m := NewManager(testSigns)
	first, err := m.Open(path)
	require.NoError(t, err)
	second, err := m.Open(path)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, m.Count())
	assert.Same(t, first, m.Active())
}

func TestManagerCreateAndClose(t *testing.T) {
	m := NewManager(nil, WithProject("rinap"))

	a, err := m.Create("")
	require.NoError(t, err)
	b, err := m.Create(filepath.Join(t.TempDir(), "b.tup"))
	require.NoError(t, err)

	assert.Equal(t, "rinap", a.Metadata().Project)
	assert.Empty(t, a.Path())
	assert.NotEmpty(t, b.Path())
	assert.Equal(t, []*Document{a, b}, m.All())
	assert.Same(t, b, m.Active())

	got, ok := m.Get("::scratch::1")
	require.True(t, ok)
	assert.Same(t, a, got)

	require.NoError(t, m.Close(b.Path()))
	assert.Same(t, a, m.Active())
	assert.ErrorIs(t, m.Close("nope"), ErrDocumentNotFound)
	assert.ErrorIs(t, m.SetActive("nope"), ErrDocumentNotFound)
}

func TestManagerNavigation(t *testing.T) {
	m := NewManager(nil)
	assert.Nil(t, m.Next())

	a, _ := m.Create("")
	b, _ := m.Create("")
	c, _ := m.Create("")

	assert.Same(t, a, m.Next())
	assert.Same(t, b, m.Next())
	assert.Same(t, a, m.Previous())
	assert.Same(t, c, m.Previous())
}

func TestManagerDirty(t *testing.T) {
	m := NewManager(nil)
	a, _ := m.Create("")
	_, _ = m.Create("")

	assert.Empty(t, m.Dirty())
	require.NoError(t, a.AppendLemma("a", "a", "a"))
	assert.Equal(t, []*Document{a}, m.Dirty())
}
