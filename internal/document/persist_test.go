package document

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tupshar/internal/cdl"
	"github.com/dshills/tupshar/internal/engine/cursor"
)

func TestEncodeShape(t *testing.T) {
	d := newTestDocument(t)
	d.SetTranslation("The king.")

	data, err := d.Encode()
	require.NoError(t, err)

	var env map[string]any
	require.NoError(t, json.Unmarshal(data, &env))

	text := env["text"].(map[string]any)
	assert.Equal(t, "modern", text["type"])
	assert.Equal(t, "Unassigned", text["project"])
	assert.Equal(t, string(d.TextID()), text["textid"])
	assert.Equal(t, "The king.", env["translation"])

	nodes := text["cdl"].([]any)
	require.Len(t, nodes, 5)
	first := nodes[0].(map[string]any)
	assert.Equal(t, "d", first["node"])
	assert.Equal(t, "line-start", first["type"])
	assert.Equal(t, "1", first["label"])

	lemma := nodes[1].(map[string]any)
	assert.Equal(t, "l", lemma["node"])
	assert.Equal(t, string(d.TextID())+".1.1", lemma["ref"])

	meta := env["metadata"].(map[string]any)
	assert.Equal(t, "New Document", meta["displayName"])
	assert.NotContains(t, meta, "ancientAuthor")
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	d := newTestDocument(t)
	d.SetTranslation("The king is strong.")
	meta := d.Metadata()
	meta.AncientAuthor = "Scribe"
	d.SetMetadata(meta)

	data, err := d.Encode()
	require.NoError(t, err)

	loaded, err := Decode(data, testSigns)
	require.NoError(t, err)

	assert.Equal(t, d.TextID(), loaded.TextID())
	assert.Equal(t, d.Metadata(), loaded.Metadata())
	assert.Equal(t, d.Translation(), loaded.Translation())
	assert.Equal(t, d.Cuneiform(), loaded.Cuneiform())
	assert.Equal(t, d.Transliteration(), loaded.Transliteration())
	assert.Equal(t, d.Normalisation(), loaded.Normalisation())
	assert.Equal(t, d.LiteralTranslation(), loaded.LiteralTranslation())
	assert.Equal(t, cursor.Append(2, 2), loaded.Cursor())
	assert.False(t, loaded.IsModified())
	require.NoError(t, loaded.Validate())
}

const shuffled = `{
  "text": {
    "type": "modern",
    "project": "saao",
    "textid": "P1",
    "cdl": [
      {"node": "d", "type": "document-start"},
      {"node": "l", "frag": "e2", "ref": "P1.2.2", "f": {"form": "e2", "norm": "bētu", "sense": "house"}},
      {"node": "l", "frag": "GUD", "ref": "P1.2.1", "f": {"form": "GUD", "norm": "alpu", "sense": "ox"}},
      {"node": "d", "type": "line-start", "label": "7"},
      {"node": "l", "frag": "LUGAL", "ref": "P1.1.5", "f": {"form": "LUGAL", "norm": "šarru", "sense": "king"}}
    ]
  },
  "translation": "",
  "metadata": {"id": "P1", "displayName": "P1", "title": "Tablet", "project": "saao"}
}`

func TestDecodeRegroupsLines(t *testing.T) {
	d, err := Decode([]byte(shuffled), nil)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, d.Lines())
	assert.Equal(t, "1. šarru \n2. alpu bētu ", d.Normalisation())
	require.NoError(t, d.Validate())

	n, ok := d.NodeAt(1, 1)
	require.True(t, ok)
	assert.Equal(t, cdl.NewReference("P1", 1, 1), n.(cdl.Lemma).Ref)

	// Graphemes are rebuilt from the transliteration when the file has none.
	assert.Len(t, n.(cdl.Lemma).Graphemes, 1)
}

func TestDecodeBadData(t *testing.T) {
	tests := map[string]string{
		"not json":         `{{`,
		"missing metadata": `{"text": {"cdl": []}}`,
		"empty id":         `{"text": {"cdl": []}, "metadata": {"id": ""}}`,
		"unknown tag":      `{"text": {"cdl": [{"node": "x"}]}, "metadata": {"id": "P"}}`,
		"bad reference":    `{"text": {"cdl": [{"node": "l", "ref": "P.one.2"}]}, "metadata": {"id": "P"}}`,
		"short reference":  `{"text": {"cdl": [{"node": "l", "ref": "P.2"}]}, "metadata": {"id": "P"}}`,
		"invalid line":     `{"text": {"cdl": [{"node": "l", "ref": "P.0.1"}]}, "metadata": {"id": "P"}}`,
		"node not object":  `{"text": {"cdl": [3]}, "metadata": {"id": "P"}}`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(input), nil)
			assert.ErrorIs(t, err, ErrBadData)
		})
	}
}

func TestSaveAndOpen(t *testing.T) {
	for _, name := range []string{"letter.tup", "letter.tup.xz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			d := newTestDocument(t)
			require.True(t, d.IsModified())

			assert.ErrorIs(t, d.Save(), ErrNoPath)
			require.NoError(t, d.SaveAs(path))
			assert.False(t, d.IsModified())
			assert.Equal(t, path, d.Path())

			loaded, err := Open(path, testSigns)
			require.NoError(t, err)
			assert.Equal(t, d.Normalisation(), loaded.Normalisation())
			assert.Equal(t, path, loaded.Path())
			assert.False(t, loaded.IsModified())

			require.NoError(t, loaded.AppendLemma("ša", "ša", "of"))
			assert.True(t, loaded.IsModified())
			require.NoError(t, loaded.Save())
			assert.False(t, loaded.IsModified())
		})
	}
}

func TestCompressedFileIsXZ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.tup.xz")
	require.NoError(t, newTestDocument(t).SaveAs(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(raw), 6)
	assert.Equal(t, []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}, raw[:6])
	assert.True(t, IsCompressed("DOC.XZ"))
	assert.False(t, IsCompressed("doc.tup"))
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.tup"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)

	garbage := filepath.Join(dir, "garbage.tup")
	require.NoError(t, os.WriteFile(garbage, []byte("hello"), 0o644))
	_, err = Open(garbage, nil)
	assert.ErrorIs(t, err, ErrBadData)

	fake := filepath.Join(dir, "fake.tup.xz")
	require.NoError(t, os.WriteFile(fake, []byte("{}"), 0o644))
	_, err = Open(fake, nil)
	assert.ErrorIs(t, err, ErrBadData)
}
