package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dshills/tupshar/internal/cdl"
	"github.com/dshills/tupshar/internal/engine/store"
)

// TextType is the edition type written to every document.
const TextType = "modern"

// Node tags of the cdl array.
const (
	tagLemma         = "l"
	tagDiscontinuity = "d"
)

type envelope struct {
	Text        textEdition `json:"text"`
	Translation string      `json:"translation"`
	Metadata    *Metadata   `json:"metadata"`
}

type textEdition struct {
	Type    string            `json:"type"`
	Project string            `json:"project"`
	TextID  cdl.TextID        `json:"textid"`
	CDL     []json.RawMessage `json:"cdl"`
}

type lemmaJSON struct {
	Node string   `json:"node"`
	Frag string   `json:"frag"`
	Ref  string   `json:"ref"`
	F    formJSON `json:"f"`
}

type formJSON struct {
	Form  string         `json:"form"`
	Norm  string         `json:"norm"`
	Sense string         `json:"sense"`
	GDL   []graphemeJSON `json:"gdl,omitempty"`
}

type graphemeJSON struct {
	Value string  `json:"v,omitempty"`
	Sign  string  `json:"s,omitempty"`
	Glyph *string `json:"gdl_utf8,omitempty"`
	Role  string  `json:"role,omitempty"`
	Delim string  `json:"delim"`
}

type discontinuityJSON struct {
	Node  string `json:"node"`
	Type  string `json:"type"`
	Label string `json:"label,omitempty"`
}

type nodeTag struct {
	Node string `json:"node"`
}

// Encode serializes the document to its JSON envelope.
func (d *Document) Encode() ([]byte, error) {
	nodes := d.store.Flatten()
	cdlNodes := make([]json.RawMessage, 0, len(nodes))
	for _, n := range nodes {
		raw, err := encodeNode(n)
		if err != nil {
			return nil, err
		}
		cdlNodes = append(cdlNodes, raw)
	}

	meta := d.meta
	env := envelope{
		Text: textEdition{
			Type:    TextType,
			Project: meta.Project,
			TextID:  meta.ID,
			CDL:     cdlNodes,
		},
		Translation: d.translation,
		Metadata:    &meta,
	}
	return json.MarshalIndent(env, "", "  ")
}

func encodeNode(n cdl.Node) (json.RawMessage, error) {
	switch node := n.(type) {
	case cdl.Lemma:
		gdl := make([]graphemeJSON, 0, len(node.Graphemes))
		for _, g := range node.Graphemes {
			gj := graphemeJSON{Glyph: g.Glyph, Delim: g.Separator}
			if g.Sign.Kind == cdl.SignName {
				gj.Sign = g.Sign.Text
			} else {
				gj.Value = g.Sign.Text
			}
			if g.Logogram {
				gj.Role = "logo"
			}
			gdl = append(gdl, gj)
		}
		return json.Marshal(lemmaJSON{
			Node: tagLemma,
			Frag: node.Transliteration,
			Ref:  node.Ref.String(),
			F: formJSON{
				Form:  node.Transliteration,
				Norm:  node.Normalisation,
				Sense: node.Translation,
				GDL:   gdl,
			},
		})
	case cdl.Discontinuity:
		return json.Marshal(discontinuityJSON{
			Node:  tagDiscontinuity,
			Type:  node.Kind.String(),
			Label: node.Label,
		})
	default:
		return nil, fmt.Errorf("%w: unknown node %T", ErrBadData, n)
	}
}

// Decode parses an envelope into a new document. Lemmas are regrouped by the
// line of their reference and renumbered; discontinuities in the file are
// not kept. Lemmas stored without graphemes are given graphemes from
// resolver. Any malformed input yields ErrBadData.
func Decode(data []byte, resolver cdl.Resolver, opts ...Option) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var env envelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadData, err)
	}
	if env.Metadata == nil || env.Metadata.ID == "" {
		return nil, fmt.Errorf("%w: missing metadata id", ErrBadData)
	}

	nodes := make([]cdl.Node, 0, len(env.Text.CDL))
	for i, raw := range env.Text.CDL {
		n, err := decodeNode(raw, resolver)
		if err != nil {
			return nil, fmt.Errorf("%w: cdl[%d]: %v", ErrBadData, i, err)
		}
		nodes = append(nodes, n)
	}

	id := env.Metadata.ID
	s, err := store.FromNodes(id, nodes, store.WithResolver(resolver))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadData, err)
	}

	d := newDocument(id, resolver, opts)
	d.meta = *env.Metadata
	d.translation = env.Translation
	d.store = s
	d.markSaved()
	return d, nil
}

func decodeNode(raw json.RawMessage, resolver cdl.Resolver) (cdl.Node, error) {
	var tag nodeTag
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, err
	}

	switch tag.Node {
	case tagLemma:
		var lj lemmaJSON
		if err := json.Unmarshal(raw, &lj); err != nil {
			return nil, err
		}
		ref, err := cdl.ParseReference(lj.Ref)
		if err != nil {
			return nil, err
		}
		translit := lj.F.Form
		if translit == "" {
			translit = lj.Frag
		}
		if len(lj.F.GDL) == 0 {
			return cdl.MakeLemma(lj.F.Norm, translit, lj.F.Sense, resolver, ref), nil
		}
		return cdl.Lemma{
			Transliteration: translit,
			Normalisation:   lj.F.Norm,
			Translation:     lj.F.Sense,
			Graphemes:       decodeGraphemes(lj.F.GDL),
			Ref:             ref,
		}, nil
	case tagDiscontinuity:
		var dj discontinuityJSON
		if err := json.Unmarshal(raw, &dj); err != nil {
			return nil, err
		}
		return cdl.Discontinuity{Kind: cdl.ParseDiscontinuityKind(dj.Type), Label: dj.Label}, nil
	default:
		return nil, fmt.Errorf("unknown node tag %q", tag.Node)
	}
}

func decodeGraphemes(gdl []graphemeJSON) []cdl.Grapheme {
	out := make([]cdl.Grapheme, 0, len(gdl))
	for _, gj := range gdl {
		g := cdl.Grapheme{
			Glyph:     gj.Glyph,
			Logogram:  gj.Role == "logo",
			Separator: gj.Delim,
		}
		if gj.Sign != "" {
			g.Sign = cdl.SignReading{Kind: cdl.SignName, Text: gj.Sign}
		} else {
			g.Sign = cdl.SignReading{Kind: cdl.SignValue, Text: gj.Value}
		}
		out = append(out, g)
	}
	return out
}
