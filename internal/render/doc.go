// Package render projects a flattened node sequence into the four text
// views of a document: cuneiform, transliteration, normalisation and
// translation.
//
// Every view is plain text plus a list of spans. A span covers the text of
// one lemma including its trailing delimiter and carries the lemma's
// reference, so an offset in the text can be mapped back to a node address.
// Offsets count runes, not bytes, because the views are full of diacritics
// and cuneiform signs.
//
// Each line-start marker opens a new text line labelled "<n>. ". The first
// line has no leading newline.
//
//	v := render.Render(s.Flatten(), render.Transliteration)
//	addr, ok := v.AddressAt(12)
//
// View implements cursor.Locator.
package render
