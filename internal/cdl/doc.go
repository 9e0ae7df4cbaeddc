// Package cdl defines the text nodes of a transliterated document.
//
// A document is a sequence of Node values. Node is a closed union with two
// variants:
//
//   - Lemma: one lexical unit, carrying its transliteration, normalised form,
//     translation, per-syllable graphemes and its Reference (text ID, line,
//     position).
//   - Discontinuity: a structural marker such as the start of a line. Line
//     markers carry the line number as their label.
//
// Nodes are values. Relocating a lemma produces a new Lemma through
// WithPosition or WithAddress rather than mutating the stored one, so slices
// of nodes can be copied and shared without aliasing.
//
// Each node renders itself into the four derived texts of an edition:
// cuneiform, transliteration, normalisation and translation.
package cdl
