// Package glyph resolves transliterated syllables to cuneiform glyphs.
//
// A Resolver is a pure lookup: given a syllable token it returns the glyph
// string to display, or a visible fallback marker when the token is unknown.
// Resolution never fails, so editing can always continue.
//
// Tokens are normalised before lookup with EncodeInput, which folds the
// accent conventions of Assyriological transliteration into subscript index
// digits:
//
//	šá  -> ša₂    (acute accent marks the second homophone)
//	šà  -> ša₃    (grave accent marks the third)
//	ša3 -> ša₃    (ASCII digit three)
//
// Table is the dictionary-backed Resolver. Its contents can be loaded from a
// JSON, YAML or TOML sign list and swapped while the editor is running; a
// Reloader does this whenever the sign-list file changes on disk.
package glyph
