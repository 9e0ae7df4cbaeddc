// Package config loads tupshar settings.
//
// Settings come from three layers, later layers winning: built-in defaults,
// a TOML file and TUPSHAR_* environment variables.
//
//	[editor]
//	strict = false
//	default_view = "transliteration"
//	project = "saao"
//
//	[glyphs]
//	sign_list = "~/.config/tupshar/signs.json"
//	fallback = "[X]"
//	watch = true
//
//	[logging]
//	level = "info"
//	file = ""
//
//	[save]
//	compress = false
//
//	[ui]
//	accent = "#d4a017"
//	selection = "#3a5f8a"
//
// A missing file is not an error. Load validates the merged result.
package config
