// Package atf replaces the ASCII abbreviations of the ATF inline convention with
// their Unicode forms.
//
// The convention used here moves the comma of the inline forms to the front
// (",S" rather than "S,"), so the patterns can be typed inside ordinary text
// without colliding with punctuation:
//
//	SZ -> Š    sz -> š
//	,S -> Ṣ    ,s -> ṣ
//	,T -> Ṭ    ,t -> ṭ
//
// Matches are collected in a single pass and replaced from the last to the
// first, so a replacement never moves the offsets of the matches before it.
package atf
