package glyph

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	combiningAcute = "\u0301"
	combiningGrave = "\u0300"

	subscriptTwo   = "₂"
	subscriptThree = "₃"
)

// EncodeInput folds accent-marked homophone indexes into subscript digits.
//
// The acute accent takes precedence over the grave accent, and either accent
// takes precedence over an ASCII "3". Other characters are returned in
// composed (NFC) form.
func EncodeInput(token string) string {
	decomposed := norm.NFD.String(token)

	switch {
	case strings.Contains(decomposed, combiningAcute):
		stripped := strings.ReplaceAll(decomposed, combiningAcute, "")
		return norm.NFC.String(stripped) + subscriptTwo
	case strings.Contains(decomposed, combiningGrave):
		stripped := strings.ReplaceAll(decomposed, combiningGrave, "")
		return norm.NFC.String(stripped) + subscriptThree
	case strings.Contains(token, "3"):
		return norm.NFC.String(strings.ReplaceAll(token, "3", subscriptThree))
	default:
		return norm.NFC.String(token)
	}
}
