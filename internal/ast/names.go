package ast

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// IdentName normalizes an identifier to NFC so that visually equal names
// written with different code point sequences compare equal.
func IdentName(text string) string {
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			return norm.NFC.String(text)
		}
	}
	return text
}
