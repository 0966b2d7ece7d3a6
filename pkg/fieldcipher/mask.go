package fieldcipher

import "strings"

// MaskChar replaces hidden characters.
const MaskChar = '*'

// visibleSuffix is how many trailing characters stay readable.
const visibleSuffix = 4

// Mask replaces every character except the last four with MaskChar,
// preserving length. Values shorter than four characters are returned as is.
//
//	Mask("978-167883456700") == "************6700"
func Mask(value string) string {
	runes := []rune(value)
	if len(runes) < visibleSuffix {
		return value
	}

	hidden := len(runes) - visibleSuffix
	return strings.Repeat(string(MaskChar), hidden) + string(runes[hidden:])
}
