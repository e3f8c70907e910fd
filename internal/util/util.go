package util

import "unicode"

func ContainsUpper(query string) bool {
	for _, c := range query {
		if unicode.IsUpper(c) {
			return true
		}
	}
	return false
}

// LowerRunes returns a lowercased copy of runes. Every rune maps to
// exactly one rune, so column offsets stay valid in the copy.
func LowerRunes(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// IndentWidth returns the number of leading whitespace runes in s.
func IndentWidth(s string) int {
	var n int
	for _, r := range s {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}
