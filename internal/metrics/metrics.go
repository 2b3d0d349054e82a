// Package metrics derives word and character counts from editor text.
package metrics

import "unicode"

// Metrics summarises a piece of plain text.
type Metrics struct {
	// Words is the number of maximal runs of non-whitespace characters.
	Words int `json:"words"`
	// Characters counts non-whitespace characters plus one separator per
	// word boundary, so runs of spaces count as a single character.
	Characters int `json:"characters"`
}

// Compute returns the metrics for text. It is total: the empty string and
// whitespace-only input yield zero words.
func Compute(text string) Metrics {
	var m Metrics
	inWord := false
	for _, r := range text {
		if isSpace(r) {
			inWord = false
			continue
		}
		m.Characters++
		if !inWord {
			m.Words++
			inWord = true
		}
	}
	if m.Words > 1 {
		m.Characters += m.Words - 1
	}
	return m
}

// isSpace matches the whitespace class used by browsers for \s: Unicode's
// White_Space set without NEL (U+0085), plus the byte order mark.
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}
