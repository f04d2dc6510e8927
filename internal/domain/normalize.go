package domain

import (
	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares raw source text for kanji extraction:
//   - applies Unicode NFC, which maps CJK compatibility ideographs
//     (U+F900 block) onto their unified code points
//   - leaves everything else untouched, including markup and whitespace
//
// Already-normalized input is returned without allocation.
func NormalizeText(text string) string {
	if norm.NFC.IsNormalString(text) {
		return text
	}
	return norm.NFC.String(text)
}

// NormalizeAll applies NormalizeText to every element of texts in place
// and returns the same slice.
func NormalizeAll(texts []string) []string {
	for i, t := range texts {
		texts[i] = NormalizeText(t)
	}
	return texts
}
