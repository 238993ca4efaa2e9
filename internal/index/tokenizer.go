package index

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into runs of letters, digits, and
// underscores. The same tokenizer is used at build time and at query time;
// scores are only comparable when both sides agree on token boundaries.
func Tokenize(text string) []string {
	var tokens []string

	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, strings.ToLower(text[start:i]))
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, strings.ToLower(text[start:]))
	}

	return tokens
}
