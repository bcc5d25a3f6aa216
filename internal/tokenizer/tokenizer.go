// Package tokenizer normalises raw message text into the filtered token
// sequence the embedding pipeline consumes.
package tokenizer

import (
	"strings"
	"unicode"
)

// MinTokenLength is the shortest token kept after normalisation.
const MinTokenLength = 3

// stopWords are high-frequency terms that carry no retrieval signal.
// Tokens shorter than MinTokenLength are already dropped, so only
// longer function words need listing.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "has": {}, "him": {}, "his": {},
	"how": {}, "its": {}, "may": {}, "she": {}, "who": {}, "will": {},
	"with": {}, "that": {}, "this": {}, "they": {}, "them": {},
	"then": {}, "than": {}, "have": {}, "from": {}, "what": {},
	"when": {}, "were": {}, "your": {}, "just": {}, "about": {},
	"would": {}, "could": {}, "should": {}, "there": {}, "their": {},
	"been": {}, "being": {}, "because": {}, "into": {}, "only": {},
	"some": {}, "such": {}, "very": {}, "also": {}, "which": {},
}

// Tokenize lowercases text, splits on every non-alphanumeric rune, and
// drops tokens shorter than MinTokenLength or present in the stop-word
// set. Token order is preserved; repeated terms appear once per
// occurrence so callers can count frequencies. Empty or fully filtered
// input returns nil.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		token := current.String()
		current.Reset()
		if len([]rune(token)) < MinTokenLength {
			return
		}
		if _, stop := stopWords[token]; stop {
			return
		}
		tokens = append(tokens, token)
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	return tokens
}

// IsStopWord reports whether a lowercased token is in the stop-word set.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
