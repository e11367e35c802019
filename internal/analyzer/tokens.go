package analyzer

import (
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// CountWords returns the number of natural-language words in s, using
// UAX #29 word segmentation and keeping only segments that carry at least
// one letter or digit.
func CountWords(s string) int {
	count := 0
	tokens := words.FromString(s)
	for tokens.Next() {
		if hasAlnum(tokens.Value()) {
			count++
		}
	}
	return count
}

// CountTokens estimates a tokenizer-style token count: every UAX #29 word
// segment that is not pure whitespace counts as one token, so punctuation
// runs and symbols are tokens of their own, the way simple BPE-free
// tokenizers behave.
func CountTokens(s string) int {
	count := 0
	tokens := words.FromString(s)
	for tokens.Next() {
		if !isSpaceOnly(tokens.Value()) {
			count++
		}
	}
	return count
}

// EstimateTokensGPT4 approximates a GPT-4-class BPE token count. Subword
// tokenizers average roughly four characters per token on code and emit
// about four tokens for every three words of prose; taking the larger of
// the two keeps the estimate conservative for context budgeting.
func EstimateTokensGPT4(s string) int {
	byChars := (len(s) + 3) / 4
	byWords := CountWords(s) * 4 / 3
	if byWords > byChars {
		return byWords
	}
	return byChars
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func isSpaceOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
