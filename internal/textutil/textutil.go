// Package textutil provides text normalization shared by the pipeline stages.
package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// NormalizeWhitespace replaces runs of whitespace with single spaces and
// trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeTitle folds a title for comparison: lowercase, punctuation
// removed, whitespace collapsed.
func NormalizeTitle(s string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return NormalizeWhitespace(b.String())
}

// Slugify converts a string to a URL-safe slug: lowercase with runs of
// non-alphanumeric characters collapsed to single hyphens.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder

	prev := false

	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)

			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')

				prev = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// Tokenize splits text into lowercase word tokens using Unicode word
// segmentation, dropping segments that carry no letter or digit.
func Tokenize(text string) []string {
	var tokens []string

	iter := words.FromString(strings.ToLower(text))
	for iter.Next() {
		token := iter.Value()
		if !wordlike(token) {
			continue
		}

		tokens = append(tokens, token)
	}

	return tokens
}

// TokenSet returns the set of distinct word tokens in text.
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range Tokenize(text) {
		set[token] = struct{}{}
	}

	return set
}

// OverlapRatio computes the Jaccard overlap of two token sets: the size of
// the intersection over the size of the union. Two empty sets overlap fully.
func OverlapRatio(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}

	shared := 0

	for token := range small {
		if _, ok := large[token]; ok {
			shared++
		}
	}

	union := len(a) + len(b) - shared

	return float64(shared) / float64(union)
}

// Fingerprint returns the SHA-256 hex digest of normalized text. Articles
// with identical normalized bodies always share a fingerprint.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(NormalizeWhitespace(text)))

	return hex.EncodeToString(sum[:])
}

// Truncate shortens s to at most maxRunes runes, appending an ellipsis when
// anything was cut.
func Truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}

	return strings.TrimSpace(string(runes[:maxRunes])) + "…"
}

func wordlike(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}

	return false
}
