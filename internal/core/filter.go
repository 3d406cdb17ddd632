package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes runes and drops combining marks, so diacritic
// variants fold to their base letter (ё -> е, é -> e) before matching. The
// chain carries per-use buffers, so build a fresh one per call.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Normalize prepares text for phrase matching: lowercase, fold diacritics,
// drop everything outside letters, digits and whitespace. Normalizing an
// already-normalized string returns it unchanged.
func Normalize(text string) string {
	folded, _, err := transform.String(stripMarks(), text)
	if err != nil {
		// transform only fails on malformed input; match on it as-is.
		folded = text
	}
	folded = strings.ToLower(folded)
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, folded)
}

// PhraseFilter matches normalized text against a denylist by substring
// containment. The denylist must be curated with containment in mind: a
// short entry will also match inside longer words.
type PhraseFilter struct {
	phrases []string
}

// NewPhraseFilter normalizes the denylist once up front. Entries that
// normalize to the empty string are dropped so they cannot match everything.
func NewPhraseFilter(denylist []string) *PhraseFilter {
	phrases := make([]string, 0, len(denylist))
	for _, p := range denylist {
		if n := Normalize(p); n != "" {
			phrases = append(phrases, n)
		}
	}
	return &PhraseFilter{phrases: phrases}
}

// Contains reports whether the text, after normalization, contains any
// denylisted phrase.
func (f *PhraseFilter) Contains(text string) bool {
	n := Normalize(text)
	for _, p := range f.phrases {
		if strings.Contains(n, p) {
			return true
		}
	}
	return false
}

// CapsRatio returns the share of uppercase letters among the letters of
// text. Digits, whitespace and punctuation count toward neither side. Texts
// with fewer than minLetters letters return 0 so short shouts are not
// flagged.
func CapsRatio(text string, minLetters int) float64 {
	var letters, upper int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if letters < minLetters {
		return 0
	}
	return float64(upper) / float64(letters)
}
