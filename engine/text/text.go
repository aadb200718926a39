package text

import (
	"strings"
	"unicode"

	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax29"

	"github.com/npillmayer/lineflow/core/dimen"
)

// Measurer is the service layout relies on for the size of text. Layout
// itself never measures.
type Measurer interface {
	// Measure returns the advance width of a word set in a given font size,
	// the height of its line and the distance of the baseline from the
	// bottom of the line.
	Measure(word string, size dimen.Dimen) (w, h, baseline dimen.Dimen)
}

// Words splits a text into the units lines may break between, using
// UAX#29 word boundaries. A run of whitespace becomes a single space
// trailing the word before it. Leading whitespace is dropped. Punctuation
// sticks to the word it follows, and no-break spaces do not separate words.
func Words(s string) []string {
	seg := segment.NewSegmenter(uax29.NewWordBreaker(1))
	seg.Init(strings.NewReader(s))
	var words []string
	var word strings.Builder
	closed := false
	for seg.Next() {
		t := seg.Text()
		if isSpace(t) {
			if word.Len() > 0 && !closed {
				word.WriteByte(' ')
				closed = true
			}
			continue
		}
		if closed {
			words = append(words, word.String())
			word.Reset()
			closed = false
		}
		word.WriteString(t)
	}
	if word.Len() > 0 {
		words = append(words, word.String())
	}
	tracer().Debugf("text split into %d words", len(words))
	return words
}

func isSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r == '\u00a0' || r == '\u202f' || !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
