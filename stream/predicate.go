package stream

import (
	"bytes"
	"unicode/utf8"
)

// Predicate tests the next span of unconsumed content.
// Match receives the content starting at the cursor and reports the size
// of the matched span. size is meaningless unless matched is true.
type Predicate interface {
	Match (content []byte) (size int, matched bool)
}

type textPredicate struct {
	text []byte
}

// Text returns a predicate matching exactly the given text.
func Text (text string) Predicate {
	return textPredicate{[]byte(text)}
}

func (p textPredicate) Match (content []byte) (size int, matched bool) {
	if !bytes.HasPrefix(content, p.text) {
		return 0, false
	}

	return len(p.text), true
}

type rangePredicate struct {
	lo, hi rune
}

// Range returns a predicate matching a single code point in [lo, hi] inclusive.
func Range (lo, hi rune) Predicate {
	return rangePredicate{lo, hi}
}

func (p rangePredicate) Match (content []byte) (size int, matched bool) {
	r, size := utf8.DecodeRune(content)
	if size == 0 || r < p.lo || r > p.hi {
		return 0, false
	}

	return size, true
}
