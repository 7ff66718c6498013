// Package match locates byte patterns, either incrementally in a stream that
// arrives one byte at a time or in a buffer that is already complete.
package match

import "bytes"

// Matcher tracks how much of a pattern the most recent stream bytes have
// matched.
//
// On a mismatch it restarts at 1 if the byte equals the pattern's first byte,
// otherwise at 0. This is simpler than a failure-function automaton and
// misses some overlapping occurrences: "aab" is not found in "aaab".
type Matcher struct {
	pattern []byte
	pos     int
}

// NewMatcher returns a matcher for pattern. pattern must not be empty.
func NewMatcher(pattern []byte) Matcher {
	return Matcher{pattern: pattern}
}

// Feed advances the matcher by one stream byte and reports whether the
// pattern is now complete.
func (m *Matcher) Feed(c byte) bool {
	switch {
	case c == m.pattern[m.pos]:
		m.pos++
	case c == m.pattern[0]:
		m.pos = 1
	default:
		m.pos = 0
	}
	return m.pos == len(m.pattern)
}

// Pos returns the number of pattern bytes currently matched.
func (m *Matcher) Pos() int { return m.pos }

// Len returns the pattern length.
func (m *Matcher) Len() int { return len(m.pattern) }

// Reset forgets any partial match.
func (m *Matcher) Reset() { m.pos = 0 }

// Index returns the offset of the first occurrence of pattern in src, or -1.
// An empty pattern, or one longer than src, never matches.
func Index(src, pattern []byte) int {
	if len(pattern) == 0 || len(pattern) > len(src) {
		return -1
	}
	return bytes.Index(src, pattern)
}

// Between returns the bytes strictly between the first occurrence of start
// and the first occurrence of end that follows it. The result aliases src.
func Between(src, start, end []byte) ([]byte, bool) {
	i := Index(src, start)
	if i < 0 {
		return nil, false
	}
	rest := src[i+len(start):]
	j := Index(rest, end)
	if j < 0 {
		return nil, false
	}
	return rest[:j], true
}
