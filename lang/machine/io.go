package machine

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// runeReader decodes stdin one UTF-8 code point at a time for the Read
// combinator. Per spec.md §9's open question, invalid encoding is treated
// the same as end-of-file: read silently reports "no character available"
// rather than surfacing a decode error, preserving the source behavior the
// spec calls out as worth keeping for compatibility with existing programs.
type runeReader struct {
	r *bufio.Reader
}

func newRuneReader(r io.Reader) *runeReader {
	return &runeReader{r: bufio.NewReader(r)}
}

// read returns the next code point and true, or (0, false) at EOF or on a
// decoding error.
func (rr *runeReader) read() (rune, bool) {
	c, size, err := rr.r.ReadRune()
	if err != nil {
		return 0, false
	}
	if c == utf8.RuneError && size == 1 {
		return 0, false
	}
	return c, true
}
