package syntax

import (
	"io"
	"unicode/utf8"
)

// source is a character reader with position tracking.
type source struct {
	buf []byte // entire input read into memory

	line uint32 // current line number (1-based)
	col  uint32 // current column number (1-based)

	ch   rune // current character, -1 for EOF
	offs int  // current byte offset in buf

	errh func(line, col uint32, msg string)
}

// newSource creates a new source from an io.Reader.
// The errh function is called for each error; if nil, errors are dropped.
func newSource(src io.Reader, errh func(line, col uint32, msg string)) *source {
	s := &source{
		line: 1,
		col:  0,  // incremented to 1 by the first nextch
		ch:   -1, // sentinel: before first char
		errh: errh,
	}

	var err error
	s.buf, err = io.ReadAll(src)
	if err != nil {
		s.error("error reading source: " + err.Error())
		s.ch = -1
		return s
	}

	s.nextch()
	return s
}

// nextch reads the next character and updates the position.
// Sets s.ch to -1 at EOF. After nextch returns, (line, col) is the
// position of s.ch.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRune(s.buf[s.offs:])
	if r == utf8.RuneError && width == 1 {
		s.error("invalid UTF-8 encoding")
	}

	s.ch = r
	s.offs += width
}

// error reports a lexical error at the current position.
func (s *source) error(msg string) {
	if s.errh != nil {
		s.errh(s.line, s.col, msg)
	}
}

// Character classification helpers

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isOperatorStart(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '&', '|', '<', '>', '=', '!', ':',
		'(', ')', '{', '}', ',', ';':
		return true
	}
	return false
}
