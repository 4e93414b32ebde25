// Package cursor provides a one-rune lookahead stream over an input document.
package cursor

import (
	"unicode/utf8"

	"github.com/mcncl/symdump/internal/errors"
)

// Cursor reads runes from a string with a single rune of lookahead.
// It is owned by one parse and is not safe for concurrent use.
type Cursor struct {
	text string
	off  int
	line int
	col  int
}

// New creates a Cursor positioned at the start of text.
func New(text string) *Cursor {
	return &Cursor{text: text, line: 1, col: 1}
}

// Peek returns the next rune without consuming it. ok is false at end of input.
func (c *Cursor) Peek() (r rune, ok bool) {
	if c.off >= len(c.text) {
		return 0, false
	}
	r, _ = utf8.DecodeRuneInString(c.text[c.off:])
	return r, true
}

// Advance consumes and returns the next rune. ok is false at end of input.
func (c *Cursor) Advance() (r rune, ok bool) {
	if c.off >= len(c.text) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(c.text[c.off:])
	c.off += size
	if r == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return r, true
}

// Pos reports the position of the next rune.
func (c *Cursor) Pos() errors.Pos {
	return errors.Pos{Offset: c.off, Line: c.line, Col: c.col}
}

// Done reports whether all input has been consumed.
func (c *Cursor) Done() bool {
	return c.off >= len(c.text)
}

// Rest returns the unconsumed input.
func (c *Cursor) Rest() string {
	return c.text[c.off:]
}
