package errors

import (
	"fmt"
	"strconv"
)

// Pos locates a rune in the input. Line and Col are 1-based; Offset is a byte offset.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) String() string {
	if p.Line == 0 {
		return "offset " + strconv.Itoa(p.Offset)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// UnexpectedTokenError reports a delimiter or value start that did not match.
// Expected is 0 when any value start would have been accepted.
type UnexpectedTokenError struct {
	Expected rune
	Actual   rune
	EOF      bool
	Pos      Pos
}

func (e *UnexpectedTokenError) Error() string {
	expected := "a value"
	if e.Expected != 0 {
		expected = quoteRune(e.Expected)
	}
	return fmt.Sprintf("unexpected token at %s: expected %s got %s", e.Pos, expected, e.ActualString())
}

// ActualString renders the offending rune, or "none" when input was exhausted.
func (e *UnexpectedTokenError) ActualString() string {
	if e.EOF {
		return "none"
	}
	return quoteRune(e.Actual)
}

func (e *UnexpectedTokenError) Unwrap() error {
	return ErrUnexpectedToken
}

// SyntaxError is a parse failure that is not a delimiter mismatch. Err is one of
// the parse sentinels, Text the offending source fragment, if any.
type SyntaxError struct {
	Err  error
	Text string
	Pos  Pos
}

func (e *SyntaxError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("%v at %s: %q", e.Err, e.Pos, e.Text)
	}
	return fmt.Sprintf("%v at %s", e.Err, e.Pos)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// KeyNotFoundError is returned by keyed lookup on an object without the key.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("field with key %q not found", e.Key)
}

func (e *KeyNotFoundError) Unwrap() error {
	return ErrKeyNotFound
}

// IndexOutOfRangeError is returned by indexed lookup past the end of a list.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range for list of length %d", e.Index, e.Len)
}

func (e *IndexOutOfRangeError) Unwrap() error {
	return ErrIndexOutOfRange
}

// TypeMismatchError is returned when a lookup is applied to the wrong kind of value.
type TypeMismatchError struct {
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cannot use %s value as %s", e.Got, e.Want)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}
