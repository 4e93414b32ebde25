// Package parser implements a recursive-descent parser for symbol table documents.
//
// The grammar is a small JSON-like language:
//
//	value   := text | number | boolean | list | object
//	text    := '"' char-not-quote* '"'
//	number  := digit+
//	boolean := "true" | "false"
//	list    := '[' (value (',' value)*)? ']'
//	object  := '{' (field (',' field)*)? '}'
//	field   := text ':' value
//
// Booleans are case-insensitive and numbers must fit in 32 unsigned bits. A
// single whitespace character is tolerated before each delimiter; values
// themselves must start immediately.
package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/mcncl/symdump/internal/cursor"
	"github.com/mcncl/symdump/internal/errors"
	"github.com/mcncl/symdump/internal/models"
)

// Parser turns one document into a value tree. It is single-use.
type Parser struct {
	cur   *cursor.Cursor
	opts  parseOpts
	depth int
}

// New creates a Parser over text.
func New(text string, opts ...Option) *Parser {
	p := &Parser{cur: cursor.New(text)}
	for _, opt := range opts {
		opt(&p.opts)
	}
	return p
}

// Parse parses the root value. Any malformed input aborts the whole parse;
// no partial tree is returned.
func (p *Parser) Parse() (models.Value, error) {
	value, err := p.parseValue()
	if err != nil {
		return models.Value{}, err
	}
	if p.opts.rejectTrailing {
		if err := p.checkTrailing(); err != nil {
			return models.Value{}, err
		}
	}
	return value, nil
}

func (p *Parser) checkTrailing() error {
	for {
		if p.cur.Done() {
			return nil
		}
		if r, _ := p.cur.Peek(); !unicode.IsSpace(r) {
			break
		}
		p.cur.Advance()
	}
	pos := p.cur.Pos()
	rest := p.cur.Rest()
	if runes := []rune(rest); len(runes) > 16 {
		rest = string(runes[:16])
	}
	return &errors.SyntaxError{Err: errors.ErrTrailingData, Text: rest, Pos: pos}
}

// verify consumes the expected delimiter, skipping at most one whitespace
// character before it.
func (p *Parser) verify(expected rune) error {
	pos := p.cur.Pos()
	r, ok := p.cur.Advance()
	if ok && unicode.IsSpace(r) {
		pos = p.cur.Pos()
		r, ok = p.cur.Advance()
	}
	if !ok || r != expected {
		return &errors.UnexpectedTokenError{Expected: expected, Actual: r, EOF: !ok, Pos: pos}
	}
	return nil
}

func (p *Parser) parseValue() (models.Value, error) {
	pos := p.cur.Pos()
	r, ok := p.cur.Peek()
	if !ok {
		return models.Value{}, &errors.SyntaxError{Err: errors.ErrEmptyInput, Pos: pos}
	}

	switch c := asciiLower(r); {
	case c == '"':
		return p.parseTextValue()
	case c == '[':
		return p.parseList()
	case c == '{':
		return p.parseObject()
	case c == 'f' || c == 't':
		return p.parseBool()
	case isDigit(c):
		return p.parseNumber()
	default:
		return models.Value{}, &errors.UnexpectedTokenError{Actual: r, Pos: pos}
	}
}

// parseText reads a quoted string. There are no escapes: the next quote
// always terminates the text.
func (p *Parser) parseText() (string, error) {
	if err := p.verify('"'); err != nil {
		return "", err
	}
	start := p.cur.Pos()

	var b strings.Builder
	for {
		r, ok := p.cur.Advance()
		if !ok {
			if p.opts.strictText {
				return "", &errors.SyntaxError{Err: errors.ErrUnterminatedText, Text: b.String(), Pos: start}
			}
			return b.String(), nil
		}
		if r == '"' {
			return b.String(), nil
		}
		b.WriteRune(r)
	}
}

func (p *Parser) parseTextValue() (models.Value, error) {
	text, err := p.parseText()
	if err != nil {
		return models.Value{}, err
	}
	return models.NewText(text), nil
}

func (p *Parser) parseNumber() (models.Value, error) {
	start := p.cur.Pos()

	var digits strings.Builder
	for {
		r, ok := p.cur.Peek()
		if !ok || !isDigit(r) {
			break
		}
		p.cur.Advance()
		digits.WriteRune(r)
	}

	n, err := strconv.ParseUint(digits.String(), 10, 32)
	if err != nil {
		return models.Value{}, &errors.SyntaxError{Err: errors.ErrInvalidNumber, Text: digits.String(), Pos: start}
	}
	return models.NewNumber(uint32(n)), nil
}

func (p *Parser) parseBool() (models.Value, error) {
	start := p.cur.Pos()
	r, ok := p.cur.Advance()
	if !ok {
		return models.Value{}, &errors.SyntaxError{Err: errors.ErrEmptyInput, Pos: start}
	}

	first := asciiLower(r)
	var remaining int
	switch first {
	case 't':
		remaining = 3
	case 'f':
		remaining = 4
	default:
		return models.Value{}, &errors.UnexpectedTokenError{Actual: r, Pos: start}
	}

	var b strings.Builder
	b.WriteRune(first)
	for i, n := 0, remaining; i < n; i++ {
		r, ok := p.cur.Advance()
		if !ok {
			break
		}
		b.WriteRune(r)
	}

	word := strings.ToLower(b.String())
	switch word {
	case "true":
		return models.NewBool(true), nil
	case "false":
		return models.NewBool(false), nil
	default:
		return models.Value{}, &errors.SyntaxError{Err: errors.ErrInvalidBoolean, Text: word, Pos: start}
	}
}

func (p *Parser) parseList() (models.Value, error) {
	if err := p.verify('['); err != nil {
		return models.Value{}, err
	}
	if err := p.enter(); err != nil {
		return models.Value{}, err
	}
	defer p.leave()

	values := []models.Value{}
	for {
		r, ok := p.cur.Peek()
		if !ok || r == ']' {
			break
		}
		if len(values) > 0 {
			if err := p.verify(','); err != nil {
				return models.Value{}, err
			}
		}
		value, err := p.parseValue()
		if err != nil {
			return models.Value{}, err
		}
		values = append(values, value)
	}

	if err := p.verify(']'); err != nil {
		return models.Value{}, err
	}
	return models.NewList(values...), nil
}

func (p *Parser) parseObject() (models.Value, error) {
	if err := p.verify('{'); err != nil {
		return models.Value{}, err
	}
	if err := p.enter(); err != nil {
		return models.Value{}, err
	}
	defer p.leave()

	fields := []models.Field{}
	for {
		r, ok := p.cur.Peek()
		if !ok || r == '}' {
			break
		}
		if len(fields) > 0 {
			if err := p.verify(','); err != nil {
				return models.Value{}, err
			}
		}
		field, err := p.parseField()
		if err != nil {
			return models.Value{}, err
		}
		fields = append(fields, field)
	}

	if err := p.verify('}'); err != nil {
		return models.Value{}, err
	}
	return models.NewObjectValue(fields...), nil
}

func (p *Parser) parseField() (models.Field, error) {
	key, err := p.parseText()
	if err != nil {
		return models.Field{}, err
	}
	if err := p.verify(':'); err != nil {
		return models.Field{}, err
	}
	value, err := p.parseValue()
	if err != nil {
		return models.Field{}, err
	}
	return models.NewField(key, value), nil
}

func (p *Parser) enter() error {
	p.depth++
	if p.opts.maxDepth > 0 && p.depth > p.opts.maxDepth {
		return &errors.SyntaxError{Err: errors.ErrMaxDepth, Text: strconv.Itoa(p.opts.maxDepth), Pos: p.cur.Pos()}
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func asciiLower(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
