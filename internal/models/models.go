// Package models holds the parsed document tree.
//
// A Value is a tagged union over text, number, boolean, list and object
// nodes. Trees are built bottom-up by the parser and are immutable afterwards:
// payloads are unexported and accessors that return slices return copies.
package models

import (
	"slices"

	"github.com/mcncl/symdump/internal/errors"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	InvalidKind Kind = iota
	TextKind
	NumberKind
	BoolKind
	ListKind
	ObjectKind
)

func (k Kind) String() string {
	switch k {
	case TextKind:
		return "text"
	case NumberKind:
		return "number"
	case BoolKind:
		return "boolean"
	case ListKind:
		return "list"
	case ObjectKind:
		return "object"
	default:
		return "invalid"
	}
}

// Value is one node of a parsed tree. The zero Value has InvalidKind and is
// only returned alongside an error.
type Value struct {
	kind    Kind
	text    string
	number  uint32
	boolean bool
	list    []Value
	object  *Object
}

// NewText creates a text value.
func NewText(s string) Value {
	return Value{kind: TextKind, text: s}
}

// NewNumber creates a number value.
func NewNumber(n uint32) Value {
	return Value{kind: NumberKind, number: n}
}

// NewBool creates a boolean value.
func NewBool(b bool) Value {
	return Value{kind: BoolKind, boolean: b}
}

// NewList creates a list value holding values in order.
func NewList(values ...Value) Value {
	if values == nil {
		values = []Value{}
	}
	return Value{kind: ListKind, list: values}
}

// NewObjectValue creates an object value holding fields in order.
func NewObjectValue(fields ...Field) Value {
	return Value{kind: ObjectKind, object: NewObject(fields...)}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// Text returns the text payload, or false if v is not text.
func (v Value) Text() (string, bool) {
	if v.kind != TextKind {
		return "", false
	}
	return v.text, true
}

// Number returns the number payload, or false if v is not a number.
func (v Value) Number() (uint32, bool) {
	if v.kind != NumberKind {
		return 0, false
	}
	return v.number, true
}

// Bool returns the boolean payload, or false if v is not a boolean.
func (v Value) Bool() (bool, bool) {
	if v.kind != BoolKind {
		return false, false
	}
	return v.boolean, true
}

// List returns a copy of the list elements, or false if v is not a list.
func (v Value) List() ([]Value, bool) {
	if v.kind != ListKind {
		return nil, false
	}
	return slices.Clone(v.list), true
}

// Object returns the object payload, or false if v is not an object.
func (v Value) Object() (*Object, bool) {
	if v.kind != ObjectKind {
		return nil, false
	}
	return v.object, true
}

// Len returns the number of elements of a list or fields of an object, and 0
// for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case ListKind:
		return len(v.list)
	case ObjectKind:
		return v.object.Len()
	default:
		return 0
	}
}

// GetByIndex returns the i-th element of a list.
func (v Value) GetByIndex(i int) (Value, error) {
	if v.kind != ListKind {
		return Value{}, &errors.TypeMismatchError{Want: ListKind.String(), Got: v.kind.String()}
	}
	if i < 0 || i >= len(v.list) {
		return Value{}, &errors.IndexOutOfRangeError{Index: i, Len: len(v.list)}
	}
	return v.list[i], nil
}

// GetByKey returns the value of the first field named key of an object.
func (v Value) GetByKey(key string) (Value, error) {
	if v.kind != ObjectKind {
		return Value{}, &errors.TypeMismatchError{Want: ObjectKind.String(), Got: v.kind.String()}
	}
	return v.object.GetByKey(key)
}

// Equal reports whether v and other are structurally identical trees,
// including list and field order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case TextKind:
		return v.text == other.text
	case NumberKind:
		return v.number == other.number
	case BoolKind:
		return v.boolean == other.boolean
	case ListKind:
		return slices.EqualFunc(v.list, other.list, Value.Equal)
	case ObjectKind:
		return v.object.Equal(other.object)
	default:
		return true
	}
}

// Field is a key/value pair inside an Object.
type Field struct {
	Key   string
	Value Value
}

// NewField creates a field.
func NewField(key string, value Value) Field {
	return Field{Key: key, Value: value}
}

// Object is an ordered sequence of fields. Keys need not be unique; lookup
// resolves to the first match.
type Object struct {
	fields []Field
}

// NewObject creates an object holding fields in order.
func NewObject(fields ...Field) *Object {
	if fields == nil {
		fields = []Field{}
	}
	return &Object{fields: fields}
}

// Fields returns a copy of the fields in declaration order.
func (o *Object) Fields() []Field {
	return slices.Clone(o.fields)
}

// Len returns the number of fields, duplicates included.
func (o *Object) Len() int {
	return len(o.fields)
}

// Lookup returns the value of the first field named key.
func (o *Object) Lookup(key string) (Value, bool) {
	for _, field := range o.fields {
		if field.Key == key {
			return field.Value, true
		}
	}
	return Value{}, false
}

// GetByKey is Lookup for callers that treat a missing key as an error.
func (o *Object) GetByKey(key string) (Value, error) {
	value, ok := o.Lookup(key)
	if !ok {
		return Value{}, &errors.KeyNotFoundError{Key: key}
	}
	return value, nil
}

// Equal reports whether both objects hold the same fields in the same order.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	return slices.EqualFunc(o.fields, other.fields, func(a, b Field) bool {
		return a.Key == b.Key && a.Value.Equal(b.Value)
	})
}
