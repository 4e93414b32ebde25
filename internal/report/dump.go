package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/mcncl/symdump/internal/errors"
	"github.com/mcncl/symdump/internal/models"
)

const dumpIndent = "    "

// Dump writes an indented rendering of the whole tree, one node per line.
func Dump(out io.Writer, v models.Value) error {
	var b strings.Builder
	dumpValue(&b, v, 0)
	b.WriteByte('\n')
	if _, err := io.WriteString(out, b.String()); err != nil {
		return errors.NewOutputError("failed to write dump", err)
	}
	return nil
}

func dumpValue(b *strings.Builder, v models.Value, depth int) {
	switch v.Kind() {
	case models.TextKind:
		s, _ := v.Text()
		b.WriteString("Text(")
		b.WriteString(strconv.Quote(s))
		b.WriteByte(')')
	case models.NumberKind:
		n, _ := v.Number()
		b.WriteString("Number(")
		b.WriteString(strconv.FormatUint(uint64(n), 10))
		b.WriteByte(')')
	case models.BoolKind:
		x, _ := v.Bool()
		b.WriteString("Bool(")
		b.WriteString(strconv.FormatBool(x))
		b.WriteByte(')')
	case models.ListKind:
		elems, _ := v.List()
		if len(elems) == 0 {
			b.WriteString("List[]")
			return
		}
		b.WriteString("List[\n")
		for _, elem := range elems {
			writeIndent(b, depth+1)
			dumpValue(b, elem, depth+1)
			b.WriteString(",\n")
		}
		writeIndent(b, depth)
		b.WriteByte(']')
	case models.ObjectKind:
		obj, _ := v.Object()
		fields := obj.Fields()
		if len(fields) == 0 {
			b.WriteString("Object{}")
			return
		}
		b.WriteString("Object{\n")
		for _, field := range fields {
			writeIndent(b, depth+1)
			b.WriteString(strconv.Quote(field.Key))
			b.WriteString(": ")
			dumpValue(b, field.Value, depth+1)
			b.WriteString(",\n")
		}
		writeIndent(b, depth)
		b.WriteByte('}')
	default:
		b.WriteString("Invalid")
	}
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(dumpIndent)
	}
}
