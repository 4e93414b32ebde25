package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/iancoleman/strcase"
	"github.com/mcncl/symdump/internal/errors"
)

// WriterOptions controls how entries are rendered.
type WriterOptions struct {
	AddressField string
	NameField    string
	Header       bool
	UppercaseHex bool
	Color        bool
}

// Writer renders entries as "<hex address> <name>" lines.
type Writer struct {
	opts    WriterOptions
	header  *color.Color
	address *color.Color
	name    *color.Color
}

// NewWriter creates a Writer.
func NewWriter(opts WriterOptions) *Writer {
	if opts.AddressField == "" {
		opts.AddressField = DefaultAddressField
	}
	if opts.NameField == "" {
		opts.NameField = DefaultNameField
	}
	w := &Writer{
		opts:    opts,
		header:  color.New(color.Bold),
		address: color.New(color.FgCyan),
		name:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{w.header, w.address, w.name} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return w
}

// Write renders entries to out, one per line.
func (w *Writer) Write(out io.Writer, entries []Entry) error {
	var b strings.Builder
	if w.opts.Header {
		b.WriteString(w.header.Sprintf("%s %s",
			strcase.ToScreamingSnake(w.opts.AddressField),
			strcase.ToScreamingSnake(w.opts.NameField)))
		b.WriteByte('\n')
	}
	for _, entry := range entries {
		b.WriteString(w.address.Sprint(w.FormatAddress(entry.Address)))
		b.WriteByte(' ')
		b.WriteString(w.name.Sprint(entry.Name))
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(out, b.String()); err != nil {
		return errors.NewOutputError("failed to write report", err)
	}
	return nil
}

// FormatAddress renders an address in hexadecimal with a 0x prefix.
func (w *Writer) FormatAddress(addr uint32) string {
	if w.opts.UppercaseHex {
		return fmt.Sprintf("0x%X", addr)
	}
	return fmt.Sprintf("%#x", addr)
}
