// Package report turns a parsed symbol table into address/name entries and
// renders them.
package report

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/mcncl/symdump/internal/errors"
	"github.com/mcncl/symdump/internal/models"
)

// Default field names of a symbol table entry.
const (
	DefaultAddressField = "vaddr"
	DefaultNameField    = "name"
)

// Entry is one reported symbol.
type Entry struct {
	Index   int
	Address uint32
	Name    string
}

// Options selects the fields read from each entry and an optional filter.
type Options struct {
	AddressField string
	NameField    string
	// Filter is an expr-lang expression evaluated against every entry's
	// fields. Entries for which it yields false are skipped.
	Filter string
}

// Collector extracts entries from a document whose root is a list of objects.
type Collector struct {
	addressField string
	nameField    string
	program      *vm.Program
}

// NewCollector creates a Collector, compiling the filter if one is set.
func NewCollector(opts Options) (*Collector, error) {
	c := &Collector{
		addressField: opts.AddressField,
		nameField:    opts.NameField,
	}
	if c.addressField == "" {
		c.addressField = DefaultAddressField
	}
	if c.nameField == "" {
		c.nameField = DefaultNameField
	}
	if opts.Filter != "" {
		program, err := expr.Compile(opts.Filter, expr.AllowUndefinedVariables())
		if err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("invalid filter expression %q", opts.Filter), err)
		}
		c.program = program
	}
	return c, nil
}

// Collect walks root and returns the entries in document order. The root must
// be a list, every element an object holding a number address and a text name.
func (c *Collector) Collect(root models.Value) ([]Entry, error) {
	if root.Kind() != models.ListKind {
		return nil, errors.NewReportError("document root must be a list",
			&errors.TypeMismatchError{Want: models.ListKind.String(), Got: root.Kind().String()})
	}

	entries := make([]Entry, 0, root.Len())
	for i, n := 0, root.Len(); i < n; i++ {
		elem, err := root.GetByIndex(i)
		if err != nil {
			return nil, errors.NewReportError(fmt.Sprintf("entry %d", i), err)
		}
		entry, obj, err := c.entry(i, elem)
		if err != nil {
			return nil, errors.NewReportError(fmt.Sprintf("entry %d", i), err)
		}

		if c.program != nil {
			keep, err := c.match(obj, entry)
			if err != nil {
				return nil, errors.NewReportError(fmt.Sprintf("filter failed on entry %d", i), err)
			}
			if !keep {
				slog.Debug("entry filtered out", "index", i, "name", entry.Name)
				continue
			}
		}
		entries = append(entries, entry)
	}
	slog.Debug("collected entries", "total", root.Len(), "kept", len(entries))
	return entries, nil
}

func (c *Collector) entry(i int, elem models.Value) (Entry, *models.Object, error) {
	obj, ok := elem.Object()
	if !ok {
		return Entry{}, nil, &errors.TypeMismatchError{Want: models.ObjectKind.String(), Got: elem.Kind().String()}
	}

	addrValue, err := obj.GetByKey(c.addressField)
	if err != nil {
		return Entry{}, nil, err
	}
	addr, ok := addrValue.Number()
	if !ok {
		return Entry{}, nil, fmt.Errorf("field %q: %w", c.addressField,
			&errors.TypeMismatchError{Want: models.NumberKind.String(), Got: addrValue.Kind().String()})
	}

	nameValue, err := obj.GetByKey(c.nameField)
	if err != nil {
		return Entry{}, nil, err
	}
	name, ok := nameValue.Text()
	if !ok {
		return Entry{}, nil, fmt.Errorf("field %q: %w", c.nameField,
			&errors.TypeMismatchError{Want: models.TextKind.String(), Got: nameValue.Kind().String()})
	}

	return Entry{Index: i, Address: addr, Name: name}, obj, nil
}

func (c *Collector) match(obj *models.Object, entry Entry) (bool, error) {
	env := objectEnv(obj)
	// vaddr and name always refer to the configured fields unless the entry
	// has fields of those names itself.
	if _, ok := env[DefaultAddressField]; !ok {
		env[DefaultAddressField] = int(entry.Address)
	}
	if _, ok := env[DefaultNameField]; !ok {
		env[DefaultNameField] = entry.Name
	}

	out, err := expr.Run(c.program, env)
	if err != nil {
		return false, err
	}
	keep, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter returned %T, want bool", out)
	}
	return keep, nil
}

func objectEnv(obj *models.Object) map[string]any {
	env := make(map[string]any, obj.Len())
	for _, field := range obj.Fields() {
		if _, seen := env[field.Key]; seen {
			continue
		}
		env[field.Key] = native(field.Value)
	}
	return env
}

// native converts a value to the Go types expr-lang operates on.
func native(v models.Value) any {
	switch v.Kind() {
	case models.TextKind:
		s, _ := v.Text()
		return s
	case models.NumberKind:
		n, _ := v.Number()
		return int(n)
	case models.BoolKind:
		b, _ := v.Bool()
		return b
	case models.ListKind:
		elems, _ := v.List()
		out := make([]any, len(elems))
		for i, elem := range elems {
			out[i] = native(elem)
		}
		return out
	case models.ObjectKind:
		obj, _ := v.Object()
		return objectEnv(obj)
	default:
		return nil
	}
}
