package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleEntries = []Entry{
	{Index: 0, Address: 4096, Name: "foo"},
	{Index: 1, Address: 0xdeadbeef, Name: "bar"},
	{Index: 2, Address: 0, Name: "zero"},
}

func TestWriter_Plain(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(WriterOptions{}).Write(&buf, sampleEntries)
	require.NoError(t, err)
	assert.Equal(t, "0x1000 foo\n0xdeadbeef bar\n0x0 zero\n", buf.String())
}

func TestWriter_UppercaseHex(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(WriterOptions{UppercaseHex: true}).Write(&buf, sampleEntries[1:2])
	require.NoError(t, err)
	assert.Equal(t, "0xDEADBEEF bar\n", buf.String())
}

func TestWriter_Header(t *testing.T) {
	tests := []struct {
		name string
		opts WriterOptions
		want string
	}{
		{name: "default fields", opts: WriterOptions{Header: true}, want: "VADDR NAME\n"},
		{name: "custom fields", opts: WriterOptions{Header: true, AddressField: "virtualAddress", NameField: "symbol_name"}, want: "VIRTUAL_ADDRESS SYMBOL_NAME\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewWriter(tt.opts).Write(&buf, nil))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriter_Color(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(WriterOptions{Color: true}).Write(&buf, sampleEntries[:1])
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "0x1000")
	assert.Contains(t, out, "foo")
	assert.NotEqual(t, "0x1000 foo\n", out)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriter_WriteError(t *testing.T) {
	err := NewWriter(WriterOptions{}).Write(failingWriter{}, sampleEntries)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "output: failed to write report"))
}
