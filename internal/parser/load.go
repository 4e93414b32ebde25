package parser

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mcncl/symdump/internal/errors"
	"github.com/mcncl/symdump/internal/models"
)

// Parse reads a whole document from reader and parses it.
func Parse(reader io.Reader, opts ...Option) (models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Value{}, errors.NewInputError("failed to read input", err)
	}
	return ParseString(string(data), opts...)
}

// ParseString parses a document held in memory.
func ParseString(text string, opts ...Option) (models.Value, error) {
	if strings.TrimSpace(text) == "" {
		return models.Value{}, errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}
	if !utf8.ValidString(text) {
		return models.Value{}, errors.NewInputError("input is not valid UTF-8", errors.ErrInvalidUTF8)
	}

	slog.Debug("parsing document", "bytes", len(text))
	root, err := New(text, opts...).Parse()
	if err != nil {
		return models.Value{}, errors.NewParsingError("failed to parse document", err)
	}
	slog.Debug("parsed document", "root", root.Kind(), "len", root.Len())
	return root, nil
}

// ParseFile parses the document stored at filePath.
func ParseFile(filePath string, opts ...Option) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Value{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	stat, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Value{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.IsDir() {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("'%s' is a directory", filePath),
			errors.ErrInvalidFilePath,
		)
	}
	if stat.Size() == 0 {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	slog.Debug("read input file", "path", filePath, "bytes", len(data))
	return ParseString(string(data), opts...)
}
