package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is matched by every *FormatError.
	ErrFormat = errors.New("malformed code table")

	// ErrStructural is returned when a caller tries to descend past a leaf.
	ErrStructural = errors.New("cannot descend into a child of a leaf node")

	// ErrTruncatedInput is returned when the bit source runs dry in the
	// middle of a code.
	ErrTruncatedInput = errors.New("bit stream ended in the middle of a code")

	// ErrEmptyAlphabet is returned when there is no symbol to build a tree
	// from.
	ErrEmptyAlphabet = errors.New("no symbols with non-zero frequency")

	// ErrUnknownSymbol is returned when encoding a byte that has no code.
	ErrUnknownSymbol = errors.New("symbol has no code in this tree")

	// ErrSymbolCountRequired is returned by Codec.Decode when the tree
	// consists of a single leaf: such a code spends zero bits per symbol,
	// so the bit stream alone cannot say how many symbols it holds.
	ErrSymbolCountRequired = errors.New("single-symbol code needs an explicit symbol count")
)

// FormatError describes a problem with a code table.
type FormatError struct {
	// Line is the 1-based line of the text table where the problem was
	// found, or 0 if the table did not come from text.
	Line int

	Problem string
}

// Error fulfills the error interface.
func (err *FormatError) Error() string {
	if err.Line > 0 {
		return fmt.Sprintf("%v: line %d: %s", ErrFormat, err.Line, err.Problem)
	}
	return fmt.Sprintf("%v: %s", ErrFormat, err.Problem)
}

// Is allows errors.Is(err, ErrFormat) to match.
func (err *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func formatErrorf(line int, format string, args ...interface{}) error {
	return &FormatError{Line: line, Problem: fmt.Sprintf(format, args...)}
}

var _ error = (*FormatError)(nil)
