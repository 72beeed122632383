package huffman

import (
	"fmt"
	"strconv"
	"strings"
)

// Code represents the path from the root of a code tree to one leaf, written
// as a sequence of '0' (left) and '1' (right) characters.  The empty Code is
// the code of a tree whose root is itself a leaf.
type Code string

// ParseCode validates s and converts it into a Code.
func ParseCode(s string) (Code, error) {
	for i := 0; i < len(s); i++ {
		if ch := s[i]; ch != '0' && ch != '1' {
			return "", fmt.Errorf("invalid character %q at offset %d in code %q", ch, i, s)
		}
	}
	return Code(s), nil
}

// MakeCode is a convenience function that constructs a Code from a list of
// bits, each of which must be 0 or 1.
func MakeCode(bits ...byte) Code {
	var sb strings.Builder
	sb.Grow(len(bits))
	for _, bit := range bits {
		sb.WriteByte('0' + (bit & 1))
	}
	return Code(sb.String())
}

// Len returns the number of bits in this Code.
func (hc Code) Len() int {
	return len(hc)
}

// Bit returns the i'th bit of this Code, 0 or 1.
func (hc Code) Bit(i int) byte {
	return hc[i] - '0'
}

// HasPrefix reports whether prefix is a (not necessarily strict) prefix of
// this Code.
func (hc Code) HasPrefix(prefix Code) bool {
	return strings.HasPrefix(string(hc), string(prefix))
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return strconv.Quote(string(hc))
}

var _ fmt.Stringer = Code("")
