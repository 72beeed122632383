package huffman

import (
	mathbits "math/bits"
	"strconv"
)

// log2 returns the number of bits needed to represent x, or 1 if x is 0.  It
// serves as a capacity hint for tree depth.
func log2(x int) int {
	if x <= 0 {
		x = 1
	}
	return mathbits.Len(uint(x))
}

func parseSymbol(s string) (Symbol, error) {
	u, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	return Symbol(u), nil
}
