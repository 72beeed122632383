package huffman

import (
	"strings"
	"testing"
)

// sixSymbolFreqs is the classic textbook example: 'a' through 'f' with
// frequencies 5, 9, 12, 13, 16, 45.
func sixSymbolFreqs() FrequencyTable {
	var freqs FrequencyTable
	for i, freq := range []uint64{5, 9, 12, 13, 16, 45} {
		freqs['a'+i] = freq
	}
	return freqs
}

func makeTestTree(t *testing.T) *Tree {
	t.Helper()
	tree, err := BuildFromFrequencies(sixSymbolFreqs())
	if err != nil {
		t.Fatalf("BuildFromFrequencies failed: %v", err)
	}
	return tree
}

// uniformFreqs returns a table where symbols 0 .. n-1 all have frequency 1.
func uniformFreqs(n int) FrequencyTable {
	var freqs FrequencyTable
	for i := 0; i < n; i++ {
		freqs[i] = 1
	}
	return freqs
}

// skewedTable returns a table for all 256 symbols in which symbol i has the
// code "1"×i + "0", except symbol 255 whose code is "1"×255.
func skewedTable() []TableEntry {
	entries := make([]TableEntry, 0, NumSymbols)
	for i := 0; i < NumSymbols; i++ {
		hc := strings.Repeat("1", i)
		if i != NumSymbols-1 {
			hc += "0"
		}
		entries = append(entries, TableEntry{Symbol: Symbol(i), Code: Code(hc)})
	}
	return entries
}
