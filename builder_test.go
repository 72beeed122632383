package huffman

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildFromFrequencies(t *testing.T) {
	tree := makeTestTree(t)

	expectDump := strings.Join([]string{
		"Tree{\n",
		"\tNumSymbols() = 6\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 4\n",
		"\tCode(97) = \"1100\"\n",
		"\tCode(98) = \"1101\"\n",
		"\tCode(99) = \"100\"\n",
		"\tCode(100) = \"101\"\n",
		"\tCode(101) = \"111\"\n",
		"\tCode(102) = \"0\"\n",
		"}\n",
	}, "")
	actualDump := tree.DebugString()
	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}

	require.Equal(t, uint64(100), tree.Root().Weight())
	require.Equal(t, "(Huffman tree with 6 symbols, with code lengths of 1 .. 4 bits)", tree.String())
}

func TestBuildFromFrequencies_Deterministic(t *testing.T) {
	a := makeTestTree(t)
	b := makeTestTree(t)
	require.Equal(t, a.Codes(), b.Codes())
	require.Equal(t, a.Entries(), b.Entries())
}

func TestBuildFromFrequencies_TieBreak(t *testing.T) {
	// All weights equal: leaves pair off in symbol order, so the tree is
	// perfectly balanced and each code spells its symbol in binary.
	tree, err := BuildFromFrequencies(uniformFreqs(16))
	require.NoError(t, err)

	codes := tree.Codes()
	require.Len(t, codes, 16)
	for symbol := 0; symbol < 16; symbol++ {
		bits := make([]byte, 4)
		for i := range bits {
			bits[i] = byte(symbol>>(3-i)) & 1
		}
		require.Equal(t, MakeCode(bits...), codes[Symbol(symbol)], "symbol %d", symbol)
	}
}

func TestBuildFromFrequencies_SingleSymbol(t *testing.T) {
	var freqs FrequencyTable
	freqs[65] = 10

	tree, err := BuildFromFrequencies(freqs)
	require.NoError(t, err)
	require.True(t, tree.Root().IsLeaf())
	require.Equal(t, Symbol(65), tree.Root().Symbol())
	require.Equal(t, map[Symbol]Code{65: ""}, tree.Codes())
	require.Equal(t, 1, tree.NumSymbols())
	require.Equal(t, 0, tree.MaxSize())
}

func TestBuildFromFrequencies_Empty(t *testing.T) {
	_, err := BuildFromFrequencies(FrequencyTable{})
	require.ErrorIs(t, err, ErrEmptyAlphabet)
}

func TestBuildFromFrequencies_SaturatingWeight(t *testing.T) {
	var freqs FrequencyTable
	freqs[0] = math.MaxUint64
	freqs[1] = math.MaxUint64
	freqs[2] = 1

	tree, err := BuildFromFrequencies(freqs)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), tree.Root().Weight())
	require.Equal(t, 3, tree.NumSymbols())
}

func TestBuildFromFrequencies_PrefixFree(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for round := 0; round < 50; round++ {
		var freqs FrequencyTable
		for i := range freqs {
			if rng.Intn(3) != 0 {
				freqs[i] = uint64(rng.Intn(1000))
			}
		}
		freqs[rng.Intn(NumSymbols)]++

		tree, err := BuildFromFrequencies(freqs)
		require.NoError(t, err)

		codes := tree.Codes()
		require.Equal(t, freqs.NumSymbols(), len(codes))
		for a, ca := range codes {
			require.NotZero(t, freqs[a], "symbol %d has a code but no frequency", a)
			for b, cb := range codes {
				if a != b {
					require.False(t, ca.HasPrefix(cb), "code %s of %d has prefix %s of %d", ca, a, cb, b)
				}
			}
		}
	}
}

func TestBuildFromTable(t *testing.T) {
	original := makeTestTree(t)

	// Reverse the entries to show that order does not matter.
	entries := original.Entries()
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	rebuilt, err := BuildFromTable(entries)
	require.NoError(t, err)
	require.Equal(t, original.Codes(), rebuilt.Codes())
	require.Equal(t, original.Entries(), rebuilt.Entries())
	require.Equal(t, uint64(0), rebuilt.Root().Weight())
}

func TestBuildFromTable_Skewed(t *testing.T) {
	tree, err := BuildFromTable(skewedTable())
	require.NoError(t, err)
	require.Equal(t, NumSymbols, tree.NumSymbols())
	require.Equal(t, 1, tree.MinSize())
	require.Equal(t, 255, tree.MaxSize())
	require.Equal(t, skewedTable(), tree.Entries())
}

func TestBuildFromTable_Errors(t *testing.T) {
	type testRow struct {
		name    string
		entries []TableEntry
		problem string
	}

	testData := [...]testRow{
		{"extends-leaf", []TableEntry{{97, "0"}, {98, "01"}}, "extends the code"},
		{"prefix-of-other", []TableEntry{{98, "01"}, {97, "0"}}, "is a prefix of another code"},
		{"duplicate-code", []TableEntry{{97, "0"}, {98, "0"}}, "assigned to both"},
		{"duplicate-symbol", []TableEntry{{97, "0"}, {97, "1"}}, "appears more than once"},
		{"incomplete", []TableEntry{{97, "0"}}, "incomplete"},
		{"bad-code", []TableEntry{{97, "2"}}, "invalid character"},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, err := BuildFromTable(row.entries)
			require.ErrorIs(t, err, ErrFormat)
			require.Contains(t, err.Error(), row.problem)
		})
	}

	_, err := BuildFromTable(nil)
	require.ErrorIs(t, err, ErrEmptyAlphabet)
}
