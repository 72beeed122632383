package huffman

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountFrequencies(t *testing.T) {
	freqs, err := CountFrequencies(strings.NewReader("mississippi"))
	require.NoError(t, err)
	require.Equal(t, uint64(1), freqs['m'])
	require.Equal(t, uint64(4), freqs['i'])
	require.Equal(t, uint64(4), freqs['s'])
	require.Equal(t, uint64(2), freqs['p'])
	require.Equal(t, 4, freqs.NumSymbols())
	require.Equal(t, uint64(11), freqs.Total())

	long := strings.Repeat("ab", 5000)
	freqs, err = CountFrequencies(strings.NewReader(long))
	require.NoError(t, err)
	require.Equal(t, uint64(5000), freqs['a'])
	require.Equal(t, uint64(5000), freqs['b'])
}
