package huffman

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCode(t *testing.T) {
	hc := MakeCode(1, 0, 1, 1)
	require.Equal(t, Code("1011"), hc)
	require.Equal(t, 4, hc.Len())
	require.Equal(t, byte(1), hc.Bit(0))
	require.Equal(t, byte(0), hc.Bit(1))
	require.True(t, hc.HasPrefix("10"))
	require.True(t, hc.HasPrefix(""))
	require.False(t, hc.HasPrefix("11"))
	require.Equal(t, `"1011"`, hc.String())
	require.Equal(t, `""`, Code("").String())
}

func TestParseCode(t *testing.T) {
	for _, s := range []string{"", "0", "1", "0110"} {
		hc, err := ParseCode(s)
		require.NoError(t, err, s)
		require.Equal(t, Code(s), hc)
	}
	for _, s := range []string{"2", "01x", " 0", "0\r"} {
		_, err := ParseCode(s)
		require.Error(t, err, s)
	}
}
