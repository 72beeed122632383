package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Errorf("failed %s", "x")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "[INFO] shown 2")
	require.Contains(t, out, "[ERROR] failed x")

	buf.Reset()
	New(&buf, true).Debugf("visible")
	require.Contains(t, buf.String(), "[DEBUG] visible")
}
