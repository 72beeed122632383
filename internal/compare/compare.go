// Package compare measures how well the Huffman coder does on some input
// relative to general-purpose compressors.
package compare

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	huffman "github.com/chronos-tachyon/hufftable"
)

// Result is the outcome of compressing one input with one method.
type Result struct {
	Method string
	Size   int
}

// Ratio returns Size as a fraction of original.
func (r Result) Ratio(original int) float64 {
	if original == 0 {
		return 0
	}
	return float64(r.Size) / float64(original)
}

// Measure compresses data with every method and reports the sizes.  The
// Huffman size includes the text code table as well as the packed payload.
func Measure(data []byte) ([]Result, error) {
	methods := []struct {
		name string
		fn   func([]byte) (int, error)
	}{
		{"huffman", huffmanSize},
		{"lz4", lz4Size},
		{"zstd", zstdSize},
	}

	out := make([]Result, 0, len(methods))
	for _, m := range methods {
		size, err := m.fn(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.name, err)
		}
		out = append(out, Result{Method: m.name, Size: size})
	}
	return out, nil
}

func huffmanSize(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	var freqs huffman.FrequencyTable
	freqs.Add(data)
	tree, err := huffman.BuildFromFrequencies(freqs)
	if err != nil {
		return 0, err
	}
	var table bytes.Buffer
	if err := huffman.SaveTable(&table, tree); err != nil {
		return 0, err
	}
	numBits := huffman.NewCodec(tree).EncodedBits(freqs)
	return table.Len() + int((numBits+7)/8), nil
}

func lz4Size(data []byte) (int, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	return closeAndMeasure(zw, data, &buf)
}

func zstdSize(data []byte) (int, error) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		return 0, err
	}
	return closeAndMeasure(zw, data, &buf)
}

func closeAndMeasure(w io.WriteCloser, data []byte, buf *bytes.Buffer) (int, error) {
	if _, err := w.Write(data); err != nil {
		w.Close()
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}
