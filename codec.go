package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	mathbits "math/bits"

	"github.com/chronos-tachyon/assert"
)

// Codec translates between bytes and bit streams using one code tree.
type Codec struct {
	tree  *Tree
	codes [NumSymbols]Code
	known [NumSymbols]bool
}

// NewCodec returns a Codec for t.  The code of every symbol is computed once
// up front.
func NewCodec(t *Tree) *Codec {
	assert.Assertf(t != nil && t.root != nil, "NewCodec called with an empty tree")
	c := &Codec{tree: t}
	_ = t.Walk(func(symbol Symbol, hc Code) error {
		c.codes[symbol] = hc
		c.known[symbol] = true
		return nil
	})
	return c
}

// Tree returns the code tree of this Codec.
func (c *Codec) Tree() *Tree {
	return c.tree
}

// Encode returns the code of one symbol.  The second result is false if the
// symbol has no code.
func (c *Codec) Encode(symbol Symbol) (Code, bool) {
	return c.codes[symbol], c.known[symbol]
}

// EncodedBits returns the number of bits that encoding data with the given
// frequencies would produce.  Symbols with no code are ignored.  The result
// saturates at math.MaxUint64.
func (c *Codec) EncodedBits(freqs FrequencyTable) uint64 {
	var sum uint64
	for symbol, freq := range freqs {
		hi, product := mathbits.Mul64(freq, uint64(c.codes[symbol].Len()))
		if hi != 0 {
			return math.MaxUint64
		}
		var carry uint64
		sum, carry = mathbits.Add64(sum, product, 0)
		if carry != 0 {
			return math.MaxUint64
		}
	}
	return sum
}

// EncodeTo writes the code of each byte of data to sink, and returns the
// number of bits written.  There is no end marker: the caller has to keep
// track of the bit count.
//
// If the tree is a single leaf, every code is empty and nothing is written.
//
func (c *Codec) EncodeTo(sink BitSink, data []byte) (uint64, error) {
	var n uint64
	for index, ch := range data {
		if !c.known[ch] {
			return n, fmt.Errorf("%w: byte %d at offset %d", ErrUnknownSymbol, ch, index)
		}
		hc := c.codes[ch]
		for i := 0; i < hc.Len(); i++ {
			if err := sink.WriteBit(hc.Bit(i)); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// DecodeFrom decodes symbols from src until it reports no more bits, and
// writes them to dst.  It returns the number of symbols decoded.
//
// A source that runs out partway through a code fails with
// ErrTruncatedInput.  A single-leaf tree consumes no bits at all, so
// DecodeFrom cannot tell how many symbols there are and fails with
// ErrSymbolCountRequired; use DecodeN for such trees.
//
func (c *Codec) DecodeFrom(src BitSource, dst io.ByteWriter) (int, error) {
	if c.tree.root.leaf {
		return 0, ErrSymbolCountRequired
	}

	var n int
	for src.HasNextBit() {
		symbol, err := c.decodeOne(src)
		if err != nil {
			return n, err
		}
		if err := dst.WriteByte(byte(symbol)); err != nil {
			return n, err
		}
		n++
	}
	return n, sourceErr(src)
}

// DecodeN decodes exactly n symbols from src and writes them to dst.  Bits
// that remain in src afterwards are left unread.
func (c *Codec) DecodeN(src BitSource, dst io.ByteWriter, n int) error {
	for i := 0; i < n; i++ {
		symbol, err := c.decodeOne(src)
		if err != nil {
			return fmt.Errorf("symbol %d of %d: %w", i, n, err)
		}
		if err := dst.WriteByte(byte(symbol)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) decodeOne(src BitSource) (Symbol, error) {
	node := c.tree.root
	for !node.leaf {
		if !src.HasNextBit() {
			if err := sourceErr(src); err != nil {
				return 0, err
			}
			return 0, ErrTruncatedInput
		}

		bit, err := src.NextBit()
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%w: %v", ErrTruncatedInput, err)
		}
		if err != nil {
			return 0, err
		}

		node, err = node.Child(bit)
		if err != nil {
			return 0, err
		}
	}
	return node.symbol, nil
}

func sourceErr(src BitSource) error {
	if es, ok := src.(errSource); ok {
		err := es.Err()
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: %v", ErrTruncatedInput, err)
		}
		return err
	}
	return nil
}

// Dump writes a programmer-readable debugging dump of the Codec's current
// state to the given writer.
func (c *Codec) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Codec{\n")
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if !c.known[symbol] {
			continue
		}
		fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, c.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// Compress encodes data with t and returns the packed bits along with the
// number of meaningful bits in them.
func Compress(t *Tree, data []byte) ([]byte, uint64, error) {
	var buf bytes.Buffer
	bw := NewBitWriter(&buf)
	numBits, err := NewCodec(t).EncodeTo(bw, data)
	if err2 := bw.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), numBits, nil
}

// Decompress decodes the first numBits bits of payload with t.
func Decompress(t *Tree, payload []byte, numBits uint64) ([]byte, error) {
	if numBits > uint64(len(payload))*8 {
		return nil, fmt.Errorf("%w: %d bits requested, payload holds %d", ErrTruncatedInput, numBits, len(payload)*8)
	}
	var buf bytes.Buffer
	br := NewBitReader(bytes.NewReader(payload), int64(numBits))
	if _, err := NewCodec(t).DecodeFrom(br, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
