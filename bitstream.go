package huffman

import (
	"errors"
	"io"

	"github.com/icza/bitio"
)

// BitSink accepts a bit stream one bit at a time.
type BitSink interface {
	WriteBit(bit byte) error
}

// BitSource yields a bit stream one bit at a time.  Callers poll HasNextBit
// before each call to NextBit.
type BitSource interface {
	HasNextBit() bool
	NextBit() (byte, error)
}

// errSource is implemented by bit sources that can fail for reasons other
// than running out of bits.
type errSource interface {
	Err() error
}

var errClosed = errors.New("bit writer is closed")

// BitWriter is a BitSink that packs bits into bytes, most significant bit
// first.  The final byte is padded with 0 bits when the writer is closed;
// since the padding is indistinguishable from data, the bit count (see
// Count) has to be kept alongside the output.
//
// A BitWriter must be closed, or the trailing partial byte is lost.
type BitWriter struct {
	w      *bitio.CountWriter
	closed bool
}

// NewBitWriter returns a BitWriter writing to w.  Closing the BitWriter does
// not close w.
func NewBitWriter(w io.Writer) *BitWriter {
	return &BitWriter{w: bitio.NewCountWriter(w)}
}

// WriteBit writes one bit, which must be 0 or 1.
func (bw *BitWriter) WriteBit(bit byte) error {
	if bw.closed {
		return errClosed
	}
	return bw.w.WriteBool(bit != 0)
}

// Count returns the number of bits written so far, not counting padding.
func (bw *BitWriter) Count() uint64 {
	return uint64(bw.w.BitsCount)
}

// Close flushes the trailing partial byte, if any.  It is safe to call Close
// more than once.
func (bw *BitWriter) Close() error {
	if bw.closed {
		return nil
	}
	bw.closed = true
	return bw.w.Close()
}

// BitReader is a BitSource that unpacks bytes most significant bit first.
//
// If the reader was given a bit limit, it reports exactly that many bits and
// ignores whatever follows (such as the padding of the last byte).  Without
// a limit it reports every bit until the underlying reader hits EOF.
type BitReader struct {
	r      *bitio.CountReader
	limit  int64
	peeked bool
	next   bool
	err    error
}

// NewBitReader returns a BitReader over the first numBits bits of r.  A
// negative numBits means no limit.
func NewBitReader(r io.Reader, numBits int64) *BitReader {
	return &BitReader{r: bitio.NewCountReader(r), limit: numBits}
}

// HasNextBit reports whether another bit is available.
func (br *BitReader) HasNextBit() bool {
	if br.err != nil {
		return false
	}
	if br.limit >= 0 {
		return br.r.BitsCount < br.limit
	}
	if br.peeked {
		return true
	}
	b, err := br.r.ReadBool()
	if err != nil {
		if err != io.EOF {
			br.err = err
		}
		return false
	}
	br.next, br.peeked = b, true
	return true
}

// NextBit consumes one bit.  It returns io.EOF if no bit is available, and
// io.ErrUnexpectedEOF if the underlying reader ends before the bit limit.
func (br *BitReader) NextBit() (byte, error) {
	if !br.HasNextBit() {
		if br.err != nil {
			return 0, br.err
		}
		return 0, io.EOF
	}

	var b bool
	if br.peeked {
		b, br.peeked = br.next, false
	} else {
		var err error
		b, err = br.r.ReadBool()
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			br.err = err
			return 0, err
		}
	}

	if b {
		return 1, nil
	}
	return 0, nil
}

// Err returns the first error other than running out of bits, if any.
func (br *BitReader) Err() error {
	return br.err
}

var (
	_ BitSink   = (*BitWriter)(nil)
	_ io.Closer = (*BitWriter)(nil)
	_ BitSource = (*BitReader)(nil)
	_ errSource = (*BitReader)(nil)
)
