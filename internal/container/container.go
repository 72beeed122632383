// Package container implements the ".short" file layout used by huffcode.
//
// The Huffman payload carries no length information of its own, so the file
// starts with a fixed header that records it:
//
//     offset  size  field
//     0       4     magic "HUF1"
//     4       8     number of symbols (big-endian)
//     12      8     number of meaningful payload bits (big-endian)
//     20      ...   payload, most significant bit first, last byte 0-padded
//
package container

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Magic identifies a ".short" file.
const Magic = "HUF1"

// HeaderSize is the encoded size of a Header in bytes.
const HeaderSize = 20

// ErrBadMagic is returned by ReadHeader for input that is not a ".short" file.
var ErrBadMagic = errors.New("not a huffcode file: bad magic")

// Header describes the payload that follows it.
type Header struct {
	NumSymbols uint64
	NumBits    uint64
}

// PayloadSize returns the number of payload bytes needed to hold NumBits.
func (h Header) PayloadSize() uint64 {
	return (h.NumBits + 7) / 8
}

// WriteHeader writes h to w.
func WriteHeader(w io.Writer, h Header) error {
	var buf [HeaderSize]byte
	copy(buf[0:4], Magic)
	binary.BigEndian.PutUint64(buf[4:12], h.NumSymbols)
	binary.BigEndian.PutUint64(buf[12:20], h.NumBits)
	_, err := w.Write(buf[:])
	return err
}

// ReadHeader reads a Header from r.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, fmt.Errorf("failed to read header: %w", err)
	}
	if !bytes.Equal(buf[0:4], []byte(Magic)) {
		return Header{}, ErrBadMagic
	}
	return Header{
		NumSymbols: binary.BigEndian.Uint64(buf[4:12]),
		NumBits:    binary.BigEndian.Uint64(buf[12:20]),
	}, nil
}
