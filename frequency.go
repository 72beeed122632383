package huffman

import (
	"io"
)

// FrequencyTable holds the number of occurrences of each Symbol.  A count of
// zero means the symbol does not appear and gets no code.
type FrequencyTable [NumSymbols]uint64

// Add counts every byte of data.
func (freqs *FrequencyTable) Add(data []byte) {
	for _, ch := range data {
		freqs[ch]++
	}
}

// NumSymbols returns the number of symbols with a non-zero count.
func (freqs *FrequencyTable) NumSymbols() int {
	var n int
	for _, freq := range freqs {
		if freq != 0 {
			n++
		}
	}
	return n
}

// Total returns the sum of all counts.
func (freqs *FrequencyTable) Total() uint64 {
	var sum uint64
	for _, freq := range freqs {
		sum += freq
	}
	return sum
}

// CountFrequencies reads r to EOF and counts the occurrences of each byte.
func CountFrequencies(r io.Reader) (FrequencyTable, error) {
	var freqs FrequencyTable
	var buf [4096]byte
	for {
		n, err := r.Read(buf[:])
		freqs.Add(buf[:n])
		if err == io.EOF {
			return freqs, nil
		}
		if err != nil {
			return freqs, err
		}
	}
}
