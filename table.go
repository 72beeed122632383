package huffman

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// SaveTable writes the code table of t to w.  Each leaf produces two lines:
// the symbol in decimal, then its code.  Leaves are written in depth-first
// order, left subtree first.
func SaveTable(w io.Writer, t *Tree) error {
	bw := bufio.NewWriter(w)
	err := t.Walk(func(symbol Symbol, hc Code) error {
		bw.WriteString(strconv.Itoa(int(symbol)))
		bw.WriteByte('\n')
		bw.WriteString(string(hc))
		return bw.WriteByte('\n')
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// ReadTable parses a code table written by SaveTable.  Lines are consumed in
// pairs until EOF.  A trailing "\r" on any line is ignored.
func ReadTable(r io.Reader) ([]TableEntry, error) {
	var entries []TableEntry
	sc := bufio.NewScanner(r)
	var lineNum int
	var symbol Symbol
	for sc.Scan() {
		lineNum++
		line := strings.TrimSuffix(sc.Text(), "\r")

		if lineNum%2 == 1 {
			u, err := strconv.ParseUint(line, 10, 8)
			if err != nil {
				return nil, formatErrorf(lineNum, "expected a symbol from 0 to %d, got %q", MaxSymbol, line)
			}
			symbol = Symbol(u)
			continue
		}

		hc, err := ParseCode(line)
		if err != nil {
			return nil, &FormatError{Line: lineNum, Problem: err.Error()}
		}
		entries = append(entries, TableEntry{Symbol: symbol, Code: hc})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if lineNum%2 == 1 {
		return nil, formatErrorf(lineNum, "symbol %d has no code line", symbol)
	}
	return entries, nil
}

// LoadTable parses a code table from r and rebuilds its tree.
//
// Every internal node of the rebuilt tree must end up with two children, so
// a table that leaves a gap is rejected with a FormatError.  In particular,
// a single symbol must have the empty code: tables from encoders that give a
// lone symbol a 1-bit code such as "0" do not load.
//
func LoadTable(r io.Reader) (*Tree, error) {
	var b TableBuilder
	entries, err := ReadTable(r)
	if err != nil {
		return nil, err
	}
	for i, entry := range entries {
		if err := b.Add(entry.Symbol, entry.Code); err != nil {
			if fe, ok := err.(*FormatError); ok {
				fe.Line = 2*i + 2
			}
			return nil, err
		}
	}
	return b.Tree()
}
