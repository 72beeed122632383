// Command huffcode compresses and decompresses files with a Huffman code.
//
// Usage:
//
//     huffcode [-v] compress [-o base] <input>
//     huffcode [-v] decompress [-o output] <base>
//     huffcode [-v] table <input>
//     huffcode [-v] stats <input>
//
// "compress" writes the code table to <base>.code and the packed data to
// <base>.short; <base> defaults to the input path without its extension.
// "decompress" reads both files back and writes the original bytes to
// <output>, which defaults to <base>.new.
//
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	mathbits "math/bits"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	huffman "github.com/chronos-tachyon/hufftable"
	"github.com/chronos-tachyon/hufftable/internal/compare"
	"github.com/chronos-tachyon/hufftable/internal/container"
	"github.com/chronos-tachyon/hufftable/internal/logger"
)

const (
	codeSuffix  = ".code"
	shortSuffix = ".short"
	newSuffix   = ".new"
)

var (
	errUsage     = errors.New("usage error")
	errBadHeader = errors.New("header does not match the code table")
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("huffcode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "log debugging details")
	fs.Usage = func() { printUsage(stderr) }
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := logger.New(stderr, *verbose)
	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return 2
	}

	var err error
	switch rest[0] {
	case "compress":
		err = cmdCompress(log, rest[1:])
	case "decompress":
		err = cmdDecompress(log, rest[1:])
	case "table":
		err = cmdTable(rest[1:], stdout)
	case "stats":
		err = cmdStats(rest[1:], stdout)
	default:
		log.Errorf("unknown command %q", rest[0])
		printUsage(stderr)
		return 2
	}

	if errors.Is(err, errUsage) {
		printUsage(stderr)
		return 2
	}
	if err != nil {
		log.Errorf("%s: %v", rest[0], err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  huffcode [-v] compress [-o base] <input>")
	fmt.Fprintln(w, "  huffcode [-v] decompress [-o output] <base>")
	fmt.Fprintln(w, "  huffcode [-v] table <input>")
	fmt.Fprintln(w, "  huffcode [-v] stats <input>")
}

// parseSubcommand parses the flags of one subcommand and returns its single
// positional argument.
func parseSubcommand(name string, args []string, output *string) (string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if output != nil {
		fs.StringVar(output, "o", "", "output path")
	}
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%w: %s takes exactly one path", errUsage, name)
	}
	return fs.Arg(0), nil
}

func cmdCompress(log logger.Logger, args []string) error {
	var base string
	input, err := parseSubcommand("compress", args, &base)
	if err != nil {
		return err
	}
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	var freqs huffman.FrequencyTable
	freqs.Add(data)
	tree, err := huffman.BuildFromFrequencies(freqs)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	log.Debugf("built %v", tree)

	if err := writeFile(base+codeSuffix, func(w *bufio.Writer) error {
		return huffman.SaveTable(w, tree)
	}); err != nil {
		return err
	}

	codec := huffman.NewCodec(tree)
	header := container.Header{
		NumSymbols: uint64(len(data)),
		NumBits:    codec.EncodedBits(freqs),
	}
	if err := writeFile(base+shortSuffix, func(w *bufio.Writer) error {
		return writeShort(w, codec, header, data)
	}); err != nil {
		return err
	}

	log.Infof("%s: %d bytes -> %d payload bits (%s%s, %s%s)", input, len(data), header.NumBits, base, codeSuffix, base, shortSuffix)
	return nil
}

func writeShort(w io.Writer, codec *huffman.Codec, header container.Header, data []byte) error {
	if err := container.WriteHeader(w, header); err != nil {
		return err
	}
	bw := huffman.NewBitWriter(w)
	numBits, err := codec.EncodeTo(bw, data)
	if err2 := bw.Close(); err == nil {
		err = err2
	}
	if err != nil {
		return err
	}
	if numBits != header.NumBits {
		return fmt.Errorf("wrote %d bits, expected %d", numBits, header.NumBits)
	}
	return nil
}

func cmdDecompress(log logger.Logger, args []string) error {
	var output string
	base, err := parseSubcommand("decompress", args, &output)
	if err != nil {
		return err
	}
	base = strings.TrimSuffix(strings.TrimSuffix(base, shortSuffix), codeSuffix)
	if output == "" {
		output = base + newSuffix
	}

	tree, err := loadTree(base + codeSuffix)
	if err != nil {
		return err
	}
	log.Debugf("loaded %v", tree)

	f, err := os.Open(base + shortSuffix)
	if err != nil {
		return err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	header, err := container.ReadHeader(br)
	if err != nil {
		return fmt.Errorf("%s%s: %w", base, shortSuffix, err)
	}
	log.Debugf("header: %d symbols, %d bits", header.NumSymbols, header.NumBits)

	if err := writeFile(output, func(w *bufio.Writer) error {
		return readShort(w, br, tree, header)
	}); err != nil {
		return err
	}

	log.Infof("%s%s: %d bytes -> %s", base, shortSuffix, header.NumSymbols, output)
	return nil
}

func readShort(w io.ByteWriter, r io.Reader, tree *huffman.Tree, header container.Header) error {
	if err := checkHeader(header, tree); err != nil {
		return err
	}

	src := huffman.NewBitReader(r, int64(header.NumBits))
	codec := huffman.NewCodec(tree)
	if err := codec.DecodeN(src, w, int(header.NumSymbols)); err != nil {
		return err
	}
	if src.HasNextBit() {
		return fmt.Errorf("payload has bits left over after %d symbols", header.NumSymbols)
	}
	return nil
}

// checkHeader rejects a header whose counts cannot belong to a payload
// encoded with tree: every symbol costs between MinSize and MaxSize bits.
func checkHeader(header container.Header, tree *huffman.Tree) error {
	if header.NumSymbols > math.MaxInt {
		return fmt.Errorf("%w: symbol count %d is too large", errBadHeader, header.NumSymbols)
	}
	if header.NumBits > math.MaxInt64 {
		return fmt.Errorf("%w: bit count %d is too large", errBadHeader, header.NumBits)
	}

	hi, lo := mathbits.Mul64(header.NumSymbols, uint64(tree.MinSize()))
	if hi == 0 && header.NumBits < lo {
		return fmt.Errorf("%w: %d symbols need at least %d bits, header says %d", errBadHeader, header.NumSymbols, lo, header.NumBits)
	}
	if hi != 0 {
		return fmt.Errorf("%w: %d symbols need more bits than a header can hold", errBadHeader, header.NumSymbols)
	}

	hi, lo = mathbits.Mul64(header.NumSymbols, uint64(tree.MaxSize()))
	if hi == 0 && header.NumBits > lo {
		return fmt.Errorf("%w: %d symbols need at most %d bits, header says %d", errBadHeader, header.NumSymbols, lo, header.NumBits)
	}
	return nil
}

func loadTree(path string) (*huffman.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tree, err := huffman.LoadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

func cmdTable(args []string, stdout io.Writer) error {
	input, err := parseSubcommand("table", args, nil)
	if err != nil {
		return err
	}
	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	freqs, err := huffman.CountFrequencies(f)
	if err != nil {
		return err
	}
	tree, err := huffman.BuildFromFrequencies(freqs)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	return huffman.SaveTable(stdout, tree)
}

func cmdStats(args []string, stdout io.Writer) error {
	input, err := parseSubcommand("stats", args, nil)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	results, err := compare.Measure(data)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "method\tbytes\tratio\n")
	fmt.Fprintf(tw, "original\t%d\t%.3f\n", len(data), 1.0)
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%.3f\n", r.Method, r.Size, r.Ratio(len(data)))
	}
	return tw.Flush()
}

// writeFile creates path and passes it to fn.  The file is closed on every
// path out; if fn or Close fails, the partial file is removed.
func writeFile(path string, fn func(*bufio.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		return err
	}
	return bw.Flush()
}
