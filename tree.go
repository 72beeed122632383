package huffman

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/chronos-tachyon/assert"
)

// Node is one node of a code tree.  A leaf carries a Symbol; an internal node
// owns exactly two children.
type Node struct {
	left   *Node
	right  *Node
	weight uint64
	symbol Symbol
	leaf   bool
}

// IsLeaf returns true iff this node carries a symbol and has no children.
func (n *Node) IsLeaf() bool {
	return n.leaf
}

// Symbol returns the symbol of a leaf.  For internal nodes the result is
// meaningless.
func (n *Node) Symbol() Symbol {
	return n.symbol
}

// Weight is the aggregate frequency of all leaves under this node.  It is
// only meaningful for trees built from frequencies.
func (n *Node) Weight() uint64 {
	return n.weight
}

// Left returns the child reached by a 0 bit, or nil for a leaf.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the child reached by a 1 bit, or nil for a leaf.
func (n *Node) Right() *Node {
	return n.right
}

// Child returns the left child if bit is 0 and the right child if bit is 1.
// Calling Child on a leaf fails with ErrStructural.
func (n *Node) Child(bit byte) (*Node, error) {
	if n.leaf {
		return nil, fmt.Errorf("%w: leaf for symbol %d", ErrStructural, n.symbol)
	}
	switch bit {
	case 0:
		return n.left, nil
	case 1:
		return n.right, nil
	default:
		return nil, fmt.Errorf("%w: invalid bit value %d", ErrStructural, bit)
	}
}

// Tree is a Huffman code tree over the byte alphabet.  A Tree is never
// modified after it has been built, so it may be shared freely.
type Tree struct {
	root       *Node
	numSymbols int
	minSize    int
	maxSize    int
}

func newTree(root *Node) *Tree {
	t := &Tree{root: root}
	first := true
	_ = t.Walk(func(symbol Symbol, hc Code) error {
		size := hc.Len()
		if first {
			first = false
			t.minSize, t.maxSize = size, size
		} else if t.minSize > size {
			t.minSize = size
		} else if t.maxSize < size {
			t.maxSize = size
		}
		t.numSymbols++
		return nil
	})
	return t
}

// Root returns the root node of this tree.
func (t *Tree) Root() *Node {
	return t.root
}

// NumSymbols is the number of leaves in this tree.
func (t *Tree) NumSymbols() int {
	return t.numSymbols
}

// MinSize is the bit length of the shortest code.
func (t *Tree) MinSize() int {
	return t.minSize
}

// MaxSize is the bit length of the longest code.
func (t *Tree) MaxSize() int {
	return t.maxSize
}

// Walk calls fn once for each leaf, in depth-first order with the left
// subtree visited before the right one.  The Code passed to fn is the path
// from the root to that leaf.  Walk stops at the first error from fn.
func (t *Tree) Walk(fn func(symbol Symbol, hc Code) error) error {
	// Codes can be up to 255 bits long, so the walk uses an explicit stack.
	//
	// walkItem.x keeps track of where we are at each level:
	//   x=0 → We just arrived at this node for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children
	//
	// The invariant len(path) == len(stack)-1 holds between iterations.

	type walkItem struct {
		node *Node
		x    byte
	}

	stack := make([]walkItem, 0, log2(t.numSymbols)+1)
	path := make([]byte, 0, log2(t.numSymbols))

	pop := func() {
		stack = stack[:len(stack)-1]
		if len(stack) != 0 {
			path = path[:len(path)-1]
		}
	}

	stack = append(stack, walkItem{node: t.root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		node := top.node
		if node.leaf {
			if err := fn(node.symbol, Code(path)); err != nil {
				return err
			}
			pop()
			continue
		}

		assert.Assertf(node.left != nil && node.right != nil, "internal node at %q is missing a child", string(path))

		x := top.x
		top.x++
		switch x {
		case 0:
			path = append(path, '0')
			stack = append(stack, walkItem{node: node.left})
		case 1:
			path = append(path, '1')
			stack = append(stack, walkItem{node: node.right})
		case 2:
			pop()
		}
	}
	return nil
}

// Codes returns the code assigned to each symbol that appears in the tree.
func (t *Tree) Codes() map[Symbol]Code {
	out := make(map[Symbol]Code, t.numSymbols)
	_ = t.Walk(func(symbol Symbol, hc Code) error {
		out[symbol] = hc
		return nil
	})
	return out
}

// Entries returns the tree's code table, in the same order SaveTable writes
// it.
func (t *Tree) Entries() []TableEntry {
	out := make([]TableEntry, 0, t.numSymbols)
	_ = t.Walk(func(symbol Symbol, hc Code) error {
		out = append(out, TableEntry{Symbol: symbol, Code: hc})
		return nil
	})
	return out
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer.  Symbols are listed in ascending order.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	codes := t.Codes()
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tNumSymbols() = %d\n", t.numSymbols)
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.maxSize)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if hc, found := codes[Symbol(symbol)]; found {
			fmt.Fprintf(&buf, "\tCode(%d) = %s\n", symbol, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// DebugString returns the output of Dump as a string.
func (t *Tree) DebugString() string {
	var buf bytes.Buffer
	_, _ = t.Dump(&buf)
	return buf.String()
}

// String returns a short human-readable description of the tree.
func (t *Tree) String() string {
	return fmt.Sprintf("(Huffman tree with %d symbols, with code lengths of %d .. %d bits)", t.numSymbols, t.minSize, t.maxSize)
}

// MarshalJSON encodes the tree as an object mapping each symbol (as a
// decimal string) to its code.
func (t *Tree) MarshalJSON() ([]byte, error) {
	obj := make(map[string]string, t.numSymbols)
	for symbol, hc := range t.Codes() {
		obj[strconv.Itoa(int(symbol))] = string(hc)
	}
	return json.Marshal(obj)
}

// UnmarshalJSON rebuilds the tree from the form written by MarshalJSON.
func (t *Tree) UnmarshalJSON(raw []byte) error {
	var obj map[string]string
	if err := json.Unmarshal(raw, &obj); err != nil {
		return err
	}

	var b TableBuilder
	for key, value := range obj {
		symbol, err := parseSymbol(key)
		if err != nil {
			return &FormatError{Problem: err.Error()}
		}
		hc, err := ParseCode(value)
		if err != nil {
			return &FormatError{Problem: err.Error()}
		}
		if err := b.Add(symbol, hc); err != nil {
			return err
		}
	}

	tree, err := b.Tree()
	if err != nil {
		return err
	}
	*t = *tree
	return nil
}

var (
	_ fmt.Stringer     = (*Tree)(nil)
	_ json.Marshaler   = (*Tree)(nil)
	_ json.Unmarshaler = (*Tree)(nil)
)
