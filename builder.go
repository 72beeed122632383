package huffman

import (
	"container/heap"
	"math"

	"github.com/chronos-tachyon/assert"
)

// BuildFromFrequencies builds the Huffman tree for the given frequencies.
//
// The construction is deterministic: nodes are merged in ascending order of
// weight, and among nodes of equal weight the one that entered the forest
// first is taken first.  Leaves enter in ascending symbol order, and each
// merged node enters after every node that exists at the time of the merge.
// The first node taken becomes the left child.
//
// If only one symbol has a non-zero frequency, the tree is a single leaf and
// that symbol's code is empty.
//
func BuildFromFrequencies(freqs FrequencyTable) (*Tree, error) {
	nodes := make([]weightedNode, 0, NumSymbols)
	var seq uint32
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if freq := freqs[symbol]; freq != 0 {
			node := &Node{symbol: Symbol(symbol), weight: freq, leaf: true}
			nodes = append(nodes, weightedNode{node, seq})
			seq++
		}
	}
	if len(nodes) == 0 {
		return nil, ErrEmptyAlphabet
	}

	h := weightHeap{nodes}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(weightedNode)
		b := heap.Pop(&h).(weightedNode)

		// Compute weightSum using saturating addition
		weightSum := a.node.weight + b.node.weight
		if weightSum < a.node.weight {
			weightSum = math.MaxUint64
		}

		node := &Node{left: a.node, right: b.node, weight: weightSum}
		heap.Push(&h, weightedNode{node, seq})
		seq++
	}

	assert.Assertf(h.Len() == 1, "expected exactly 1 node left in the forest, got %d", h.Len())
	root := heap.Pop(&h).(weightedNode)
	return newTree(root.node), nil
}

// TableEntry is one (Symbol, Code) pair of a code table.
type TableEntry struct {
	Symbol Symbol
	Code   Code
}

// BuildFromTable rebuilds a tree by replaying the given code table.  The
// entries may appear in any order.
func BuildFromTable(entries []TableEntry) (*Tree, error) {
	var b TableBuilder
	for _, entry := range entries {
		if err := b.Add(entry.Symbol, entry.Code); err != nil {
			return nil, err
		}
	}
	return b.Tree()
}

// TableBuilder accumulates code table entries one at a time.  The zero value
// is an empty builder ready to use.
type TableBuilder struct {
	root *Node
	seen [NumSymbols]bool
}

// Add places symbol at the position in the tree addressed by hc, creating
// internal nodes along the way as needed.  After Add returns an error the
// builder is left in an unspecified state and should be discarded.
func (b *TableBuilder) Add(symbol Symbol, hc Code) error {
	if _, err := ParseCode(string(hc)); err != nil {
		return &FormatError{Problem: err.Error()}
	}
	if b.seen[symbol] {
		return formatErrorf(0, "symbol %d appears more than once", symbol)
	}

	slot := &b.root
	for i := 0; i < hc.Len(); i++ {
		if *slot == nil {
			*slot = &Node{}
		} else if (*slot).leaf {
			return formatErrorf(0, "code %s of symbol %d extends the code %s of symbol %d", hc, symbol, hc[:i], (*slot).symbol)
		}
		if hc.Bit(i) == 0 {
			slot = &(*slot).left
		} else {
			slot = &(*slot).right
		}
	}

	if existing := *slot; existing != nil {
		if existing.leaf {
			return formatErrorf(0, "code %s is assigned to both symbol %d and symbol %d", hc, existing.symbol, symbol)
		}
		return formatErrorf(0, "code %s of symbol %d is a prefix of another code", hc, symbol)
	}

	*slot = &Node{symbol: symbol, leaf: true}
	b.seen[symbol] = true
	return nil
}

// Tree finishes the build.  Every internal node must have ended up with both
// of its children; a table that leaves a gap is rejected.
func (b *TableBuilder) Tree() (*Tree, error) {
	if b.root == nil {
		return nil, ErrEmptyAlphabet
	}

	type gapItem struct {
		node *Node
		path Code
	}

	stack := []gapItem{{b.root, ""}}
	for len(stack) != 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if item.node.leaf {
			continue
		}
		if item.node.left == nil || item.node.right == nil {
			var missing Code
			if item.node.left == nil {
				missing = item.path + "0"
			} else {
				missing = item.path + "1"
			}
			return nil, formatErrorf(0, "code table is incomplete: no code starts with %s", missing)
		}
		stack = append(stack, gapItem{item.node.right, item.path + "1"}, gapItem{item.node.left, item.path + "0"})
	}

	return newTree(b.root), nil
}

// type weightedNode + type weightHeap {{{

type weightedNode struct {
	node *Node
	seq  uint32
}

type weightHeap struct {
	list []weightedNode
}

func (h *weightHeap) Init() {
	heap.Init(h)
}

func (h *weightHeap) Len() int {
	return len(h.list)
}

func (h *weightHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *weightHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.node.weight != b.node.weight {
		return a.node.weight < b.node.weight
	}
	return a.seq < b.seq
}

func (h *weightHeap) Push(x interface{}) {
	h.list = append(h.list, x.(weightedNode))
}

func (h *weightHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = weightedNode{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*weightHeap)(nil)

// }}}
