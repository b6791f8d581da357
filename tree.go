package huffenc

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// NodeID is the index of a Node within its Tree.
type NodeID int32

// NoNode is the NodeID stored in the child fields of a leaf.
const NoNode = NodeID(-1)

// Node is one node of a Huffman tree.  A Node is a leaf iff both Left and
// Right are NoNode; an internal Node always has both children.
type Node struct {
	// Freq is the frequency of the leaf, or the sum of the frequencies of
	// all leaves below an internal node.
	Freq uint64

	// Symbol is the leaf's symbol.  It is InvalidSymbol for internal nodes.
	Symbol Symbol

	Left  NodeID
	Right NodeID
}

// InvalidSymbol is stored in the Symbol field of internal nodes.
const InvalidSymbol = Symbol(-1)

// IsLeaf returns true iff this Node has no children.
func (n Node) IsLeaf() bool {
	return n.Left == NoNode && n.Right == NoNode
}

// Tree is an immutable Huffman tree, stored as an arena of Nodes.  Leaves
// occupy IDs [0, numLeaves) in ascending Symbol order; internal nodes follow
// in the order they were merged, so the root is always the last Node.
type Tree struct {
	nodes     []Node
	numLeaves int
}

// BuildTree builds a Huffman tree from the given frequencies by repeatedly
// merging the two least frequent nodes.
//
// Ties are broken by NodeID: among nodes of equal frequency, the lowest ID
// is extracted first.  Leaves therefore win ties against internal nodes,
// lower Symbols win against higher ones, and older internal nodes win
// against newer ones.  The first node extracted becomes the Left child of
// the merged node and the second becomes the Right child.
//
// A single distinct symbol yields a tree whose root is that symbol's leaf.
// An empty Frequencies fails with ErrInvalidInput.
func BuildTree(freqs Frequencies) (*Tree, error) {
	if len(freqs) == 0 {
		return nil, fmt.Errorf("build Huffman tree: %w: no symbols", ErrInvalidInput)
	}

	symbols := freqs.Symbols()
	numLeaves := len(symbols)
	nodes := make([]Node, 0, 2*numLeaves-1)

	// Step 1: one leaf per symbol, pushed onto a minheap.

	h := freqHeap{list: make([]nodeAndFreq, 0, numLeaves)}
	for _, sym := range symbols {
		freq := freqs[sym]
		assert.Assertf(freq != 0, "symbol %v has a frequency of 0", sym)
		id := NodeID(len(nodes))
		nodes = append(nodes, Node{Freq: freq, Symbol: sym, Left: NoNode, Right: NoNode})
		h.list = append(h.list, nodeAndFreq{id, freq})
	}
	h.Init()

	// Step 2: pop the two lowest, merge them into a new internal node,
	// push it back.  Stop when one node remains.

	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeAndFreq)
		b := heap.Pop(&h).(nodeAndFreq)

		id := NodeID(len(nodes))
		freq := a.freq + b.freq
		nodes = append(nodes, Node{Freq: freq, Symbol: InvalidSymbol, Left: a.id, Right: b.id})
		heap.Push(&h, nodeAndFreq{id, freq})
	}

	root := heap.Pop(&h).(nodeAndFreq)
	assert.Assertf(int(root.id) == len(nodes)-1, "root %d is not the last node (%d nodes)", root.id, len(nodes))

	return &Tree{nodes: nodes, numLeaves: numLeaves}, nil
}

// Root returns the ID of the root node.
func (t *Tree) Root() NodeID {
	return NodeID(len(t.nodes) - 1)
}

// Node returns the Node with the given ID.
func (t *Tree) Node(id NodeID) Node {
	return t.nodes[id]
}

// Len returns the total number of nodes, leaves and internal.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NumLeaves returns the number of leaves, i.e. the number of distinct
// symbols.
func (t *Tree) NumLeaves() int {
	return t.numLeaves
}

// Walk visits every node depth-first, left before right, calling fn with
// the node's ID and its depth (the root has depth 0).  Walk stops early if
// fn returns false.
func (t *Tree) Walk(fn func(id NodeID, depth int) bool) {
	type stackItem struct {
		id    NodeID
		depth int
	}

	stack := make([]stackItem, 0, 32)
	stack = append(stack, stackItem{t.Root(), 0})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(top.id, top.depth) {
			return
		}
		n := t.nodes[top.id]
		if n.IsLeaf() {
			continue
		}
		// Push right first so that left is visited first.
		stack = append(stack, stackItem{n.Right, top.depth + 1})
		stack = append(stack, stackItem{n.Left, top.depth + 1})
	}
}

// Dump writes a programmer-readable debugging dump of the Tree to the given
// writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	t.Walk(func(id NodeID, depth int) bool {
		n := t.nodes[id]
		for i := 0; i <= depth; i++ {
			buf.WriteByte('\t')
		}
		if n.IsLeaf() {
			fmt.Fprintf(&buf, "[%d] %v freq=%d\n", id, n.Symbol, n.Freq)
		} else {
			fmt.Fprintf(&buf, "[%d] freq=%d\n", id, n.Freq)
		}
		return true
	})
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type nodeAndFreq + type freqHeap {{{

type nodeAndFreq struct {
	id   NodeID
	freq uint64
}

type freqHeap struct {
	list []nodeAndFreq
}

func (h *freqHeap) Init() {
	heap.Init(h)
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return a.id < b.id
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeAndFreq))
}

func (h *freqHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}
