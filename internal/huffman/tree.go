package huffman

import (
	"cmp"
	"fmt"

	"github.com/abhinav/huffpack/internal/ordseq"
)

// Node is a node in a Huffman tree.
//
// Leaf nodes have no children and hold a single symbol.
// Branch nodes have exactly two children.
type Node struct {
	// Symbol held by a leaf node.
	// This is meaningless for branch nodes.
	Symbol Symbol

	// Frequency of the leaf node's symbol, or the combined frequency of
	// the leaf nodes of a branch node.
	Freq int

	// Children of a branch node. Both are nil for leaf nodes.
	Left, Right *Node

	// Smallest symbol under this node.
	// Used only to break ties between nodes with the same frequency.
	rep Symbol
}

// IsLeaf reports whether this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Representative returns the smallest symbol held by a leaf of this node.
func (n *Node) Representative() Symbol {
	return n.rep
}

func (n *Node) String() string {
	if n.IsLeaf() {
		return fmt.Sprintf("leaf(%d: %d)", n.Symbol, n.Freq)
	}
	return fmt.Sprintf("branch(%d: %v, %v)", n.Freq, n.Left, n.Right)
}

// compareNodes orders nodes by frequency,
// breaking ties by representative symbol.
func compareNodes(a, b *Node) int {
	if c := cmp.Compare(a.Freq, b.Freq); c != 0 {
		return c
	}
	return cmp.Compare(a.rep, b.rep)
}

// BuildTree builds a Huffman tree for the symbols in the given table
// and returns its root.
//
// It returns nil if no symbol has a non-zero count,
// and a lone leaf if only one symbol does.
//
// The tree is fully determined by the table:
// nodes are merged lowest (frequency, representative) first,
// and the lower of each merged pair becomes the left child.
func BuildTree(ft *FrequencyTable) *Node {
	// This implements Huffman coding with a priority queue
	// using the method outlined on Wikipedia [1].
	// The queue is an ordered sequence so that ties resolve the same way
	// on every run.
	//
	// [1]: https://en.wikipedia.org/wiki/Huffman_coding#Basic_technique
	queue := ordseq.New(compareNodes)
	for i, freq := range ft {
		if freq <= 0 {
			continue
		}
		sym := Symbol(i)
		mustInsert(queue, &Node{Symbol: sym, Freq: freq, rep: sym})
	}

	if queue.IsEmpty() {
		return nil
	}

	// Every queued node's representative is a symbol from its own subtree,
	// and the subtrees are disjoint,
	// so no two queued nodes ever have the same key.
	for queue.Len() > 1 {
		left := mustPop(queue)
		right := mustPop(queue)
		mustInsert(queue, &Node{
			Freq:  left.Freq + right.Freq,
			Left:  left,
			Right: right,
			rep:   min(left.rep, right.rep),
		})
	}

	return mustPop(queue)
}

func mustInsert(queue *ordseq.Sequence[*Node], n *Node) {
	if !queue.Insert(n) {
		panic(fmt.Sprintf("huffman: duplicate node key (%d, %d)", n.Freq, n.rep))
	}
}

func mustPop(queue *ordseq.Sequence[*Node]) *Node {
	n, err := queue.PopAt(0)
	if err != nil {
		panic(fmt.Sprintf("huffman: %v", err))
	}
	return n
}
