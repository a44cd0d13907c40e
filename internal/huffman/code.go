package huffman

// Code is a sequence of bits, written as a string of '0' and '1'
// characters, first bit first.
type Code string

// CodeTable maps each symbol to its code.
// Symbols that don't appear in the tree have an empty code.
type CodeTable [NumSymbols]Code

// BuildCodeTable builds the code table for a Huffman tree.
//
// The code for a symbol is the path from the root to its leaf,
// with '0' for every left branch and '1' for every right branch.
// If the tree is a lone leaf, its symbol gets the code "0"
// so that every occurrence still takes up one bit.
// A nil tree produces an empty table.
func BuildCodeTable(root *Node) *CodeTable {
	var table CodeTable
	if root == nil {
		return &table
	}

	if root.IsLeaf() {
		table[root.Symbol] = "0"
		return &table
	}

	// Leaves copy the path into a string
	// (appending for siblings will mutate the backing array).
	var walk func(*Node, []byte)
	walk = func(n *Node, path []byte) {
		if n.IsLeaf() {
			table[n.Symbol] = Code(path)
			return
		}

		walk(n.Left, append(path, '0'))
		walk(n.Right, append(path, '1'))
	}
	walk(root, nil)

	return &table
}

// Lookup returns the code for the given symbol,
// and false if the symbol has no code.
func (t *CodeTable) Lookup(sym Symbol) (Code, bool) {
	c := t[sym]
	return c, len(c) > 0
}
