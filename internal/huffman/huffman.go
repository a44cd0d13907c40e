// Package huffman implements binary Huffman coding over byte symbols.
//
// It builds a prefix-free code from symbol frequencies.
// Prefix-free codes are codes where for any two codes X and Y,
// there's a guarantee that X is not a prefix of Y.
// This allows a stream of concatenated codes to be decoded unambiguously
// one bit at a time.
//
// Tree construction is deterministic:
// the same FrequencyTable always produces the same tree,
// so a decoder can rebuild the exact tree used by the encoder
// from the frequencies alone.
package huffman

// NumSymbols is the size of the symbol alphabet.
const NumSymbols = 256

// Symbol is a single input byte value.
type Symbol = byte

// FrequencyTable holds the number of occurrences of each symbol.
//
// Symbols with a count of zero are absent from the input
// and from any structure derived from the table.
type FrequencyTable [NumSymbols]int

// CountFrequencies counts the occurrences of each symbol in data.
func CountFrequencies(data []byte) FrequencyTable {
	var ft FrequencyTable
	for _, b := range data {
		ft[b]++
	}
	return ft
}

// Total returns the sum of all counts.
// For a table built with CountFrequencies, this is the input length.
func (ft *FrequencyTable) Total() int {
	var total int
	for _, n := range ft {
		total += n
	}
	return total
}

// Symbols returns the symbols with a non-zero count in ascending order.
func (ft *FrequencyTable) Symbols() []Symbol {
	var syms []Symbol
	for i, n := range ft {
		if n > 0 {
			syms = append(syms, Symbol(i))
		}
	}
	return syms
}

// Distinct returns the number of symbols with a non-zero count.
func (ft *FrequencyTable) Distinct() int {
	var n int
	for _, count := range ft {
		if count > 0 {
			n++
		}
	}
	return n
}
