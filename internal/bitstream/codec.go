package bitstream

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/abhinav/huffpack/internal/huffman"
	"github.com/icza/bitio"
)

// ErrUnknownSymbol indicates that the input contains a symbol
// that has no code in the code table.
var ErrUnknownSymbol = errors.New("symbol has no code")

// Pack encodes data with the given code table.
//
// The codes for each symbol are concatenated in input order
// and packed most significant bit first.
// If the last byte is only partially filled, it is padded with zeros.
// bitCount reports the number of bits before padding.
func Pack(data []byte, codes *huffman.CodeTable) (packed []byte, bitCount int, err error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)

	for i, sym := range data {
		code, ok := codes.Lookup(sym)
		if !ok {
			return nil, 0, fmt.Errorf("byte %d (%d): %w", i, sym, ErrUnknownSymbol)
		}

		for j := 0; j < len(code); j++ {
			if err := w.WriteBool(code[j] == '1'); err != nil {
				return nil, 0, fmt.Errorf("write bit: %w", err)
			}
		}
		bitCount += len(code)
	}

	// Close pads the final byte. It doesn't close buf.
	if err := w.Close(); err != nil {
		return nil, 0, fmt.Errorf("flush bits: %w", err)
	}

	return buf.Bytes(), bitCount, nil
}

// Unpack decodes the first bitCount bits of packed
// by walking the tree rooted at root:
// a 0 bit moves to the left child, a 1 bit to the right child,
// and reaching a leaf emits its symbol and restarts from the root.
//
// If root is a lone leaf, every 0 bit decodes to its symbol
// and a 1 bit is an error.
// Bytes in packed after the first bitCount bits are ignored.
func Unpack(root *huffman.Node, bitCount int, packed []byte) ([]byte, error) {
	if bitCount < 0 {
		return nil, fmt.Errorf("negative bit count %d: %w", bitCount, ErrMalformedHeader)
	}

	if root == nil {
		if bitCount > 0 {
			return nil, fmt.Errorf("%d bits to decode but no symbols: %w", bitCount, ErrMalformedHeader)
		}
		return nil, nil
	}

	if avail := len(packed) * 8; avail < bitCount {
		return nil, fmt.Errorf("need %d bits, have %d: %w", bitCount, avail, ErrTruncatedBitstream)
	}

	// Every symbol takes at least one bit,
	// so bitCount bounds the output even if the header lies.
	out := make([]byte, 0, min(root.Freq, bitCount))
	r := bitio.NewReader(bytes.NewReader(packed))

	node := root
	for i := 0; i < bitCount; i++ {
		right, err := r.ReadBool()
		if err != nil {
			return nil, fmt.Errorf("read bit %d: %w: %w", i, ErrTruncatedBitstream, err)
		}

		if root.IsLeaf() {
			if right {
				return nil, fmt.Errorf("bit %d: 1 bit for a single-symbol tree: %w", i, ErrTruncatedBitstream)
			}
			out = append(out, root.Symbol)
			continue
		}

		if right {
			node = node.Right
		} else {
			node = node.Left
		}

		if node.IsLeaf() {
			out = append(out, node.Symbol)
			node = root
		}
	}

	if node != root {
		return nil, fmt.Errorf("bitstream ends inside a code: %w", ErrTruncatedBitstream)
	}

	if len(out) != root.Freq {
		return nil, fmt.Errorf("decoded %d symbols, header has %d: %w", len(out), root.Freq, ErrInconsistentTree)
	}

	return out, nil
}
