// Package huffpack compresses and decompresses bytes with Huffman coding.
//
// Compress counts how often each byte value occurs,
// builds a Huffman code from those counts,
// and returns an Artifact holding the counts as a textual header,
// the exact number of encoded bits,
// and the encoded bits packed eight to a byte.
// Decompress rebuilds the same code from the header
// and decodes the bits back into the original bytes.
//
//	a, err := huffpack.Compress([]byte("aaabbbbcc"))
//	// a.Header == "97 3 98 4 99 2"
//	// a.BitCount == 14
//	data, err := huffpack.Decompress(a)
//
// Artifacts may be written to and read from streams with
// CompressTo and ReadArtifact.
package huffpack

import (
	"fmt"

	"github.com/abhinav/huffpack/internal/bitstream"
	"github.com/abhinav/huffpack/internal/huffman"
	"github.com/abhinav/huffpack/internal/stringobj"
)

// Errors reported when decompressing invalid artifacts.
// Use errors.Is to match them.
var (
	ErrMalformedHeader    = bitstream.ErrMalformedHeader
	ErrTruncatedBitstream = bitstream.ErrTruncatedBitstream
	ErrInconsistentTree   = bitstream.ErrInconsistentTree
)

// Artifact is the compressed form of some data.
type Artifact struct {
	// Header lists "<symbol> <count>" pairs for every byte value
	// present in the original data, in ascending byte value order.
	Header string

	// BitCount is the number of meaningful bits in Payload.
	// Bits past BitCount are padding.
	BitCount int

	// Payload holds the encoded bits, most significant bit first.
	Payload []byte
}

func (a Artifact) String() string {
	var b stringobj.Builder
	b.Put("header", a.Header)
	b.Put("bitCount", a.BitCount)
	b.Put("payloadLen", len(a.Payload))
	return b.String()
}

// Compress compresses the given data.
//
// Empty data compresses to an empty header with no payload.
func Compress(data []byte) (Artifact, error) {
	ft := huffman.CountFrequencies(data)
	codes := huffman.BuildCodeTable(huffman.BuildTree(&ft))

	payload, bitCount, err := bitstream.Pack(data, codes)
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Header:   bitstream.FormatHeader(&ft),
		BitCount: bitCount,
		Payload:  payload,
	}, nil
}

// Decompress recovers the data that was compressed into the given
// artifact.
//
// It fails with ErrMalformedHeader, ErrTruncatedBitstream,
// or ErrInconsistentTree if the artifact is invalid.
func Decompress(a Artifact) ([]byte, error) {
	ft, err := bitstream.ParseHeader(a.Header)
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	data, err := bitstream.Unpack(huffman.BuildTree(&ft), a.BitCount, a.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return data, nil
}
