// Package bitstream serializes Huffman-coded data.
//
// Compressed data has two parts:
// a textual header holding the symbol frequencies,
// and a payload of codes packed eight bits to a byte,
// most significant bit first.
// The exact number of meaningful payload bits is carried separately
// so that padding in the last byte is never decoded.
package bitstream

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/abhinav/huffpack/internal/huffman"
)

var (
	// ErrMalformedHeader indicates that a header could not be parsed
	// into symbol frequencies, or that it disagrees with the payload.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrTruncatedBitstream indicates that the payload ended before
	// all the expected bits or codes were read.
	ErrTruncatedBitstream = errors.New("truncated bitstream")

	// ErrInconsistentTree indicates that decoding the payload
	// didn't produce as many symbols as the header promised.
	ErrInconsistentTree = errors.New("inconsistent tree")
)

// FormatHeader renders the frequency table as a header.
//
// The header lists "<symbol> <count>" for every symbol with a non-zero
// count, in ascending symbol order, separated by single spaces.
// An empty table produces an empty header.
//
//	"aaabbbbcc" => "97 3 98 4 99 2"
func FormatHeader(ft *huffman.FrequencyTable) string {
	var sb strings.Builder
	for _, sym := range ft.Symbols() {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(int(sym)))
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(ft[sym]))
	}
	return sb.String()
}

// ParseHeader parses a header produced by FormatHeader.
//
// Pairs may be separated by any whitespace and appear in any order,
// but each symbol may appear only once.
// Counts of zero are accepted and leave the symbol absent.
func ParseHeader(text string) (huffman.FrequencyTable, error) {
	var ft huffman.FrequencyTable

	fields := strings.Fields(text)
	if len(fields)%2 != 0 {
		return ft, fmt.Errorf("odd number of fields (%d): %w", len(fields), ErrMalformedHeader)
	}

	var (
		seen  [huffman.NumSymbols]bool
		total int
	)
	for i := 0; i < len(fields); i += 2 {
		symText, countText := fields[i], fields[i+1]

		sym, err := strconv.ParseUint(symText, 10, 8)
		if err != nil {
			return ft, fmt.Errorf("bad symbol %q: %w", symText, ErrMalformedHeader)
		}

		count, err := strconv.Atoi(countText)
		if err != nil {
			return ft, fmt.Errorf("bad count %q for symbol %d: %w", countText, sym, ErrMalformedHeader)
		}
		if count < 0 {
			return ft, fmt.Errorf("negative count %d for symbol %d: %w", count, sym, ErrMalformedHeader)
		}
		if count > math.MaxInt-total {
			return ft, fmt.Errorf("total count overflows at symbol %d: %w", sym, ErrMalformedHeader)
		}

		if seen[sym] {
			return ft, fmt.Errorf("symbol %d listed twice: %w", sym, ErrMalformedHeader)
		}
		seen[sym] = true

		ft[sym] = count
		total += count
	}

	return ft, nil
}
