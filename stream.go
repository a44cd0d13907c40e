package huffpack

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

//go:generate mockgen -destination huffpacktest/mock_stream.go -package huffpacktest github.com/abhinav/huffpack Source,Sink

// Source supplies the data to compress.
type Source interface {
	// ReadAll returns all remaining data.
	ReadAll() ([]byte, error)
}

// ReaderSource is a Source that reads from an io.Reader.
type ReaderSource struct{ R io.Reader }

var _ Source = ReaderSource{}

// ReadAll reads from the reader until EOF.
func (s ReaderSource) ReadAll() ([]byte, error) {
	return io.ReadAll(s.R)
}

// Sink receives the parts of a compressed artifact.
//
// WriteHeader is called first, followed by WritePackedBits.
// Close is always called, even if an earlier write failed.
type Sink interface {
	// WriteHeader writes the frequency header
	// and the number of meaningful payload bits.
	WriteHeader(header string, bitCount int) error

	// WritePackedBits writes the packed payload.
	WritePackedBits(packed []byte) error

	// Close flushes any buffered data.
	Close() error
}

// CompressTo reads all data from src, compresses it, and writes it to dst.
//
// dst is closed before CompressTo returns, even if it fails.
func CompressTo(src Source, dst Sink) (a Artifact, err error) {
	defer multierr.AppendInvoke(&err, multierr.Close(dst))

	data, err := src.ReadAll()
	if err != nil {
		return a, fmt.Errorf("read input: %w", err)
	}

	a, err = Compress(data)
	if err != nil {
		return a, fmt.Errorf("compress: %w", err)
	}

	if err := dst.WriteHeader(a.Header, a.BitCount); err != nil {
		return a, fmt.Errorf("write header: %w", err)
	}

	if err := dst.WritePackedBits(a.Payload); err != nil {
		return a, fmt.Errorf("write payload: %w", err)
	}

	return a, nil
}

// StreamSink is a Sink that writes artifacts to an io.Writer
// in the following format:
//
//	<header>\n
//	<bit count>\n
//	<payload>
//
// The header and the bit count are plain text.
// The payload is binary and runs to the end of the stream.
// ReadArtifact reads this format.
type StreamSink struct {
	w      *bufio.Writer
	header bool
}

var _ Sink = (*StreamSink)(nil)

// NewStreamSink builds a StreamSink that writes to w.
//
// Writes are buffered until Close.
// Close does not close w.
func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header and bit count lines.
func (s *StreamSink) WriteHeader(header string, bitCount int) error {
	if s.header {
		return errors.New("header already written")
	}
	if strings.ContainsRune(header, '\n') {
		return fmt.Errorf("header must be a single line: %q", header)
	}
	s.header = true

	s.w.WriteString(header)
	s.w.WriteByte('\n')
	s.w.WriteString(strconv.Itoa(bitCount))
	return s.w.WriteByte('\n')
}

// WritePackedBits writes the payload.
// It must be called after WriteHeader.
func (s *StreamSink) WritePackedBits(packed []byte) error {
	if !s.header {
		return errors.New("payload written before header")
	}
	_, err := s.w.Write(packed)
	return err
}

// Close flushes buffered data to the underlying writer.
func (s *StreamSink) Close() error {
	return s.w.Flush()
}

// ReadArtifact reads an artifact written by StreamSink.
//
// It fails with ErrMalformedHeader if the header or bit count lines are
// missing or invalid,
// and with ErrTruncatedBitstream if the payload is shorter than the bit
// count requires.
func ReadArtifact(r io.Reader) (Artifact, error) {
	br := bufio.NewReader(r)

	header, err := readLine(br)
	if err != nil {
		return Artifact{}, fmt.Errorf("read header: %w", err)
	}

	countText, err := readLine(br)
	if err != nil {
		return Artifact{}, fmt.Errorf("read bit count: %w", err)
	}

	bitCount, err := strconv.Atoi(countText)
	if err != nil || bitCount < 0 {
		return Artifact{}, fmt.Errorf("bad bit count %q: %w", countText, ErrMalformedHeader)
	}

	payload, err := io.ReadAll(br)
	if err != nil {
		return Artifact{}, fmt.Errorf("read payload: %w", err)
	}

	if want := (bitCount + 7) / 8; len(payload) < want {
		return Artifact{}, fmt.Errorf("payload has %d bytes, need %d: %w", len(payload), want, ErrTruncatedBitstream)
	}

	return Artifact{
		Header:   header,
		BitCount: bitCount,
		Payload:  payload,
	}, nil
}

// DecompressFrom reads an artifact written by StreamSink from r
// and decompresses it.
func DecompressFrom(r io.Reader) ([]byte, error) {
	a, err := ReadArtifact(r)
	if err != nil {
		return nil, err
	}
	return Decompress(a)
}

// readLine reads a newline-terminated line, dropping the newline.
// A line cut off by the end of the stream is malformed.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("unexpected end of input: %w", ErrMalformedHeader)
		}
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}
