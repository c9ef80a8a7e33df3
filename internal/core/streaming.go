package core

// streaming.go holds the reader chain every CSV passes through before it
// reaches encoding/csv:
//
//	source -> BOMSkippingReader -> StreamingUTF8Sanitizer -> StreamingCountingReader
//
// Each stage works on the caller's buffer so memory stays bounded by the csv
// reader's buffer regardless of file size.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BOMSkippingReader drops a leading UTF-8 byte order mark.
type BOMSkippingReader struct {
	br      *bufio.Reader
	checked bool
}

// NewBOMSkippingReader wraps r.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{br: bufio.NewReader(r)}
}

// Read implements io.Reader.
func (r *BOMSkippingReader) Read(p []byte) (int, error) {
	if !r.checked {
		r.checked = true
		head, err := r.br.Peek(len(utf8BOM))
		if bytes.Equal(head, utf8BOM) {
			_, _ = r.br.Discard(len(utf8BOM))
		} else if err != nil && err != io.EOF {
			return 0, err
		}
	}
	return r.br.Read(p)
}

// StreamingUTF8Sanitizer replaces every invalid UTF-8 byte with '?'. A
// multi-byte sequence split across two reads is carried over rather than
// treated as invalid. Buffers passed to Read must hold at least utf8.UTFMax
// bytes.
type StreamingUTF8Sanitizer struct {
	reader  io.Reader
	pending []byte
}

// NewStreamingUTF8Sanitizer wraps r.
func NewStreamingUTF8Sanitizer(r io.Reader) *StreamingUTF8Sanitizer {
	return &StreamingUTF8Sanitizer{reader: r, pending: make([]byte, 0, utf8.UTFMax)}
}

// Read implements io.Reader.
func (s *StreamingUTF8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	offset := copy(p, s.pending)
	s.pending = s.pending[:0]

	n, err := s.reader.Read(p[offset:])
	n += offset
	if n == 0 {
		return 0, err
	}

	data := p[:n]
	if isASCII(data) {
		return n, err
	}

	atEOF := err == io.EOF
	write := 0
	for read := 0; read < len(data); {
		rest := data[read:]
		if !atEOF && !utf8.FullRune(rest) {
			s.pending = append(s.pending, rest...)
			break
		}
		r, size := utf8.DecodeRune(rest)
		if r == utf8.RuneError && size == 1 {
			data[write] = '?'
			write++
			read++
			continue
		}
		copy(data[write:], rest[:size])
		write += size
		read += size
	}

	// A read that only produced a partial rune is retried so callers do not
	// see (0, nil).
	if write == 0 && err == nil && len(s.pending) > 0 && len(p) > len(s.pending) {
		return s.Read(p)
	}
	return write, err
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// StreamingCountingReader counts the bytes that pass through it.
type StreamingCountingReader struct {
	reader    io.Reader
	BytesRead int64
	Total     int64 // 0 when unknown
}

// NewStreamingCountingReader wraps r. total may be 0.
func NewStreamingCountingReader(r io.Reader, total int64) *StreamingCountingReader {
	return &StreamingCountingReader{reader: r, Total: total}
}

// Read implements io.Reader.
func (r *StreamingCountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}

// Progress returns percent read, or 0 when the total is unknown.
func (r *StreamingCountingReader) Progress() int {
	if r.Total <= 0 {
		return 0
	}
	pct := int(r.BytesRead * 100 / r.Total)
	if pct > 100 {
		pct = 100
	}
	return pct
}

// WrapForStreaming builds the full reader chain. The BOM is stripped before
// sanitising so its bytes are never rewritten to '?'.
func WrapForStreaming(r io.Reader, totalSize int64) *StreamingCountingReader {
	return NewStreamingCountingReader(NewStreamingUTF8Sanitizer(NewBOMSkippingReader(r)), totalSize)
}
