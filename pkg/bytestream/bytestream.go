// Package bytestream implements a bounds-checked cursor over an immutable byte buffer
package bytestream

import (
	"errors"
	"fmt"
	"io"
)

// Control characters used by the line and delimiter scanners
const (
	CR = '\r'
	LF = '\n'
	HN = '-'
)

var (
	// ErrInvalidArgument is returned when a caller passes an out-of-domain argument
	ErrInvalidArgument = errors.New("bytestream: invalid argument")
	// ErrOutOfRange is returned when an explicit move or peek leaves the buffer
	ErrOutOfRange = errors.New("bytestream: index out of range")
)

// Stream is a seekable cursor over a byte buffer.
//
// The buffer is referenced, never modified. Every slice handed back to the
// caller is an independent copy. Reads that run out of input return io.EOF
// rather than failing so scanning loops can treat end-of-stream as a normal
// branch.
type Stream struct {
	source   []byte
	length   int
	position int
}

// New creates a stream positioned at the start of buf
func New(buf []byte) *Stream {
	return &Stream{
		source: buf,
		length: len(buf),
	}
}

// Len returns the length of the underlying buffer
func (s *Stream) Len() int {
	return s.length
}

// Pos returns the current cursor position
func (s *Stream) Pos() int {
	return s.position
}

// EOS reports whether the cursor sits at the end of the buffer
func (s *Stream) EOS() bool {
	return s.position >= s.length
}

// Move shifts the cursor by delta bytes. Landing exactly on the end of the
// buffer is allowed.
func (s *Stream) Move(delta int) error {
	target := s.position + delta
	if target < 0 || target > s.length {
		return fmt.Errorf("%w: move %d from %d (length %d)", ErrOutOfRange, delta, s.position, s.length)
	}
	s.position = target
	return nil
}

// Peek returns the byte at position+offset without moving the cursor
func (s *Stream) Peek(offset int) (byte, error) {
	index := s.position + offset
	if index < 0 || index >= s.length {
		return 0, fmt.Errorf("%w: peek at %d (length %d)", ErrOutOfRange, index, s.length)
	}
	return s.source[index], nil
}

// Slice copies the bytes in [start, end).
//
// Negative indices count from the end of the buffer, both indices are
// clamped into [0, length] and an inverted range yields an empty slice.
func (s *Stream) Slice(start, end int) []byte {
	from := clamp(adjustIndex(start, s.length), s.length)
	to := clamp(adjustIndex(end, s.length), s.length)

	if to < from {
		return []byte{}
	}

	out := make([]byte, to-from)
	copy(out, s.source[from:to])
	return out
}

// ReadByte reads a single byte and advances the cursor
func (s *Stream) ReadByte() (byte, error) {
	if s.EOS() {
		return 0, io.EOF
	}

	b := s.source[s.position]
	s.position++
	return b, nil
}

// ReadN reads up to n bytes. A short read at the end of the buffer is not an
// error.
func (s *Stream) ReadN(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative read length %d", ErrInvalidArgument, n)
	}

	if s.EOS() {
		return nil, io.EOF
	}

	count := min(n, s.length-s.position)
	out := s.Slice(s.position, s.position+count)
	s.position += count
	return out, nil
}

// ReadLine reads up to the next LF, CR or CRLF and consumes the terminator
// without returning it. The remaining bytes form an implicit final line when
// no terminator is found.
func (s *Stream) ReadLine() ([]byte, error) {
	if s.EOS() {
		return nil, io.EOF
	}

	start := s.position
	for s.position < s.length {
		c := s.source[s.position]
		s.position++

		switch c {
		case LF:
			return s.Slice(start, s.position-1), nil
		case CR:
			if s.position < s.length && s.source[s.position] == LF {
				s.position++
				return s.Slice(start, s.position-2), nil
			}
			return s.Slice(start, s.position-1), nil
		}
	}

	return s.Slice(start, s.position), nil
}

// ReadUntil returns the bytes before the next occurrence of sequence and
// moves past the match.
//
// The search compares a window of len(sequence) bytes at every position.
// When the sequence is absent the cursor moves to the end of the buffer and
// io.EOF is returned; the scanned prefix is discarded.
func (s *Stream) ReadUntil(sequence []byte) ([]byte, error) {
	if len(sequence) == 0 {
		return nil, fmt.Errorf("%w: empty search sequence", ErrInvalidArgument)
	}

	if s.EOS() {
		return nil, io.EOF
	}

	start := s.position
	last := s.length - len(sequence)

	for s.position <= last {
		if Equal(sequence, s.source[s.position:s.position+len(sequence)]) {
			out := s.Slice(start, s.position)
			s.position += len(sequence)
			return out, nil
		}
		s.position++
	}

	s.position = s.length
	return nil, io.EOF
}

// Equal reports whether a and b hold the same bytes
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func adjustIndex(i, length int) int {
	if i < 0 {
		return length + i
	}
	return i
}

func clamp(i, length int) int {
	return max(0, min(i, length))
}
