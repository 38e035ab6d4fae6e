package bytestream

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_EOS(t *testing.T) {
	s := New([]byte("ab"))
	assert.False(t, s.EOS())

	require.NoError(t, s.Move(2))
	assert.True(t, s.EOS())

	assert.True(t, New(nil).EOS())
}

func TestStream_Bounds(t *testing.T) {
	data := []byte("hello")
	s := New(data)

	_, err := s.Peek(len(data))
	assert.ErrorIs(t, err, ErrOutOfRange)

	err = s.Move(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, 0, s.Pos())

	require.NoError(t, s.Move(len(data)))
	assert.True(t, s.EOS())

	err = s.Move(1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, len(data), s.Pos())
}

func TestStream_Peek(t *testing.T) {
	s := New([]byte("abc"))
	require.NoError(t, s.Move(1))

	b, err := s.Peek(0)
	require.NoError(t, err)
	assert.Equal(t, byte('b'), b)

	b, err = s.Peek(-1)
	require.NoError(t, err)
	assert.Equal(t, byte('a'), b)

	b, err = s.Peek(1)
	require.NoError(t, err)
	assert.Equal(t, byte('c'), b)

	_, err = s.Peek(-2)
	assert.ErrorIs(t, err, ErrOutOfRange)

	assert.Equal(t, 1, s.Pos(), "peek must not move the cursor")
}

func TestStream_ReadByte(t *testing.T) {
	s := New([]byte("xy"))

	b, err := s.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('x'), b)

	b, err = s.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('y'), b)

	_, err = s.ReadByte()
	assert.Equal(t, io.EOF, err)
}

func TestStream_ReadN(t *testing.T) {
	s := New([]byte("abcdef"))

	out, err := s.ReadN(4)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), out)

	out, err = s.ReadN(10)
	require.NoError(t, err)
	assert.Equal(t, []byte("ef"), out, "short read at end is not an error")
	assert.True(t, s.EOS())

	_, err = s.ReadN(1)
	assert.Equal(t, io.EOF, err)

	_, err = New([]byte("a")).ReadN(-1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestStream_ReadNZero(t *testing.T) {
	s := New([]byte("a"))

	out, err := s.ReadN(0)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Equal(t, 0, s.Pos())
}

func TestStream_ReadLine(t *testing.T) {
	s := New([]byte("one\ntwo\r\nthree\rfour\r\n\r\nlast"))

	var lines []string
	for {
		line, err := s.ReadLine()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		lines = append(lines, string(line))
	}

	assert.Equal(t, []string{"one", "two", "three", "four", "", "last"}, lines)
}

func TestStream_ReadLine_TrailingCR(t *testing.T) {
	s := New([]byte("tail\r"))

	line, err := s.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, []byte("tail"), line)
	assert.True(t, s.EOS())

	_, err = s.ReadLine()
	assert.Equal(t, io.EOF, err)
}

func TestStream_ReadUntil(t *testing.T) {
	s := New([]byte("key=value&next"))

	out, err := s.ReadUntil([]byte("="))
	require.NoError(t, err)
	assert.Equal(t, []byte("key"), out)
	assert.Equal(t, 4, s.Pos())

	out, err = s.ReadUntil([]byte("&"))
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), out)

	rest, err := s.ReadN(100)
	require.NoError(t, err)
	assert.Equal(t, []byte("next"), rest)
}

func TestStream_ReadUntil_MatchAtCursor(t *testing.T) {
	s := New([]byte("--B rest"))

	out, err := s.ReadUntil([]byte("--B"))
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Equal(t, 3, s.Pos())
}

func TestStream_ReadUntil_Missing(t *testing.T) {
	s := New([]byte("no delimiter in here"))
	require.NoError(t, s.Move(3))

	out, err := s.ReadUntil([]byte("\r\n--B"))
	assert.Equal(t, io.EOF, err)
	assert.Nil(t, out)
	assert.True(t, s.EOS(), "a failed scan leaves the cursor at the end")
}

func TestStream_ReadUntil_SequenceLongerThanRemainder(t *testing.T) {
	s := New([]byte("ab"))

	_, err := s.ReadUntil([]byte("abc"))
	assert.Equal(t, io.EOF, err)
	assert.True(t, s.EOS())
}

func TestStream_ReadUntil_EmptySequence(t *testing.T) {
	s := New([]byte("abc"))

	_, err := s.ReadUntil(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 0, s.Pos())
}

func TestStream_Slice(t *testing.T) {
	s := New([]byte("0123456789"))

	tests := []struct {
		name       string
		start, end int
		expected   string
	}{
		{"whole", 0, 10, "0123456789"},
		{"middle", 2, 5, "234"},
		{"negative start", -3, 10, "789"},
		{"negative end", 0, -8, "01"},
		{"both negative", -4, -1, "678"},
		{"clamped start", -100, 2, "01"},
		{"clamped end", 8, 100, "89"},
		{"inverted", 6, 2, ""},
		{"empty", 4, 4, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := s.Slice(tt.start, tt.end)
			assert.NotNil(t, out)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestStream_SliceIsCopy(t *testing.T) {
	data := []byte("abc")
	s := New(data)

	out := s.Slice(0, 3)
	out[0] = 'z'

	assert.Equal(t, []byte("abc"), data)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal([]byte("abc"), []byte("abc")))
	assert.True(t, Equal(nil, []byte{}))
	assert.False(t, Equal([]byte("abc"), []byte("abd")))
	assert.False(t, Equal([]byte("ab"), []byte("abc")))
}
