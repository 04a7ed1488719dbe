package led

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bufCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufCloser) Close() error {
	b.closed = true
	return nil
}

func TestAdalightHeader(t *testing.T) {
	assert.Equal(t, []byte{'A', 'd', 'a', 0x00, 0x31, 0x00 ^ 0x31 ^ 0x55}, AdalightHeader(50))
	assert.Equal(t, []byte{'A', 'd', 'a', 0x01, 0x2b, 0x01 ^ 0x2b ^ 0x55}, AdalightHeader(300))
}

func TestSerialFraming(t *testing.T) {
	w := &bufCloser{}
	s := newSerial(w, 2)
	require.NoError(t, s.Write([]byte{1, 2, 3, 4, 5, 6}))
	require.NoError(t, s.Write([]byte{7, 8, 9, 10, 11, 12}))

	want := append(AdalightHeader(2), 1, 2, 3, 4, 5, 6)
	want = append(want, AdalightHeader(2)...)
	want = append(want, 7, 8, 9, 10, 11, 12)
	assert.Equal(t, want, w.Bytes())

	assert.ErrorIs(t, s.Write([]byte{1}), ErrFrameSize)
	require.NoError(t, s.Close())
	assert.True(t, w.closed)
	assert.ErrorIs(t, s.Write(make([]byte, 6)), ErrClosed)
	assert.NoError(t, s.Close())
}
