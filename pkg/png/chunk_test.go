// pkg/png/chunk_test.go

package png

import (
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMessage = "This is where your secret message will be!"

// testCRC is CRC-32/ISO-HDLC over "RuSt" + testMessage.
const testCRC = 2882656334

func testChunk(t *testing.T) *Chunk {
	t.Helper()
	ct, err := ParseChunkType("RuSt")
	require.NoError(t, err)
	return NewChunk(ct, []byte(testMessage))
}

func TestNewChunkDerivesLengthAndCRC(t *testing.T) {
	c := testChunk(t)
	assert.Equal(t, uint32(42), c.Length())
	assert.Equal(t, uint32(testCRC), c.CRC())
	assert.Equal(t, "RuSt", c.Type().String())
	assert.Equal(t, []byte(testMessage), c.Payload())
}

func TestChunkEncodeLayout(t *testing.T) {
	c := testChunk(t)
	b := c.Encode()
	require.Len(t, b, 54)
	assert.Equal(t, uint32(42), binary.BigEndian.Uint32(b[:4]))
	assert.Equal(t, []byte("RuSt"), b[4:8])
	assert.Equal(t, []byte(testMessage), b[8:50])
	assert.Equal(t, uint32(testCRC), binary.BigEndian.Uint32(b[50:]))
}

func TestChunkRoundTrip(t *testing.T) {
	c := testChunk(t)
	got, err := DecodeChunk(c.Encode())
	require.NoError(t, err)
	assert.Equal(t, c.Length(), got.Length())
	assert.Equal(t, c.Type(), got.Type())
	assert.Equal(t, c.Payload(), got.Payload())
	assert.Equal(t, c.CRC(), got.CRC())
}

func TestDecodeChunkIgnoresTrailingBytes(t *testing.T) {
	c := testChunk(t)
	b := append(c.Encode(), 0xde, 0xad, 0xbe, 0xef)
	got, err := DecodeChunk(b)
	require.NoError(t, err)
	assert.Equal(t, c.Payload(), got.Payload())
}

func TestDecodeChunkTruncated(t *testing.T) {
	c := testChunk(t)
	b := c.Encode()

	// shorter than the fixed overhead
	_, err := DecodeChunk(b[:11])
	assert.True(t, errors.Is(err, ErrTruncated))

	// declared length runs past the buffer
	_, err = DecodeChunk(b[:len(b)-1])
	assert.True(t, errors.Is(err, ErrTruncated))

	// declared length past the PNG ceiling
	huge := make([]byte, 16)
	binary.BigEndian.PutUint32(huge[:4], 1<<31)
	_, err = DecodeChunk(huge)
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestDecodeChunkChecksumMismatch(t *testing.T) {
	c := testChunk(t)
	good := c.Encode()

	// flipping any single bit of the type or payload must be caught
	for _, pos := range []int{4, 7, 8, 30, 49} {
		b := make([]byte, len(good))
		copy(b, good)
		b[pos] ^= 0x01

		_, err := DecodeChunk(b)
		var ce *ChecksumError
		require.True(t, errors.As(err, &ce), "bit flip at %d", pos)
		assert.Equal(t, uint32(testCRC), ce.Stored)
		assert.NotEqual(t, ce.Stored, ce.Computed)
	}

	// corrupted stored CRC
	b := make([]byte, len(good))
	copy(b, good)
	b[53] ^= 0x01
	_, err := DecodeChunk(b)
	var ce *ChecksumError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, uint32(testCRC), ce.Computed)
}

func TestChunkText(t *testing.T) {
	c := testChunk(t)
	s, err := c.Text()
	require.NoError(t, err)
	assert.Equal(t, testMessage, s)

	ct, err := ParseChunkType("RuSt")
	require.NoError(t, err)
	_, err = NewChunk(ct, []byte{0xff, 0xfe}).Text()
	assert.True(t, errors.Is(err, ErrNotText))
}

func TestChunkString(t *testing.T) {
	ct, err := ParseChunkType("RuSt")
	require.NoError(t, err)
	c := NewChunk(ct, []byte{0xde, 0xad})
	want := "00000002RuStDEAD" + fmt.Sprintf("%08X", c.CRC())
	assert.Equal(t, want, c.String())
}

func TestNewChunkCopiesPayload(t *testing.T) {
	ct, err := ParseChunkType("RuSt")
	require.NoError(t, err)
	buf := []byte("mine")
	c := NewChunk(ct, buf)
	buf[0] = 'x'
	assert.Equal(t, []byte("mine"), c.Payload())
}
