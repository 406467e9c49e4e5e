// pkg/png/png_test.go

package png

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustChunk(t *testing.T, typeText, payload string) *Chunk {
	t.Helper()
	ct, err := ParseChunkType(typeText)
	require.NoError(t, err)
	return NewChunk(ct, []byte(payload))
}

func testPng(t *testing.T) *Png {
	t.Helper()
	return FromChunks([]*Chunk{
		mustChunk(t, "FrSt", "I am the first chunk"),
		mustChunk(t, "miDl", "I am another chunk"),
		mustChunk(t, "LASt", "I am the last chunk"),
	})
}

func chunkTypes(p *Png) []string {
	var out []string
	for _, c := range p.Chunks() {
		out = append(out, c.Type().String())
	}
	return out
}

func TestPngRoundTrip(t *testing.T) {
	p := testPng(t)
	b := p.Encode()
	assert.Equal(t, Signature[:], b[:8])

	got, err := DecodePng(b)
	require.NoError(t, err)
	require.Len(t, got.Chunks(), 3)
	for i, c := range got.Chunks() {
		want := p.Chunks()[i]
		assert.Equal(t, want.Type(), c.Type())
		assert.Equal(t, want.Payload(), c.Payload())
		assert.Equal(t, want.CRC(), c.CRC())
	}
}

func TestDecodePngBadSignature(t *testing.T) {
	b := testPng(t).Encode()
	b[0] = 0x13
	_, err := DecodePng(b)
	assert.True(t, errors.Is(err, ErrBadSignature))

	_, err = DecodePng([]byte("short"))
	assert.True(t, errors.Is(err, ErrBadSignature))
}

func TestDecodePngPropagatesChunkErrors(t *testing.T) {
	b := testPng(t).Encode()

	// corrupt a payload byte of the middle chunk
	b[8+12+len("I am the first chunk")+8] ^= 0x40
	_, err := DecodePng(b)
	var ce *ChecksumError
	assert.True(t, errors.As(err, &ce))

	// truncated final chunk
	_, err = DecodePng(testPng(t).Encode()[:60])
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestDecodePngEmpty(t *testing.T) {
	p, err := DecodePng(Signature[:])
	require.NoError(t, err)
	assert.Empty(t, p.Chunks())
}

func TestAppendAndFindChunk(t *testing.T) {
	p := testPng(t)
	p.AppendChunk(mustChunk(t, "TeSt", "Message"))

	c := p.ChunkByType("TeSt")
	require.NotNil(t, c)
	s, err := c.Text()
	require.NoError(t, err)
	assert.Equal(t, "Message", s)

	assert.Nil(t, p.ChunkByType("NoPe"))
}

func TestChunksByType(t *testing.T) {
	p := testPng(t)
	p.AppendChunk(mustChunk(t, "miDl", "second of its kind"))

	got := p.ChunksByType("miDl")
	require.Len(t, got, 2)
	assert.Equal(t, []byte("I am another chunk"), got[0].Payload())
	assert.Equal(t, []byte("second of its kind"), got[1].Payload())

	assert.Empty(t, p.ChunksByType("NoPe"))
}

func TestRemoveFirstChunk(t *testing.T) {
	p := testPng(t)
	p.AppendChunk(mustChunk(t, "miDl", "second of its kind"))

	removed, err := p.RemoveFirstChunk("miDl")
	require.NoError(t, err)
	assert.Equal(t, []byte("I am another chunk"), removed.Payload())
	assert.Equal(t, []string{"FrSt", "LASt", "miDl"}, chunkTypes(p))

	// only the earliest duplicate goes; the later one is still found
	c := p.ChunkByType("miDl")
	require.NotNil(t, c)
	assert.Equal(t, []byte("second of its kind"), c.Payload())
}

func TestRemoveFirstChunkNotFound(t *testing.T) {
	p := testPng(t)
	_, err := p.RemoveFirstChunk("NoPe")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, []string{"FrSt", "miDl", "LASt"}, chunkTypes(p))
}

func TestMutationReflectedInEncode(t *testing.T) {
	p := testPng(t)
	before := len(p.Encode())
	p.AppendChunk(mustChunk(t, "TeSt", "hi"))
	assert.Equal(t, before+12+2, len(p.Encode()))

	_, err := p.RemoveFirstChunk("TeSt")
	require.NoError(t, err)
	assert.Equal(t, before, len(p.Encode()))
}

func TestPngString(t *testing.T) {
	p := testPng(t)
	out := p.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	for i, c := range p.Chunks() {
		assert.Equal(t, c.String(), lines[i])
	}
	assert.NotContains(t, out, string(Signature[:]))
}
