// pkg/png/chunk.go

package png

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash/crc32"
	"strings"
	"unicode/utf8"
)

// chunkOverhead is the wire size of a chunk minus its payload:
// 4 length + 4 type + 4 crc.
const chunkOverhead = 12

// maxChunkLength is the PNG ceiling for the declared payload length.
const maxChunkLength = 1<<31 - 1

// Chunk is one length-prefixed, CRC-checked record of a PNG stream.
// The length and CRC are always derived from the type and payload; a
// chunk in memory is valid by construction.
type Chunk struct {
	length  uint32
	typ     ChunkType
	payload []byte
	crc     uint32
}

// NewChunk builds a chunk over a copy of payload, deriving length and
// CRC. It cannot fail.
func NewChunk(t ChunkType, payload []byte) *Chunk {
	data := make([]byte, len(payload))
	copy(data, payload)
	return &Chunk{
		length:  uint32(len(data)),
		typ:     t,
		payload: data,
		crc:     checksum(t, data),
	}
}

// checksum is CRC-32/ISO-HDLC over the 4 type bytes and the payload.
// The length and CRC fields themselves are excluded.
func checksum(t ChunkType, payload []byte) uint32 {
	b := t.Bytes()
	crc := crc32.ChecksumIEEE(b[:])
	return crc32.Update(crc, crc32.IEEETable, payload)
}

// DecodeChunk parses one chunk from the front of b, copying the payload
// out of the input. Bytes past the chunk are left for the caller. A
// declared length that runs past the buffer (or past the PNG ceiling)
// is rejected with ErrTruncated, never read partially.
func DecodeChunk(b []byte) (*Chunk, error) {
	if len(b) < chunkOverhead {
		return nil, ErrTruncated
	}
	length := binary.BigEndian.Uint32(b[:4])
	if length > maxChunkLength {
		return nil, ErrTruncated
	}
	n := int(length)
	if n > len(b)-chunkOverhead {
		return nil, ErrTruncated
	}
	var tb [4]byte
	copy(tb[:], b[4:8])
	typ := ChunkTypeFromBytes(tb)
	payload := make([]byte, n)
	copy(payload, b[8:8+n])
	stored := binary.BigEndian.Uint32(b[8+n : chunkOverhead+n])
	if computed := checksum(typ, payload); stored != computed {
		return nil, &ChecksumError{Stored: stored, Computed: computed}
	}
	return &Chunk{length: length, typ: typ, payload: payload, crc: stored}, nil
}

func (c *Chunk) Length() uint32  { return c.length }
func (c *Chunk) Type() ChunkType { return c.typ }
func (c *Chunk) Payload() []byte { return c.payload }
func (c *Chunk) CRC() uint32     { return c.crc }

// Size is the encoded size in bytes.
func (c *Chunk) Size() int { return chunkOverhead + int(c.length) }

// Encode emits the canonical wire form:
// length (u32 BE) | type | payload | crc (u32 BE).
func (c *Chunk) Encode() []byte {
	out := make([]byte, c.Size())
	binary.BigEndian.PutUint32(out[:4], c.length)
	tb := c.typ.Bytes()
	copy(out[4:8], tb[:])
	copy(out[8:], c.payload)
	binary.BigEndian.PutUint32(out[8+len(c.payload):], c.crc)
	return out
}

// Text returns the payload as a string when it is valid UTF-8.
func (c *Chunk) Text() (string, error) {
	if !utf8.Valid(c.payload) {
		return "", ErrNotText
	}
	return string(c.payload), nil
}

// String is a diagnostic form: hex length, type text, hex payload, hex
// CRC, concatenated. Not the wire form.
func (c *Chunk) String() string {
	return fmt.Sprintf("%08X%s%s%08X",
		c.length, c.typ.String(), strings.ToUpper(hex.EncodeToString(c.payload)), c.crc)
}
