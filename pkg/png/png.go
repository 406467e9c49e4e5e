// pkg/png/png.go

package png

import (
	"bytes"
	"strings"
)

// Signature is the 8-byte header that precedes every PNG stream.
var Signature = [8]byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// Png is an ordered chunk sequence behind the fixed signature. The
// order is the on-disk order and is preserved by every operation. A Png
// exclusively owns its chunks.
type Png struct {
	chunks []*Chunk
}

func FromChunks(chunks []*Chunk) *Png {
	return &Png{chunks: chunks}
}

// DecodePng parses a whole stream: signature, then chunks until the
// buffer is exhausted. Any chunk failure aborts the decode; no partial
// container is ever returned.
func DecodePng(b []byte) (*Png, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		return nil, ErrBadSignature
	}
	p := &Png{}
	rest := b[len(Signature):]
	for len(rest) > 0 {
		c, err := DecodeChunk(rest)
		if err != nil {
			return nil, err
		}
		p.chunks = append(p.chunks, c)
		rest = rest[c.Size():]
	}
	return p, nil
}

// Encode walks the current sequence, so mutations are always reflected.
func (p *Png) Encode() []byte {
	size := len(Signature)
	for _, c := range p.chunks {
		size += c.Size()
	}
	out := make([]byte, 0, size)
	out = append(out, Signature[:]...)
	for _, c := range p.chunks {
		out = append(out, c.Encode()...)
	}
	return out
}

func (p *Png) Chunks() []*Chunk { return p.chunks }

// AppendChunk inserts at the end of the sequence. No dedup, no
// reordering.
func (p *Png) AppendChunk(c *Chunk) {
	p.chunks = append(p.chunks, c)
}

// ChunkByType returns the first chunk whose type renders as text, or
// nil when none matches.
func (p *Png) ChunkByType(text string) *Chunk {
	for _, c := range p.chunks {
		if s, err := c.typ.Text(); err == nil && s == text {
			return c
		}
	}
	return nil
}

// ChunksByType returns every matching chunk in sequence order. An empty
// result is not an error.
func (p *Png) ChunksByType(text string) []*Chunk {
	var out []*Chunk
	for _, c := range p.chunks {
		if s, err := c.typ.Text(); err == nil && s == text {
			out = append(out, c)
		}
	}
	return out
}

// RemoveFirstChunk removes the earliest chunk of the given type and
// returns it. The sequence is untouched when no chunk matches.
func (p *Png) RemoveFirstChunk(text string) (*Chunk, error) {
	for i, c := range p.chunks {
		if s, err := c.typ.Text(); err == nil && s == text {
			p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
			return c, nil
		}
	}
	return nil, ErrNotFound
}

// String renders each chunk's diagnostic form, one per line. The
// signature is omitted from human-facing output.
func (p *Png) String() string {
	var sb strings.Builder
	for _, c := range p.chunks {
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
