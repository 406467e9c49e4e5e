// pkg/png/chunktype.go

package png

import "fmt"

// ChunkType is the 4-byte type tag of a PNG chunk. Bit 5 of each byte
// carries a property flag, per the PNG spec.
type ChunkType struct {
	b [4]byte
}

// ChunkTypeFromBytes accepts any 4 bytes; use IsValid and Text to check
// the tag semantically.
func ChunkTypeFromBytes(b [4]byte) ChunkType {
	return ChunkType{b: b}
}

// ParseChunkType parses a tag from text. The text must be exactly 4
// ASCII alphabetic characters.
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, &InvalidTypeError{Text: s, Pos: -1}
	}
	var t ChunkType
	for i := 0; i < 4; i++ {
		if !isAlpha(s[i]) {
			return ChunkType{}, &InvalidTypeError{Text: s, Pos: i, Byte: s[i]}
		}
		t.b[i] = s[i]
	}
	return t, nil
}

func isAlpha(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

func (t ChunkType) Bytes() [4]byte { return t.b }

// IsCritical reports whether readers must process this chunk to make
// sense of the stream (bit 5 of the first byte clear).
func (t ChunkType) IsCritical() bool { return t.b[0]&0x20 == 0 }

// IsPublic reports whether the tag is registered (bit 5 of the second
// byte clear) rather than application-private.
func (t ChunkType) IsPublic() bool { return t.b[1]&0x20 == 0 }

func (t ChunkType) IsReservedBitValid() bool { return t.b[2]&0x20 == 0 }

// IsSafeToCopy reports whether editors may carry the chunk over without
// understanding it (bit 5 of the fourth byte set).
func (t ChunkType) IsSafeToCopy() bool { return t.b[3]&0x20 != 0 }

// IsValid reports spec conformance. Only the reserved bit gates
// validity; the other three properties are informational.
func (t ChunkType) IsValid() bool { return t.IsReservedBitValid() }

// Text renders the tag as ASCII. Tags built from raw bytes may hold
// non-alphabetic bytes; those are rejected rather than substituted, so
// a text rendering always round-trips through ParseChunkType.
func (t ChunkType) Text() (string, error) {
	for i := 0; i < 4; i++ {
		if !isAlpha(t.b[i]) {
			return "", &InvalidTypeError{Text: string(t.b[:]), Pos: i, Byte: t.b[i]}
		}
	}
	return string(t.b[:]), nil
}

func (t ChunkType) String() string {
	s, err := t.Text()
	if err != nil {
		return fmt.Sprintf("%q", t.b[:])
	}
	return s
}
