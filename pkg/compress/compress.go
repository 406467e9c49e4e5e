// pkg/compress/compress.go

package compress

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/DataDog/zstd"
	lz4 "github.com/hungys/go-lz4"
)

// Compressor is a block compressor over whole buffers. dst must be at
// least CompressBound(len(src)) for Compress and the original size for
// Decompress.
type Compressor interface {
	Name() string
	CompressBound(int) int
	Compress(dst, src []byte) (int, error)
	Decompress(dst, src []byte) (int, error)
}

// NewCompressor returns the compressor for an algorithm name, or nil
// when the name is unknown.
func NewCompressor(algr string) Compressor {
	switch strings.ToLower(algr) {
	case "lz4":
		return LZ4{}
	case "zstd":
		return ZStandard{level: 3}
	case "none", "":
		return noOp{}
	}
	return nil
}

type noOp struct{}

func (n noOp) Name() string            { return "None" }
func (n noOp) CompressBound(l int) int { return l }

func (n noOp) Compress(dst, src []byte) (int, error) {
	if len(dst) < len(src) {
		return 0, fmt.Errorf("dst is not big enough: %d < %d", len(dst), len(src))
	}
	return copy(dst, src), nil
}

func (n noOp) Decompress(dst, src []byte) (int, error) {
	if len(dst) < len(src) {
		return 0, fmt.Errorf("dst is not big enough: %d < %d", len(dst), len(src))
	}
	return copy(dst, src), nil
}

type LZ4 struct{}

func (l LZ4) Name() string               { return "LZ4" }
func (l LZ4) CompressBound(size int) int { return lz4.CompressBound(size) }

func (l LZ4) Compress(dst, src []byte) (int, error) {
	return lz4.CompressDefault(src, dst)
}

func (l LZ4) Decompress(dst, src []byte) (int, error) {
	return lz4.DecompressSafe(src, dst)
}

type ZStandard struct {
	level int
}

func (z ZStandard) Name() string               { return "Zstd" }
func (z ZStandard) CompressBound(size int) int { return zstd.CompressBound(size) }

func (z ZStandard) Compress(dst, src []byte) (int, error) {
	d, err := zstd.CompressLevel(dst[:0], src, z.level)
	if err != nil {
		return 0, err
	}
	if len(d) > len(dst) {
		return 0, fmt.Errorf("dst is not big enough: %d < %d", len(dst), len(d))
	}
	return copy(dst, d), nil
}

func (z ZStandard) Decompress(dst, src []byte) (int, error) {
	d, err := zstd.Decompress(dst[:0], src)
	if err != nil {
		return 0, err
	}
	if len(d) > len(dst) {
		return 0, fmt.Errorf("dst is not big enough: %d < %d", len(dst), len(d))
	}
	return copy(dst, d), nil
}

// maxPackSize caps the declared size of a packed buffer, which arrives
// from untrusted chunk payloads.
const maxPackSize = 1 << 30

// Pack compresses src and prepends the original size (u32 BE), so the
// result can be unpacked without out-of-band state.
func Pack(c Compressor, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return make([]byte, 4), nil
	}
	dst := make([]byte, 4+c.CompressBound(len(src)))
	binary.BigEndian.PutUint32(dst[:4], uint32(len(src)))
	n, err := c.Compress(dst[4:], src)
	if err != nil {
		return nil, err
	}
	return dst[:4+n], nil
}

// Unpack reverses Pack with the same compressor.
func Unpack(c Compressor, src []byte) ([]byte, error) {
	if len(src) < 4 {
		return nil, fmt.Errorf("packed payload too short: %d bytes", len(src))
	}
	size := binary.BigEndian.Uint32(src[:4])
	if size > maxPackSize {
		return nil, fmt.Errorf("packed payload declares %d bytes, refusing", size)
	}
	if size == 0 {
		return nil, nil
	}
	dst := make([]byte, size)
	n, err := c.Decompress(dst, src[4:])
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}
