// pkg/png/errors.go

package png

import (
	"errors"
	"fmt"
)

var (
	ErrBadSignature = errors.New("png: bad signature")
	ErrTruncated    = errors.New("png: truncated chunk")
	ErrNotFound     = errors.New("png: no chunk with requested type")
	ErrNotText      = errors.New("png: chunk payload is not text")
)

// ChecksumError reports a chunk whose stored CRC disagrees with the CRC
// computed over its type and payload.
type ChecksumError struct {
	Stored   uint32
	Computed uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("png: checksum mismatch: stored %d, computed %d", e.Stored, e.Computed)
}

// InvalidTypeError reports a chunk type tag that cannot be rendered as
// text. Pos is -1 when the tag text has the wrong length, otherwise the
// position of the offending byte.
type InvalidTypeError struct {
	Text string
	Pos  int
	Byte byte
}

func (e *InvalidTypeError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("png: chunk type %q must be 4 characters", e.Text)
	}
	return fmt.Sprintf("png: invalid byte 0x%02x at position %d in chunk type %q", e.Byte, e.Pos, e.Text)
}
