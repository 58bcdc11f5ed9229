package obi

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encoder appends OBI values to an internal buffer.
type Encoder struct {
	buf []byte
	err error
}

// NewEncoder creates an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// U8 appends a single byte.
func (e *Encoder) U8(v uint8) {
	e.buf = append(e.buf, v)
}

// U32 appends a big-endian u32.
func (e *Encoder) U32(v uint32) {
	e.buf = binary.BigEndian.AppendUint32(e.buf, v)
}

// U64 appends a big-endian u64.
func (e *Encoder) U64(v uint64) {
	e.buf = binary.BigEndian.AppendUint64(e.buf, v)
}

// Len appends a vector or string length prefix.
func (e *Encoder) Len(n int) {
	if n > math.MaxUint32 {
		if e.err == nil {
			e.err = fmt.Errorf("%w: %d", ErrTooLong, n)
		}
		return
	}
	e.U32(uint32(n))
}

// String appends a length-prefixed string.
func (e *Encoder) String(s string) {
	e.Len(len(s))
	e.buf = append(e.buf, s...)
}

// Bytes returns the encoded buffer, or the first error hit while encoding.
func (e *Encoder) Bytes() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf, nil
}
