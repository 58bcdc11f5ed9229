package obi

import (
	"encoding/binary"
	"fmt"
)

// Decoder reads OBI values from a byte slice. The first failure sticks; later reads
// return zero values and Finish reports it.
type Decoder struct {
	data []byte
	err  error
}

// NewDecoder creates a decoder over data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

func (d *Decoder) take(n int, what string) []byte {
	if d.err != nil {
		return nil
	}
	if len(d.data) < n {
		d.err = fmt.Errorf("%w: reading %s", ErrUnexpectedEOF, what)
		return nil
	}
	out := d.data[:n]
	d.data = d.data[n:]
	return out
}

// U8 reads one byte.
func (d *Decoder) U8() uint8 {
	b := d.take(1, "u8")
	if b == nil {
		return 0
	}
	return b[0]
}

// U32 reads a big-endian u32.
func (d *Decoder) U32() uint32 {
	b := d.take(4, "u32")
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// U64 reads a big-endian u64.
func (d *Decoder) U64() uint64 {
	b := d.take(8, "u64")
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// Len reads a vector length prefix.
func (d *Decoder) Len() int {
	n := d.U32()
	if d.err == nil && uint64(n) > uint64(len(d.data)) {
		// Every element takes at least one byte, so a longer vector cannot be complete.
		d.err = fmt.Errorf("%w: vector of %d elements with %d bytes left", ErrUnexpectedEOF, n, len(d.data))
		return 0
	}
	return int(n)
}

// String reads a length-prefixed string.
func (d *Decoder) String() string {
	n := d.U32()
	return string(d.take(int(n), "string"))
}

// Err returns the first decoding error.
func (d *Decoder) Err() error {
	return d.err
}

// Finish returns the first decoding error, or ErrTrailingBytes if input remains.
func (d *Decoder) Finish() error {
	if d.err != nil {
		return d.err
	}
	if len(d.data) > 0 {
		return fmt.Errorf("%w: %d bytes", ErrTrailingBytes, len(d.data))
	}
	return nil
}
