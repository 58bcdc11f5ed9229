// Package obi implements the Oracle Binary Interface encoding used for oracle script
// inputs and outputs: big-endian integers, and strings and vectors prefixed with a u32 length.
package obi

import "errors"

var (
	// ErrUnexpectedEOF indicates the input ended in the middle of a value.
	ErrUnexpectedEOF = errors.New("obi: unexpected end of input")
	// ErrTrailingBytes indicates bytes left over after decoding a complete value.
	ErrTrailingBytes = errors.New("obi: trailing bytes after value")
	// ErrTooLong indicates a string or vector longer than a u32 length prefix can describe.
	ErrTooLong = errors.New("obi: length exceeds u32")
)
