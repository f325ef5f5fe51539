// Package resp implements the RESP2 (REdis Serialization Protocol) wire
// format: a zero-copy decoder from byte slices into a typed value model,
// and an encoder from that model back to bytes.
//
// The package owns no I/O. Callers feed it bytes read from a transport and
// hand encoded bytes back to one. Decoded values borrow from the input
// buffer, so the buffer must not be reused or mutated while any value
// decoded from it is still in use.
//
// https://redis.io/docs/latest/develop/reference/protocol-spec/
package resp

import "bytes"

// RESP2 type sigils, the first byte of every value on the wire.
const (
	TypeSimpleString byte = '+'
	TypeError        byte = '-'
	TypeInteger      byte = ':'
	TypeBulkString   byte = '$'
	TypeArray        byte = '*'
)

// CRLF terminates every RESP line.
const CRLF = "\r\n"

// Value is one RESP2 value. It is a closed set: the only implementations
// are SimpleString, Error, Integer, BulkString and Array.
type Value interface {
	// IsNull reports whether the value is a null bulk string or null array.
	IsNull() bool
	// IsError reports whether the value is an Error.
	IsError() bool

	sigil() byte
}

// SimpleString is a line-terminated string. It must not contain CR or LF;
// the decoder guarantees this for values it produces, the encoder does not
// re-check values built by hand.
type SimpleString []byte

// Error is an error message with the same content restriction as
// SimpleString.
type Error []byte

// Integer is a signed 64-bit integer.
type Integer int64

// BulkString is a length-prefixed, binary-safe string. A nil BulkString is
// the RESP null bulk string ($-1); a non-nil empty one is a zero-length
// string ($0), which is a distinct value.
type BulkString []byte

// Array is an ordered sequence of values. A nil Array is the RESP null
// array (*-1); a non-nil empty one is an empty array (*0), which is a
// distinct value.
type Array []Value

func (SimpleString) IsNull() bool { return false }
func (Error) IsNull() bool        { return false }
func (Integer) IsNull() bool      { return false }
func (b BulkString) IsNull() bool { return b == nil }
func (a Array) IsNull() bool      { return a == nil }

func (SimpleString) IsError() bool { return false }
func (Error) IsError() bool        { return true }
func (Integer) IsError() bool      { return false }
func (BulkString) IsError() bool   { return false }
func (Array) IsError() bool        { return false }

func (SimpleString) sigil() byte { return TypeSimpleString }
func (Error) sigil() byte        { return TypeError }
func (Integer) sigil() byte      { return TypeInteger }
func (BulkString) sigil() byte   { return TypeBulkString }
func (Array) sigil() byte        { return TypeArray }

// Equal reports whether two values are structurally equal. Null bulk
// strings and arrays are distinct from their empty counterparts.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case SimpleString:
		bv, ok := b.(SimpleString)
		return ok && bytes.Equal(av, bv)
	case Error:
		bv, ok := b.(Error)
		return ok && bytes.Equal(av, bv)
	case Integer:
		bv, ok := b.(Integer)
		return ok && av == bv
	case BulkString:
		bv, ok := b.(BulkString)
		return ok && (av == nil) == (bv == nil) && bytes.Equal(av, bv)
	case Array:
		bv, ok := b.(Array)
		if !ok || (av == nil) != (bv == nil) || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return a == nil && b == nil
}
