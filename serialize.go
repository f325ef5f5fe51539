package resp

import (
	"bytes"
	"strconv"
)

// Encode appends the RESP wire form of v to buf and returns the number of
// bytes written. It reserves the exact encoded size up front and cannot
// fail: the Buffer is assumed to grow as needed.
func Encode(v Value, buf Buffer) int {
	buf.Grow(EncodedLen(v))
	return encodeValue(v, buf)
}

// ToBytes encodes v into a freshly allocated byte slice.
func ToBytes(v Value) []byte {
	var buf bytes.Buffer
	Encode(v, &buf)
	return buf.Bytes()
}

// EncodedLen returns the exact number of bytes Encode will write for v.
func EncodedLen(v Value) int {
	const crlfLen = len(CRLF)
	switch val := v.(type) {
	case SimpleString:
		return 1 + len(val) + crlfLen
	case Error:
		return 1 + len(val) + crlfLen
	case Integer:
		return 1 + decimalLen(int64(val)) + crlfLen
	case BulkString:
		if val == nil {
			return len("$-1") + crlfLen
		}
		return 1 + decimalLen(int64(len(val))) + crlfLen + len(val) + crlfLen
	case Array:
		if val == nil {
			return len("*-1") + crlfLen
		}
		n := 1 + decimalLen(int64(len(val))) + crlfLen
		for _, item := range val {
			n += EncodedLen(item)
		}
		return n
	}
	return 0
}

func encodeValue(v Value, buf Buffer) int {
	var tmp [20]byte // fits any int64 in decimal
	switch val := v.(type) {
	case SimpleString:
		return writeLine(buf, TypeSimpleString, val)
	case Error:
		return writeLine(buf, TypeError, val)
	case Integer:
		return writeLine(buf, TypeInteger, strconv.AppendInt(tmp[:0], int64(val), 10))
	case BulkString:
		if val == nil {
			return writeLine(buf, TypeBulkString, []byte("-1"))
		}
		n := writeLine(buf, TypeBulkString, strconv.AppendInt(tmp[:0], int64(len(val)), 10))
		buf.Write(val)
		buf.WriteString(CRLF)
		return n + len(val) + len(CRLF)
	case Array:
		if val == nil {
			return writeLine(buf, TypeArray, []byte("-1"))
		}
		n := writeLine(buf, TypeArray, strconv.AppendInt(tmp[:0], int64(len(val)), 10))
		for _, item := range val {
			n += encodeValue(item, buf)
		}
		return n
	}
	return 0
}

func writeLine(buf Buffer, sigil byte, body []byte) int {
	buf.WriteByte(sigil)
	buf.Write(body)
	buf.WriteString(CRLF)
	return 1 + len(body) + len(CRLF)
}

func decimalLen(n int64) int {
	return len(strconv.FormatInt(n, 10))
}
