package resp

import (
	"bytes"
	"strconv"
)

// MaxDepth bounds array recursion. Input nesting arrays deeper than this
// fails with ErrDepthExceeded instead of exhausting the call stack.
const MaxDepth = 64

var crlfBytes = []byte(CRLF)

// Parse decodes the first complete value from buf.
//
// On success it returns the bytes following the value and the value
// itself. String contents alias buf; no bytes are copied. On failure the
// returned value and remainder are nil and nothing was consumed: for
// ErrIncomplete the caller should retry once more bytes are appended, any
// other error is a hard protocol violation for the whole buffer.
func Parse(buf []byte) (rest []byte, v Value, err error) {
	return parseValue(buf, 0)
}

func parseValue(buf []byte, depth int) ([]byte, Value, error) {
	if depth > MaxDepth {
		return nil, nil, ErrDepthExceeded
	}
	if len(buf) == 0 {
		return nil, nil, ErrIncomplete
	}
	switch buf[0] {
	case TypeSimpleString:
		rest, line, err := readLine(buf[1:])
		if err != nil {
			return nil, nil, err
		}
		return rest, SimpleString(line), nil
	case TypeError:
		rest, line, err := readLine(buf[1:])
		if err != nil {
			return nil, nil, err
		}
		return rest, Error(line), nil
	case TypeInteger:
		rest, n, err := readNumber(buf[1:])
		if err != nil {
			return nil, nil, err
		}
		return rest, Integer(n), nil
	case TypeBulkString:
		return parseBulkString(buf[1:])
	case TypeArray:
		return parseArray(buf[1:], depth)
	}
	return nil, nil, ErrUnknownType
}

func parseBulkString(buf []byte) ([]byte, Value, error) {
	rest, n, err := readLength(buf)
	if err != nil {
		return nil, nil, err
	}
	if n == -1 {
		return rest, BulkString(nil), nil
	}
	// Body plus the trailing CRLF must be fully buffered.
	if n > int64(len(rest))-2 {
		return nil, nil, ErrIncomplete
	}
	body, rest := rest[:n], rest[n:]
	if rest[0] != '\r' || rest[1] != '\n' {
		return nil, nil, ErrInvalidTerminator
	}
	return rest[2:], BulkString(body), nil
}

func parseArray(buf []byte, depth int) ([]byte, Value, error) {
	rest, n, err := readLength(buf)
	if err != nil {
		return nil, nil, err
	}
	if n == -1 {
		return rest, Array(nil), nil
	}
	// The smallest value is 3 bytes ("+\r\n"), so a count that cannot fit
	// in the buffered bytes means the parse must end incomplete anyway.
	// Checking here also keeps a corrupt count from allocating wildly.
	if n > int64(len(rest))/3 {
		return nil, nil, ErrIncomplete
	}
	items := make(Array, 0, n)
	for i := int64(0); i < n; i++ {
		var v Value
		rest, v, err = parseValue(rest, depth+1)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, v)
	}
	return rest, items, nil
}

// readLine splits off the bytes up to the first CRLF. A bare CR not
// followed by LF is ordinary content, not a delimiter.
func readLine(buf []byte) (rest, line []byte, err error) {
	i := bytes.Index(buf, crlfBytes)
	if i < 0 {
		return nil, nil, ErrIncomplete
	}
	return buf[i+2:], buf[:i], nil
}

// readNumber reads a CRLF-terminated base-10 signed integer. A leading
// '+' is not part of the RESP grammar and is rejected.
func readNumber(buf []byte) (rest []byte, n int64, err error) {
	rest, line, err := readLine(buf)
	if err != nil {
		return nil, 0, err
	}
	if len(line) == 0 || line[0] == '+' {
		return nil, 0, ErrInvalidNumber
	}
	n, err = strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return nil, 0, ErrInvalidNumber
	}
	return rest, n, nil
}

// readLength reads a bulk string length or array count. The only legal
// negative value is -1, the null marker.
func readLength(buf []byte) (rest []byte, n int64, err error) {
	rest, n, err = readNumber(buf)
	if err != nil {
		return nil, 0, err
	}
	if n < -1 {
		return nil, 0, ErrInvalidNumber
	}
	return rest, n, nil
}
