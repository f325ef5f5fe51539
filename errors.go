package resp

import (
	"errors"
	"fmt"
)

// ErrIncomplete means the input ends before a full value; it is not a
// protocol violation. No bytes were consumed: call Parse again with the
// same leading bytes plus whatever has arrived since.
var ErrIncomplete = errors.New("resp: incomplete input, need more data")

// ErrProtocol is the root of every hard decoding failure. All of the
// specific errors below match it under errors.Is.
var ErrProtocol = errors.New("resp: protocol error")

var (
	// ErrInvalidNumber reports an integer body or a length/count header
	// that is not valid decimal, or a negative length/count other than -1.
	ErrInvalidNumber = fmt.Errorf("%w: invalid number", ErrProtocol)

	// ErrUnknownType reports a leading byte that is not one of + - : $ *.
	ErrUnknownType = fmt.Errorf("%w: unknown type sigil", ErrProtocol)

	// ErrDepthExceeded reports arrays nested deeper than MaxDepth.
	ErrDepthExceeded = fmt.Errorf("%w: nesting depth exceeded", ErrProtocol)

	// ErrInvalidTerminator reports a bulk string body not followed by CRLF.
	ErrInvalidTerminator = fmt.Errorf("%w: invalid terminator", ErrProtocol)
)
