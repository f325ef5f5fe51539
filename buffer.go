package resp

// Buffer is the growable byte sink the encoder appends to. It is
// append-only from the encoder's perspective: existing bytes are never
// read or rewound. *bytes.Buffer satisfies it.
type Buffer interface {
	// Grow reserves capacity for at least n more bytes.
	Grow(n int)

	Write(p []byte) (int, error)
	WriteByte(c byte) error
	WriteString(s string) (int, error)
}
