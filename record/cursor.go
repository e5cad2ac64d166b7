package record

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// DecodeUTF16 decodes little-endian UTF-16 bytes. A trailing odd byte is
// ignored.
func DecodeUTF16(b []byte) (string, error) {
	if len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	out, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// EncodeUTF16 encodes s as little-endian UTF-16.
func EncodeUTF16(s string) []byte {
	out, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil
	}
	return out
}

// Cursor reads little-endian values from a record payload. The first read
// that runs past the payload sets a sticky error; subsequent reads return
// zero values.
type Cursor struct {
	rec  Record
	data []byte
	off  int
	err  error
}

// NewCursor creates a cursor over the payload of rec.
func NewCursor(rec Record) *Cursor {
	return &Cursor{rec: rec, data: rec.Data}
}

func (c *Cursor) take(n int) []byte {
	if c.err != nil {
		return nil
	}
	if n < 0 || n > len(c.data)-c.off {
		c.err = Errorf(c.rec, "payload truncated: need %d bytes at %d, have %d", n, c.off, len(c.data)-c.off)
		return nil
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b
}

// U8 reads an unsigned byte.
func (c *Cursor) U8() uint8 {
	b := c.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// I8 reads a signed byte.
func (c *Cursor) I8() int8 { return int8(c.U8()) }

// U16 reads an unsigned 16-bit word.
func (c *Cursor) U16() uint16 {
	b := c.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// I16 reads a signed 16-bit word.
func (c *Cursor) I16() int16 { return int16(c.U16()) }

// U32 reads an unsigned 32-bit word.
func (c *Cursor) U32() uint32 {
	b := c.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// I32 reads a signed 32-bit word.
func (c *Cursor) I32() int32 { return int32(c.U32()) }

// Bytes returns the next n bytes. The slice aliases the payload.
func (c *Cursor) Bytes(n int) []byte {
	return c.take(n)
}

// Skip advances past n bytes.
func (c *Cursor) Skip(n int) {
	c.take(n)
}

// WString reads a WCHAR string: a 16-bit code unit count followed by that
// many UTF-16LE code units.
func (c *Cursor) WString() string {
	n := int(c.U16())
	b := c.take(n * 2)
	if b == nil {
		return ""
	}
	s, err := DecodeUTF16(b)
	if err != nil {
		c.err = Errorf(c.rec, "invalid UTF-16 string: %v", err)
		return ""
	}
	return s
}

// Rest consumes and returns all remaining bytes.
func (c *Cursor) Rest() []byte {
	return c.take(c.Remaining())
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	if c.err != nil {
		return 0
	}
	return len(c.data) - c.off
}

// Consumed returns the number of bytes read so far.
func (c *Cursor) Consumed() int {
	return c.off
}

// Err returns the first error encountered.
func (c *Cursor) Err() error {
	if c.err == nil {
		return nil
	}
	return c.err
}

// ExpectEnd returns the sticky error if any, otherwise a ParseError when
// the payload was not consumed exactly.
func (c *Cursor) ExpectEnd() error {
	if c.err != nil {
		return c.err
	}
	if c.off != len(c.data) {
		return Errorf(c.rec, "consumed %d bytes of declared %d", c.off, len(c.data))
	}
	return nil
}
