package record

import (
	"encoding/binary"
	"fmt"
)

const (
	// MaxTag is the largest tag that fits in the 10-bit tag field.
	MaxTag = 0x3FF
	// MaxLevel is the largest level that fits in the 10-bit level field.
	MaxLevel = 0x3FF

	// extendedSize in the size field means a 4-byte size word follows.
	extendedSize = 0xFFF

	headerSize         = 4
	extendedHeaderSize = 8
)

// Header is the decoded tag/level/size prefix of a record.
type Header struct {
	Tag   Tag
	Level int
	Size  uint32
}

// Len returns the number of bytes the header occupies when encoded.
func (h Header) Len() int {
	if h.Size >= extendedSize {
		return extendedHeaderSize
	}
	return headerSize
}

// Encode packs the header into its wire form. Sizes of 0xFFF and above use
// the extended form.
func (h Header) Encode() []byte {
	size := h.Size
	if size >= extendedSize {
		size = extendedSize
	}
	word := uint32(h.Tag)&MaxTag | (uint32(h.Level)&MaxLevel)<<10 | size<<20

	buf := make([]byte, h.Len())
	binary.LittleEndian.PutUint32(buf, word)
	if size == extendedSize {
		binary.LittleEndian.PutUint32(buf[4:], h.Size)
	}
	return buf
}

// DecodeHeader unpacks a record header from the start of b and returns it
// together with the number of bytes consumed.
func DecodeHeader(b []byte) (Header, int, error) {
	if len(b) < headerSize {
		return Header{}, 0, fmt.Errorf("record header truncated: %d bytes", len(b))
	}
	word := binary.LittleEndian.Uint32(b)
	h := Header{
		Tag:   Tag(word & MaxTag),
		Level: int((word >> 10) & MaxLevel),
		Size:  word >> 20,
	}
	if h.Size != extendedSize {
		return h, headerSize, nil
	}
	if len(b) < extendedHeaderSize {
		return Header{}, 0, fmt.Errorf("extended record header truncated: %d bytes", len(b))
	}
	h.Size = binary.LittleEndian.Uint32(b[4:])
	return h, extendedHeaderSize, nil
}

// Encode builds a complete record from a header and payload. The header size
// is taken from the payload length.
func Encode(tag Tag, level int, payload []byte) []byte {
	h := Header{Tag: tag, Level: level, Size: uint32(len(payload))}
	out := h.Encode()
	return append(out, payload...)
}
