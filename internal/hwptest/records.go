package hwptest

import (
	"bytes"
	"compress/flate"
	"crypto/aes"
	"encoding/binary"

	"github.com/tsawler/hwp/internal/filters"
	"github.com/tsawler/hwp/model"
	"github.com/tsawler/hwp/record"
)

// Payload is a little-endian record payload writer.
type Payload struct {
	b []byte
}

// P starts a payload.
func P() *Payload { return &Payload{} }

func (p *Payload) U8(v uint8) *Payload { p.b = append(p.b, v); return p }

func (p *Payload) U16(v uint16) *Payload {
	p.b = binary.LittleEndian.AppendUint16(p.b, v)
	return p
}

func (p *Payload) U32(v uint32) *Payload {
	p.b = binary.LittleEndian.AppendUint32(p.b, v)
	return p
}

func (p *Payload) I32(v int32) *Payload { return p.U32(uint32(v)) }

// WString appends a length-prefixed UTF-16LE string.
func (p *Payload) WString(s string) *Payload {
	u := record.EncodeUTF16(s)
	p.U16(uint16(len(u) / 2))
	p.b = append(p.b, u...)
	return p
}

// Raw appends bytes verbatim.
func (p *Payload) Raw(b []byte) *Payload { p.b = append(p.b, b...); return p }

// Zeros appends n zero bytes.
func (p *Payload) Zeros(n int) *Payload { p.b = append(p.b, make([]byte, n)...); return p }

// Bytes returns the payload.
func (p *Payload) Bytes() []byte { return p.b }

// Stream accumulates framed records.
type Stream struct {
	b []byte
}

// Add appends a record.
func (s *Stream) Add(tag record.Tag, level int, payload []byte) *Stream {
	s.b = append(s.b, record.Encode(tag, level, payload)...)
	return s
}

// Bytes returns the encoded stream.
func (s *Stream) Bytes() []byte { return s.b }

// FileHeader builds a 256-byte FileHeader stream.
func FileHeader(version uint32, flags model.FileFlags) []byte {
	b := make([]byte, 256)
	copy(b, "HWP Document File")
	binary.LittleEndian.PutUint32(b[32:], version)
	binary.LittleEndian.PutUint32(b[36:], uint32(flags))
	return b
}

// Version5032 is a common HWP 5 version word.
const Version5032 = 0x05000302

// ParaHeader builds a 22-byte PARA_HEADER payload.
func ParaHeader(chars uint32) []byte {
	return P().U32(chars).U32(0).U16(0).U8(0).U8(0).U16(1).U16(0).U16(1).U32(0).Bytes()
}

// Text encodes plain paragraph text.
func Text(s string) []byte {
	return record.EncodeUTF16(s)
}

// Char encodes a single-unit control character.
func Char(code uint16) []byte {
	return P().U16(code).Bytes()
}

// Inline encodes an 8-unit inline control character.
func Inline(code uint16) []byte {
	return P().U16(code).Zeros(12).U16(code).Bytes()
}

// Extended encodes an 8-unit extended control character referring to id.
func Extended(code uint16, id string) []byte {
	return P().U16(code).U32(uint32(model.MakeCtrlID(id))).Zeros(8).U16(code).Bytes()
}

// CtrlHeader builds a CTRL_HEADER payload.
func CtrlHeader(id string, body []byte) []byte {
	return P().U32(uint32(model.MakeCtrlID(id))).Raw(body).Bytes()
}

// ObjectHeader builds a common object header with the given size.
func ObjectHeader(width, height uint32) []byte {
	return P().U32(0).I32(0).I32(0).U32(width).U32(height).I32(0).
		Zeros(8).U32(1).I32(0).WString("").Bytes()
}

// ListHeader builds the common part of a LIST_HEADER payload.
func ListHeader(paraCount uint16, attr uint32) []byte {
	return P().U16(paraCount).U16(0).U32(attr).Bytes()
}

// CellList builds a cell LIST_HEADER payload.
func CellList(paraCount uint16, row, col, rowSpan, colSpan uint16) []byte {
	return P().Raw(ListHeader(paraCount, 0)).
		U16(col).U16(row).U16(colSpan).U16(rowSpan).
		U32(1000).U32(500).Zeros(8).U16(1).Bytes()
}

// CaptionList builds a caption LIST_HEADER payload.
func CaptionList(paraCount uint16, width uint32) []byte {
	return P().Raw(ListHeader(paraCount, 0)).
		U32(3).U32(width).U16(850).U32(width).Bytes()
}

// Table builds a TABLE payload with one entry per row in rowSizes.
func Table(cols uint16, rowSizes ...uint16) []byte {
	p := P().U32(0).U16(uint16(len(rowSizes))).U16(cols).U16(0).Zeros(8)
	for _, n := range rowSizes {
		p.U16(n)
	}
	return p.U16(1).U16(0).Bytes()
}

// PageDef builds an A4 PAGE_DEF payload.
func PageDef() []byte {
	return P().U32(59528).U32(84188).U32(8504).U32(8504).U32(5668).
		U32(4252).U32(4252).U32(4252).U32(0).U32(0).Bytes()
}

// NoteShape builds a 26-byte FOOTNOTE_SHAPE payload.
func NoteShape() []byte {
	return P().U32(0).U16(0).U16(0).U16(')').U16(1).U16(0xFFFF).
		U16(850).U16(567).U16(283).U8(1).U8(1).U32(0).Bytes()
}

// PageBorderFill builds a 14-byte PAGE_BORDER_FILL payload.
func PageBorderFill() []byte {
	return P().U32(1).U16(1417).U16(1417).U16(1417).U16(1417).U16(1).Bytes()
}

// SectionDef builds a "secd" CTRL_HEADER body.
func SectionDef() []byte {
	return P().U32(0).U16(1134).U16(0).U16(0).U32(8000).U16(1).
		U16(0).U16(0).U16(0).U16(0).Bytes()
}

// ShapeComponent builds a SHAPE_COMPONENT payload. Top-level components
// repeat their id.
func ShapeComponent(id string, topLevel bool) []byte {
	p := P().U32(uint32(model.MakeCtrlID(id)))
	if topLevel {
		p.U32(uint32(model.MakeCtrlID(id)))
	}
	return p.I32(0).I32(0).U16(0).U16(1).U32(100).U32(100).U32(100).U32(100).
		U32(0).U16(0).I32(50).I32(50).Bytes()
}

// Picture builds a SHAPE_COMPONENT_PICTURE payload referring to binDataID.
func Picture(binDataID uint16) []byte {
	return P().U32(0).I32(0).U32(0).Zeros(32).Zeros(16).Zeros(8).
		U8(0).U8(0).U8(0).U16(binDataID).Bytes()
}

// Deflate compresses data as raw DEFLATE.
func Deflate(data []byte) []byte {
	var buf bytes.Buffer
	w, _ := flate.NewWriter(&buf, flate.DefaultCompression)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

// Distribute wraps data as a distributed stream: a DISTRIBUTE_DOC_DATA
// seed block followed by AES-128-ECB ciphertext. data is zero-padded to a
// whole number of blocks, so it should be deflated first.
func Distribute(data []byte, seed uint32, key []byte) []byte {
	var block [filters.DistributionBlockSize]byte
	for i := range block {
		block[i] = byte(i*7 + 3)
	}
	copy(block[filters.DistributionKeyOffset(seed):], key)
	mask := filters.DistributionMask(seed)
	for i := range block {
		block[i] ^= mask[i]
	}
	binary.LittleEndian.PutUint32(block[:4], seed)

	padded := append([]byte(nil), data...)
	if r := len(padded) % aes.BlockSize; r != 0 {
		padded = append(padded, make([]byte, aes.BlockSize-r)...)
	}
	c, err := aes.NewCipher(key)
	if err != nil {
		panic(err)
	}
	for i := 0; i < len(padded); i += aes.BlockSize {
		c.Encrypt(padded[i:i+aes.BlockSize], padded[i:i+aes.BlockSize])
	}

	out := record.Encode(record.TagDistributeDocData, 0, block[:])
	return append(out, padded...)
}
