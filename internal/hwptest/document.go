package hwptest

import (
	"fmt"
	"sort"

	"github.com/tsawler/hwp/model"
	"github.com/tsawler/hwp/record"
)

// Document assembles a complete HWP compound file. Streams are deflated
// when Flags carries FlagCompressed and sections are written to ViewText
// with distribution encryption when it carries FlagDistributable.
type Document struct {
	Version  uint32
	Flags    model.FileFlags
	DocInfo  *Stream
	Sections []*Stream
	BinData  map[string][]byte // stream name under BinData, stored as given
	Seed     uint32
	Key      []byte
}

// NewDocument returns an uncompressed version 5.0.3.2 document.
func NewDocument(sections ...*Stream) *Document {
	return &Document{
		Version:  Version5032,
		DocInfo:  &Stream{},
		Sections: sections,
		Seed:     0x1234,
		Key:      []byte("0123456789abcdef"),
	}
}

// Paragraphs returns a section stream holding one top-level paragraph per
// line of text.
func Paragraphs(lines ...string) *Stream {
	s := &Stream{}
	for _, line := range lines {
		s.Add(record.TagParaHeader, 0, ParaHeader(uint32(len([]rune(line))+1))).
			Add(record.TagParaText, 1, append(Text(line), Char(13)...))
	}
	return s
}

// Bytes serializes the document.
func (d *Document) Bytes() []byte {
	c := NewCompound()
	c.Add("FileHeader", FileHeader(d.Version, d.Flags))

	compressed := d.Flags&model.FlagCompressed != 0
	encode := func(b []byte) []byte {
		if compressed {
			return Deflate(b)
		}
		return b
	}
	c.Add("DocInfo", encode(d.DocInfo.Bytes()))

	storage := "BodyText"
	if d.Flags&model.FlagDistributable != 0 {
		storage = "ViewText"
	}
	for i, s := range d.Sections {
		data := encode(s.Bytes())
		if storage == "ViewText" {
			data = Distribute(data, d.Seed, d.Key)
		}
		c.Add(fmt.Sprintf("%s/Section%d", storage, i), data)
	}
	names := make([]string, 0, len(d.BinData))
	for name := range d.BinData {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c.Add("BinData/"+name, d.BinData[name])
	}
	return c.Bytes()
}
