package model

// SectionDef is a section definition ("secd") control. Header and footer
// controls that follow it in the section attach themselves to it.
type SectionDef struct {
	Attr             uint32
	ColumnGap        int16
	VertGrid         uint16
	HorzGrid         uint16
	DefaultTabStop   uint32
	NumberingShapeID uint16
	PageStart        uint16
	FigureStart      uint16
	TableStart       uint16
	EquationStart    uint16
	Extra            []byte

	Page        *PageDef
	Footnote    *NoteShape
	Endnote     *NoteShape
	BorderFills []PageBorderFill

	// HeadFoots lists header and footer controls in encounter order.
	HeadFoots []ControlID
}

// PageDef is the page geometry of a section.
type PageDef struct {
	Width        uint32
	Height       uint32
	LeftMargin   uint32
	RightMargin  uint32
	TopMargin    uint32
	BottomMargin uint32
	HeaderMargin uint32
	FooterMargin uint32
	Gutter       uint32
	Attr         uint32
}

// Landscape reports the orientation bit
func (p *PageDef) Landscape() bool { return p.Attr&1 != 0 }

// TextWidth returns the printable width
func (p *PageDef) TextWidth() int64 {
	return int64(p.Width) - int64(p.LeftMargin) - int64(p.RightMargin) - int64(p.Gutter)
}

// NoteShape describes footnote or endnote numbering and divider layout.
type NoteShape struct {
	Attr             uint32
	UserChar         uint16
	Prefix           uint16
	Suffix           uint16
	StartNumber      uint16
	DividerLength    uint16
	DividerTop       uint16
	DividerBottom    uint16
	NoteSpacing      uint16
	DividerLineType  uint8
	DividerThickness uint8
	DividerColor     Color
}

// PageBorderFill places a border fill on both, even or odd pages.
type PageBorderFill struct {
	Attr         uint32
	Left         uint16
	Right        uint16
	Top          uint16
	Bottom       uint16
	BorderFillID uint16
}
