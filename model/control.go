package model

// ControlKind discriminates the control variants.
type ControlKind int

const (
	KindPlaceholder ControlKind = iota
	KindTable
	KindShape
	KindContainer
	KindHeadFoot
	KindNote
	KindSectionDef
	KindForm
	KindGeneric
)

func (k ControlKind) String() string {
	switch k {
	case KindPlaceholder:
		return "Placeholder"
	case KindTable:
		return "Table"
	case KindShape:
		return "Shape"
	case KindContainer:
		return "Container"
	case KindHeadFoot:
		return "HeadFoot"
	case KindNote:
		return "Note"
	case KindSectionDef:
		return "SectionDef"
	case KindForm:
		return "Form"
	case KindGeneric:
		return "Generic"
	default:
		return "Unknown"
	}
}

// ControlBody is the variant payload of a Control. The set of
// implementations is closed.
type ControlBody interface {
	controlKind() ControlKind
}

// Control is an inline object anchored in a paragraph.
type Control struct {
	ID CtrlID
	// Fulfilled is set once the control's CTRL_HEADER has been decoded.
	Fulfilled bool
	// Pos is the code unit offset of the anchoring character, or -1.
	Pos int

	Body ControlBody
	// Data holds CTRL_DATA payloads attached to the control.
	Data [][]byte
}

// Kind returns the variant of the control
func (c *Control) Kind() ControlKind {
	if c.Body == nil {
		return KindPlaceholder
	}
	return c.Body.controlKind()
}

// Paragraphs returns the paragraph lists owned by the control, in document
// order: captions first, then cells, text boxes or note bodies.
func (c *Control) Paragraphs() [][]*Paragraph {
	var lists [][]*Paragraph
	switch b := c.Body.(type) {
	case *Table:
		if b.Caption != nil {
			lists = append(lists, b.Caption.Paragraphs)
		}
		for _, cell := range b.Cells {
			lists = append(lists, cell.Paragraphs)
		}
	case *Shape:
		lists = b.appendParagraphs(lists)
	case *HeadFoot:
		lists = append(lists, b.Paragraphs)
	case *Note:
		lists = append(lists, b.Paragraphs)
	case *Generic:
		if len(b.Paragraphs) > 0 {
			lists = append(lists, b.Paragraphs)
		}
	}
	return lists
}

// ObjectHeader is the common header of object-like controls (tables,
// shapes, equations, forms).
type ObjectHeader struct {
	Attr        uint32
	VertOffset  int32
	HorzOffset  int32
	Width       uint32
	Height      uint32
	ZOrder      int32
	Margins     [4]int16
	InstanceID  uint32
	PageDivide  int32
	Description string
}

// TreatAsChar reports whether the object flows with the text
func (o *ObjectHeader) TreatAsChar() bool { return o.Attr&1 != 0 }

// ListHeader holds the common fields of a LIST_HEADER record.
type ListHeader struct {
	ParaCount uint16
	Attr      uint32
}

// VerticalAlignment represents vertical alignment
type VerticalAlignment int

const (
	VAlignTop VerticalAlignment = iota
	VAlignMiddle
	VAlignBottom
)

// VerticalAlign decodes bits 21-22 of the list attribute
func (l ListHeader) VerticalAlign() VerticalAlignment {
	return VerticalAlignment(l.Attr >> 21 & 0x3)
}

// CaptionSide is where a caption sits relative to its object.
type CaptionSide uint8

const (
	CaptionLeft CaptionSide = iota
	CaptionRight
	CaptionTop
	CaptionBottom
)

// Caption is the caption of a table or shape.
type Caption struct {
	List       ListHeader
	Attr       uint32
	Width      uint32
	Gap        int16
	MaxWidth   uint32
	Paragraphs []*Paragraph
}

// Side returns the caption placement
func (c *Caption) Side() CaptionSide { return CaptionSide(c.Attr & 0x3) }

// PageKind selects which pages a header or footer applies to.
type PageKind uint8

const (
	PageBoth PageKind = iota
	PageEven
	PageOdd
)

// HeadFoot is a header ("head") or footer ("foot") control.
type HeadFoot struct {
	Footer     bool
	Attr       uint32
	List       ListHeader
	TextWidth  uint32
	TextHeight uint32
	Paragraphs []*Paragraph
}

// AppliesTo returns the page kind the header or footer is used on
func (h *HeadFoot) AppliesTo() PageKind { return PageKind(h.Attr & 0x3) }

// Note is a footnote ("fn  ") or endnote ("en  ") control.
type Note struct {
	Endnote    bool
	Number     uint32
	List       ListHeader
	Paragraphs []*Paragraph
}

// Form is a form object control.
type Form struct {
	Object     ObjectHeader
	FormID     CtrlID
	Properties string
}

// Generic is any control without a dedicated model; its CTRL_HEADER
// payload is kept raw.
type Generic struct {
	Payload    []byte
	Paragraphs []*Paragraph
}

func (*Table) controlKind() ControlKind      { return KindTable }
func (*HeadFoot) controlKind() ControlKind   { return KindHeadFoot }
func (*Note) controlKind() ControlKind       { return KindNote }
func (*SectionDef) controlKind() ControlKind { return KindSectionDef }
func (*Form) controlKind() ControlKind       { return KindForm }
func (*Generic) controlKind() ControlKind    { return KindGeneric }

func (s *Shape) controlKind() ControlKind {
	if s.Kind() == ShapeContainer {
		return KindContainer
	}
	return KindShape
}
