package model

import "strings"

// Control character codes that appear in paragraph text.
const (
	CharUnusable      = 0
	CharSectionColumn = 2
	CharFieldStart    = 3
	CharFieldEnd      = 4
	CharTab           = 9
	CharLineBreak     = 10
	CharObject        = 11
	CharParaBreak     = 13
	CharHiddenComment = 15
	CharHeadFoot      = 16
	CharNote          = 17
	CharAutoNumber    = 18
	CharPageControl   = 21
	CharBookmark      = 22
	CharDutmal        = 23
	CharHyphen        = 24
	CharNBSpace       = 30
	CharFixedSpace    = 31
)

// CharKind classifies a UTF-16 code unit in paragraph text.
type CharKind uint8

const (
	// CharText is an ordinary character.
	CharText CharKind = iota
	// CharControl occupies a single code unit.
	CharControl
	// CharInline occupies 8 code units and carries no object.
	CharInline
	// CharExtended occupies 8 code units and refers to a control object.
	CharExtended
)

// ClassifyChar returns the kind of code unit c
func ClassifyChar(c uint16) CharKind {
	if c >= 32 {
		return CharText
	}
	switch c {
	case 0, 10, 13, 24, 25, 26, 27, 28, 29, 30, 31:
		return CharControl
	case 4, 5, 6, 7, 8, 9, 19, 20:
		return CharInline
	default:
		return CharExtended
	}
}

// CharUnits is the number of code units an inline or extended control
// character occupies.
const CharUnits = 8

// TextRun is a piece of paragraph text. Plain text is merged into one run;
// every control character gets its own run.
type TextRun struct {
	Pos  int // code unit offset within the paragraph
	Kind CharKind
	Text string // CharText only

	Code    uint16    // control character code
	CtrlID  CtrlID    // inline and extended characters
	Control ControlID // extended characters only
}

// CharShapeRef switches the character shape from Pos onwards.
type CharShapeRef struct {
	Pos         uint32
	CharShapeID uint32
}

// LineSeg is one laid-out line.
type LineSeg struct {
	TextStart  uint32
	VertPos    int32
	Height     int32
	TextHeight int32
	Baseline   int32
	Spacing    int32
	HorzStart  int32
	Width      int32
	Flags      uint32
}

// RangeTag marks a span of text (highlight, bookmark range...).
type RangeTag struct {
	Start, End uint32
	Tag        uint32
}

// Kind returns the range tag kind stored in the top byte
func (r RangeTag) Kind() uint8 { return uint8(r.Tag >> 24) }

// ParaHeader holds the fixed fields of a PARA_HEADER record.
type ParaHeader struct {
	Chars            uint32
	LastInList       bool
	ControlMask      uint32
	ParaShapeID      uint16
	StyleID          uint8
	BreakType        uint8
	CharShapeCount   uint16
	RangeTagCount    uint16
	LineSegCount     uint16
	InstanceID       uint32
	TrackChangeMerge uint16
}

// Paragraph is a run of text with its layout tables and inline controls.
type Paragraph struct {
	ParaHeader

	Runs       []TextRun
	CharShapes []CharShapeRef
	LineSegs   []LineSeg
	RangeTags  []RangeTag

	// Controls lists the paragraph's controls in text order.
	Controls []ControlID
}

// Text renders the paragraph as plain text. Tabs, line breaks, hyphens and
// fixed spaces are mapped to their ASCII equivalents; other control
// characters are dropped.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, run := range p.Runs {
		switch run.Kind {
		case CharText:
			sb.WriteString(run.Text)
		case CharControl:
			switch run.Code {
			case CharLineBreak:
				sb.WriteByte('\n')
			case CharHyphen:
				sb.WriteByte('-')
			case CharNBSpace, CharFixedSpace:
				sb.WriteByte(' ')
			}
		case CharInline:
			if run.Code == CharTab {
				sb.WriteByte('\t')
			}
		}
	}
	return sb.String()
}

// IsEmpty reports whether the paragraph renders no text and has no controls
func (p *Paragraph) IsEmpty() bool {
	return len(p.Controls) == 0 && strings.TrimSpace(p.Text()) == ""
}

// ParagraphsText joins the text of paragraphs with newlines
func ParagraphsText(paras []*Paragraph) string {
	parts := make([]string, 0, len(paras))
	for _, p := range paras {
		parts = append(parts, p.Text())
	}
	return strings.Join(parts, "\n")
}
