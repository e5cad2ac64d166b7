package model

import "sort"

// DocInfo holds the document-wide resources referenced by id from the body.
type DocInfo struct {
	Properties DocumentProperties
	IDMappings IDMappings

	// BinData is keyed by item id (1-based, in record order).
	BinData     map[uint16]*BinDataItem
	FaceNames   []FaceName
	BorderFills []BorderFill
	CharShapes  []CharShape
	TabDefs     []TabDef
	Numberings  []Numbering
	Bullets     []Bullet
	ParaShapes  []ParaShape
	Styles      []Style
	MemoShapes  [][]byte

	DocData             []byte
	LayoutCompatibility []uint32

	// Compatible is set by a COMPATIBLE_DOCUMENT record.
	Compatible       bool
	CompatibleTarget CompatibleTarget
}

// NewDocInfo creates an empty DocInfo
func NewDocInfo() *DocInfo {
	return &DocInfo{BinData: make(map[uint16]*BinDataItem)}
}

// BinDataIDs returns the item ids in ascending order
func (d *DocInfo) BinDataIDs() []uint16 {
	ids := make([]uint16, 0, len(d.BinData))
	for id := range d.BinData {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CharShape returns the character shape with the given id, or nil
func (d *DocInfo) CharShape(id uint32) *CharShape {
	if int64(id) >= int64(len(d.CharShapes)) {
		return nil
	}
	return &d.CharShapes[id]
}

// ParaShape returns the paragraph shape with the given id, or nil
func (d *DocInfo) ParaShape(id uint16) *ParaShape {
	if int(id) >= len(d.ParaShapes) {
		return nil
	}
	return &d.ParaShapes[id]
}

// Style returns the style with the given id, or nil
func (d *DocInfo) Style(id uint8) *Style {
	if int(id) >= len(d.Styles) {
		return nil
	}
	return &d.Styles[id]
}

// DocumentProperties is the fixed DOCUMENT_PROPERTIES record.
type DocumentProperties struct {
	SectionCount   uint16
	PageStart      uint16
	FootnoteStart  uint16
	EndnoteStart   uint16
	PictureStart   uint16
	TableStart     uint16
	EquationStart  uint16
	CaretList      uint32
	CaretParagraph uint32
	CaretChar      uint32
}

// IDMappings holds the per-kind resource counts announced by ID_MAPPINGS.
type IDMappings []uint32

// Resource kinds indexing IDMappings.
const (
	MapBinData = iota
	MapFaceHangul
	MapFaceLatin
	MapFaceHanja
	MapFaceJapanese
	MapFaceOther
	MapFaceSymbol
	MapFaceUser
	MapBorderFill
	MapCharShape
	MapTabDef
	MapNumbering
	MapBullet
	MapParaShape
	MapStyle
	MapMemoShape
	MapTrackChange
	MapTrackChangeAuthor
)

// Count returns the count for kind, or 0 when the record is too short
func (m IDMappings) Count(kind int) uint32 {
	if kind < 0 || kind >= len(m) {
		return 0
	}
	return m[kind]
}

// Faces returns the total number of face names across all languages
func (m IDMappings) Faces() int {
	n := 0
	for k := MapFaceHangul; k <= MapFaceUser; k++ {
		n += int(m.Count(k))
	}
	return n
}

// BinDataType tells where a BinData item's bytes live.
type BinDataType uint8

const (
	BinDataLink BinDataType = iota
	BinDataEmbedding
	BinDataStorage
)

func (t BinDataType) String() string {
	switch t {
	case BinDataLink:
		return "link"
	case BinDataEmbedding:
		return "embedding"
	case BinDataStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// BinDataCompression is the per-item compression policy.
type BinDataCompression uint8

const (
	BinDataCompressDefault BinDataCompression = iota
	BinDataCompress
	BinDataNoCompress
)

// BinDataItem describes one binary payload (image, OLE object...).
type BinDataItem struct {
	ID          uint16 // item id used as the DocInfo key
	Attr        uint16
	Type        BinDataType
	Compression BinDataCompression
	State       uint8

	// Embedding and storage items.
	StorageID uint16
	Extension string

	// Link items.
	AbsolutePath string
	RelativePath string
}

// Compressed reports whether the stored bytes are deflated, given the
// document-wide default.
func (b *BinDataItem) Compressed(docDefault bool) bool {
	switch b.Compression {
	case BinDataCompress:
		return true
	case BinDataNoCompress:
		return false
	default:
		return docDefault
	}
}

// FaceName is a font face entry.
type FaceName struct {
	Attr        uint8
	Name        string
	AltType     uint8
	AltName     string
	TypeInfo    []byte
	DefaultName string
}

// BorderLine is one edge of a border fill.
type BorderLine struct {
	Type  uint8
	Width uint8
	Color Color
}

// BorderFill is a BORDER_FILL resource. Fill data is kept raw.
type BorderFill struct {
	Attr     uint16
	Borders  [4]BorderLine // left, right, top, bottom
	Diagonal BorderLine
	Fill     []byte
}

// Language slots used by per-script character shape arrays.
const (
	LangHangul = iota
	LangLatin
	LangHanja
	LangJapanese
	LangOther
	LangSymbol
	LangUser
	langCount
)

// CharShape is a CHAR_SHAPE resource.
type CharShape struct {
	FaceIDs        [langCount]uint16
	Ratios         [langCount]uint8
	Spacings       [langCount]int8
	RelSizes       [langCount]uint8
	Offsets        [langCount]int8
	BaseSize       int32
	Attr           uint32
	ShadowX        int8
	ShadowY        int8
	TextColor      Color
	UnderlineColor Color
	ShadeColor     Color
	ShadowColor    Color
	BorderFillID   uint16
	StrikeColor    Color
}

// Italic reports the italic attribute
func (c *CharShape) Italic() bool { return c.Attr&1 != 0 }

// Bold reports the bold attribute
func (c *CharShape) Bold() bool { return c.Attr&2 != 0 }

// Points returns the base size in points
func (c *CharShape) Points() float64 { return float64(c.BaseSize) / 100 }

// Tab is one tab stop.
type Tab struct {
	Position HWPUnit
	Type     uint8
	Fill     uint8
}

// TabDef is a TAB_DEF resource.
type TabDef struct {
	Attr uint32
	Tabs []Tab
}

// NumberingLevel is the format of one outline level.
type NumberingLevel struct {
	Attr        uint32
	Width       uint16
	Distance    uint16
	CharShapeID uint32
	Format      string
}

// Numbering is a NUMBERING resource.
type Numbering struct {
	Levels [7]NumberingLevel
	Start  uint16
	Extra  []byte
}

// Bullet is a BULLET resource.
type Bullet struct {
	Attr        uint32
	Width       uint16
	Distance    uint16
	CharShapeID uint32
	Char        rune
	Extra       []byte
}

// Alignment is a paragraph alignment.
type Alignment uint8

const (
	AlignJustify Alignment = iota
	AlignLeft
	AlignRight
	AlignCenter
	AlignDistribute
	AlignDivide
)

// HeadingType is the outline kind of a paragraph shape.
type HeadingType uint8

const (
	HeadingNone HeadingType = iota
	HeadingOutline
	HeadingNumbering
	HeadingBullet
)

// ParaShape is a PARA_SHAPE resource.
type ParaShape struct {
	Attr1         uint32
	LeftMargin    int32
	RightMargin   int32
	Indent        int32
	PrevSpacing   int32
	NextSpacing   int32
	LineSpacing   int32
	TabDefID      uint16
	NumberingID   uint16
	BorderFillID  uint16
	BorderOffsets [4]int16
	Attr2         uint32
	Attr3         uint32
	LineSpacing2  uint32
}

// Alignment returns the horizontal alignment
func (p *ParaShape) Alignment() Alignment { return Alignment(p.Attr1 >> 2 & 0x7) }

// HeadingType returns the outline kind
func (p *ParaShape) HeadingType() HeadingType { return HeadingType(p.Attr1 >> 23 & 0x3) }

// HeadingLevel returns the zero-based outline level
func (p *ParaShape) HeadingLevel() int { return int(p.Attr1 >> 25 & 0x7) }

// StyleKind tells whether a style applies to paragraphs or characters.
type StyleKind uint8

const (
	StyleParagraph StyleKind = iota
	StyleCharacter
)

// Style is a STYLE resource.
type Style struct {
	LocalName   string
	Name        string
	Attr        uint8
	NextStyleID uint8
	LangID      int16
	ParaShapeID uint16
	CharShapeID uint16
}

// Kind returns the style kind
func (s *Style) Kind() StyleKind { return StyleKind(s.Attr & 0x7) }

// CompatibleTarget names the program whose layout a document emulates.
type CompatibleTarget uint32

const (
	CompatibleHWP2007 CompatibleTarget = iota
	CompatibleHWP2002
	CompatibleMSWord
)

func (t CompatibleTarget) String() string {
	switch t {
	case CompatibleHWP2007:
		return "hwp2007"
	case CompatibleHWP2002:
		return "hwp2002"
	case CompatibleMSWord:
		return "msword"
	default:
		return "unknown"
	}
}
