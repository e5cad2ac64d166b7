package model

// CtrlID is a four-character control type id such as "tbl " or "secd". The
// first character is stored in the most significant byte.
type CtrlID uint32

// MakeCtrlID packs a four-character id. Shorter ids are padded with spaces.
func MakeCtrlID(s string) CtrlID {
	var b [4]byte
	for i := range b {
		b[i] = ' '
		if i < len(s) {
			b[i] = s[i]
		}
	}
	return CtrlID(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

func (id CtrlID) String() string {
	return string([]byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)})
}

// Control type ids.
var (
	CtrlTable         = MakeCtrlID("tbl ")
	CtrlShape         = MakeCtrlID("gso ")
	CtrlEquation      = MakeCtrlID("eqed")
	CtrlForm          = MakeCtrlID("form")
	CtrlSectionDef    = MakeCtrlID("secd")
	CtrlColumnDef     = MakeCtrlID("cold")
	CtrlHeader        = MakeCtrlID("head")
	CtrlFooter        = MakeCtrlID("foot")
	CtrlFootnote      = MakeCtrlID("fn  ")
	CtrlEndnote       = MakeCtrlID("en  ")
	CtrlAutoNumber    = MakeCtrlID("atno")
	CtrlNewNumber     = MakeCtrlID("nwno")
	CtrlPageHide      = MakeCtrlID("pghd")
	CtrlPageNumberPos = MakeCtrlID("pgnp")
	CtrlBookmark      = MakeCtrlID("bokm")
	CtrlHiddenComment = MakeCtrlID("tcmt")
)

// Shape component ids, carried by SHAPE_COMPONENT records.
var (
	ShapeIDLine      = MakeCtrlID("$lin")
	ShapeIDRect      = MakeCtrlID("$rec")
	ShapeIDEllipse   = MakeCtrlID("$ell")
	ShapeIDArc       = MakeCtrlID("$arc")
	ShapeIDPolygon   = MakeCtrlID("$pol")
	ShapeIDCurve     = MakeCtrlID("$cur")
	ShapeIDOLE       = MakeCtrlID("$ole")
	ShapeIDPicture   = MakeCtrlID("$pic")
	ShapeIDContainer = MakeCtrlID("$con")
	ShapeIDTextArt   = MakeCtrlID("$tat")
)

// IsField reports whether id names a field control ("%...").
func (id CtrlID) IsField() bool {
	return byte(id>>24) == '%'
}

// ControlID is the index of a control in its section's arena.
type ControlID int
