package model

// ShapeKind is the concrete kind of a drawing object.
type ShapeKind int

const (
	ShapeUnknown ShapeKind = iota
	ShapeLine
	ShapeRect
	ShapeEllipse
	ShapeArc
	ShapePolygon
	ShapeCurve
	ShapeOLE
	ShapePicture
	ShapeContainer
	ShapeTextArt
	ShapeEquation
)

var shapeKindNames = [...]string{
	"unknown", "line", "rect", "ellipse", "arc", "polygon", "curve",
	"ole", "picture", "container", "textart", "equation",
}

func (k ShapeKind) String() string {
	if k < 0 || int(k) >= len(shapeKindNames) {
		return "unknown"
	}
	return shapeKindNames[k]
}

// ShapeKindOf maps a SHAPE_COMPONENT id to its kind
func ShapeKindOf(id CtrlID) ShapeKind {
	switch id {
	case ShapeIDLine:
		return ShapeLine
	case ShapeIDRect:
		return ShapeRect
	case ShapeIDEllipse:
		return ShapeEllipse
	case ShapeIDArc:
		return ShapeArc
	case ShapeIDPolygon:
		return ShapePolygon
	case ShapeIDCurve:
		return ShapeCurve
	case ShapeIDOLE:
		return ShapeOLE
	case ShapeIDPicture:
		return ShapePicture
	case ShapeIDContainer:
		return ShapeContainer
	case ShapeIDTextArt:
		return ShapeTextArt
	default:
		return ShapeUnknown
	}
}

// ShapeComponent holds the geometry shared by every drawing object.
type ShapeComponent struct {
	ID           CtrlID
	OffsetX      int32
	OffsetY      int32
	GroupLevel   uint16
	LocalVersion uint16
	InitWidth    uint32
	InitHeight   uint32
	Width        uint32
	Height       uint32
	Attr         uint32
	Rotation     int16
	CenterX      int32
	CenterY      int32
	// Rest holds transformation matrices and line/fill info.
	Rest []byte
}

// ShapeDetail is the kind-specific payload of a Shape. The set of
// implementations is closed.
type ShapeDetail interface {
	shapeKind() ShapeKind
}

// Shape is a drawing object: a "gso " or "eqed" control, or a child of a
// container.
type Shape struct {
	// Object is zero for container children.
	Object    ObjectHeader
	Component *ShapeComponent
	Detail    ShapeDetail
	Caption   *Caption

	TextBoxList *ListHeader
	TextBox     []*Paragraph
}

// Kind returns the shape kind, derived from the detail record when present
// and from the component id otherwise.
func (s *Shape) Kind() ShapeKind {
	if s.Detail != nil {
		return s.Detail.shapeKind()
	}
	if s.Component != nil {
		return ShapeKindOf(s.Component.ID)
	}
	return ShapeUnknown
}

// Children returns the shapes nested in a container
func (s *Shape) Children() []*Shape {
	if c, ok := s.Detail.(*Container); ok {
		return c.Children
	}
	return nil
}

// Walk calls fn for s and every nested shape, depth first
func (s *Shape) Walk(fn func(*Shape)) {
	fn(s)
	for _, child := range s.Children() {
		child.Walk(fn)
	}
}

func (s *Shape) appendParagraphs(lists [][]*Paragraph) [][]*Paragraph {
	if s.Caption != nil {
		lists = append(lists, s.Caption.Paragraphs)
	}
	s.Walk(func(sh *Shape) {
		if len(sh.TextBox) > 0 {
			lists = append(lists, sh.TextBox)
		}
	})
	return lists
}

// Line is a straight line.
type Line struct {
	Start, End Point
	Attr       uint16
}

// Rect is a rectangle.
type Rect struct {
	Round  uint8
	Points [4]Point
}

// Ellipse is an ellipse or elliptic arc.
type Ellipse struct {
	Attr              uint32
	Center, Axis1     Point
	Axis2, Start, End Point
	Start2, End2      Point
}

// Arc is an arc.
type Arc struct {
	Type         uint8
	Center       Point
	Axis1, Axis2 Point
}

// Polygon is a closed or open polyline.
type Polygon struct {
	Points []Point
}

// Curve is a polyline with per-segment curve types.
type Curve struct {
	Points       []Point
	SegmentTypes []uint8
}

// ImageFill locates a picture's bitmap.
type ImageFill struct {
	Brightness int8
	Contrast   int8
	Effect     uint8
	BinDataID  uint16
}

// Picture is an embedded image.
type Picture struct {
	BorderColor Color
	BorderWidth int32
	BorderAttr  uint32
	Corners     [4]Point
	Crop        [4]int32 // left, top, right, bottom
	Padding     [4]uint16
	Image       ImageFill
	Rest        []byte
}

// OLE is an embedded OLE object.
type OLE struct {
	Attr      uint32
	Extent    Size
	BinDataID uint16
	Rest      []byte
}

// Container groups child shapes.
type Container struct {
	ChildIDs []CtrlID
	Children []*Shape
}

// TextArt is a text-art object, kept raw.
type TextArt struct {
	Raw []byte
}

// Equation is an equation editor object.
type Equation struct {
	Attr     uint32
	Script   string
	Size     uint32
	Color    Color
	Baseline int16
	Rest     []byte
}

func (*Line) shapeKind() ShapeKind      { return ShapeLine }
func (*Rect) shapeKind() ShapeKind      { return ShapeRect }
func (*Ellipse) shapeKind() ShapeKind   { return ShapeEllipse }
func (*Arc) shapeKind() ShapeKind       { return ShapeArc }
func (*Polygon) shapeKind() ShapeKind   { return ShapePolygon }
func (*Curve) shapeKind() ShapeKind     { return ShapeCurve }
func (*Picture) shapeKind() ShapeKind   { return ShapePicture }
func (*OLE) shapeKind() ShapeKind       { return ShapeOLE }
func (*Container) shapeKind() ShapeKind { return ShapeContainer }
func (*TextArt) shapeKind() ShapeKind   { return ShapeTextArt }
func (*Equation) shapeKind() ShapeKind  { return ShapeEquation }
