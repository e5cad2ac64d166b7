package decoder

import (
	"github.com/tsawler/hwp/model"
	"github.com/tsawler/hwp/record"
)

// Fixed record sizes.
const (
	pageDefSize         = 40
	pageBorderFillSize  = 14
	noteShapeSize       = 26
	noteShapeSizeLong   = 28
	paraHeaderMinSize   = 22
	charShapeRefSize    = 8
	lineSegSize         = 36
	rangeTagSize        = 12
	objectHeaderMinSize = 36
	zoneSize            = 10
	captionListSize     = 22
)

var trackChangeVersion = model.Version{Major: 5, Minor: 0, Build: 3, Revision: 2}

func parseParaHeader(rec record.Record, version model.Version) (model.ParaHeader, error) {
	if len(rec.Data) < paraHeaderMinSize {
		return model.ParaHeader{}, record.Errorf(rec, "%d bytes, want at least %d", len(rec.Data), paraHeaderMinSize)
	}
	c := rec.Cursor()
	chars := c.U32()
	h := model.ParaHeader{
		Chars:          chars & 0x7FFFFFFF,
		LastInList:     chars&0x80000000 != 0,
		ControlMask:    c.U32(),
		ParaShapeID:    c.U16(),
		StyleID:        c.U8(),
		BreakType:      c.U8(),
		CharShapeCount: c.U16(),
		RangeTagCount:  c.U16(),
		LineSegCount:   c.U16(),
		InstanceID:     c.U32(),
	}
	if version.AtLeast(trackChangeVersion) && c.Remaining() >= 2 {
		h.TrackChangeMerge = c.U16()
	}
	return h, c.Err()
}

func parseCharShapeRefs(rec record.Record) ([]model.CharShapeRef, error) {
	if len(rec.Data)%charShapeRefSize != 0 {
		return nil, record.Errorf(rec, "size %d is not a multiple of %d", len(rec.Data), charShapeRefSize)
	}
	c := rec.Cursor()
	refs := make([]model.CharShapeRef, len(rec.Data)/charShapeRefSize)
	for i := range refs {
		refs[i] = model.CharShapeRef{Pos: c.U32(), CharShapeID: c.U32()}
	}
	return refs, c.ExpectEnd()
}

func parseLineSegs(rec record.Record) ([]model.LineSeg, error) {
	if len(rec.Data)%lineSegSize != 0 {
		return nil, record.Errorf(rec, "size %d is not a multiple of %d", len(rec.Data), lineSegSize)
	}
	c := rec.Cursor()
	segs := make([]model.LineSeg, len(rec.Data)/lineSegSize)
	for i := range segs {
		segs[i] = model.LineSeg{
			TextStart:  c.U32(),
			VertPos:    c.I32(),
			Height:     c.I32(),
			TextHeight: c.I32(),
			Baseline:   c.I32(),
			Spacing:    c.I32(),
			HorzStart:  c.I32(),
			Width:      c.I32(),
			Flags:      c.U32(),
		}
	}
	return segs, c.ExpectEnd()
}

func parseRangeTags(rec record.Record) ([]model.RangeTag, error) {
	if len(rec.Data)%rangeTagSize != 0 {
		return nil, record.Errorf(rec, "size %d is not a multiple of %d", len(rec.Data), rangeTagSize)
	}
	c := rec.Cursor()
	tags := make([]model.RangeTag, len(rec.Data)/rangeTagSize)
	for i := range tags {
		tags[i] = model.RangeTag{Start: c.U32(), End: c.U32(), Tag: c.U32()}
	}
	return tags, c.ExpectEnd()
}

// parseObjectHeader reads the common header of tbl/gso/eqed/form controls
// from a cursor positioned after the control id.
func parseObjectHeader(rec record.Record, c *record.Cursor) (model.ObjectHeader, error) {
	if c.Remaining() < objectHeaderMinSize {
		return model.ObjectHeader{}, record.Errorf(rec, "object header is %d bytes, want at least %d",
			c.Remaining(), objectHeaderMinSize)
	}
	o := model.ObjectHeader{
		Attr:       c.U32(),
		VertOffset: c.I32(),
		HorzOffset: c.I32(),
		Width:      c.U32(),
		Height:     c.U32(),
		ZOrder:     c.I32(),
	}
	for i := range o.Margins {
		o.Margins[i] = c.I16()
	}
	o.InstanceID = c.U32()
	if c.Remaining() >= 4 {
		o.PageDivide = c.I32()
	}
	if c.Remaining() >= 2 {
		o.Description = c.WString()
	}
	return o, c.Err()
}

func parseListHeader(c *record.Cursor) model.ListHeader {
	l := model.ListHeader{ParaCount: c.U16()}
	c.Skip(2)
	l.Attr = c.U32()
	return l
}

func parseCaption(rec record.Record) (*model.Caption, error) {
	c := rec.Cursor()
	caption := &model.Caption{
		List:     parseListHeader(c),
		Attr:     c.U32(),
		Width:    c.U32(),
		Gap:      c.I16(),
		MaxWidth: c.U32(),
	}
	return caption, c.Err()
}

func parseCell(rec record.Record) (*model.Cell, error) {
	c := rec.Cursor()
	cell := &model.Cell{
		List:    parseListHeader(c),
		Col:     int(c.U16()),
		Row:     int(c.U16()),
		ColSpan: int(c.U16()),
		RowSpan: int(c.U16()),
		Width:   c.U32(),
		Height:  c.U32(),
	}
	for i := range cell.Margins {
		cell.Margins[i] = c.U16()
	}
	cell.BorderFillID = c.U16()
	if err := c.Err(); err != nil {
		return nil, err
	}
	if cell.ColSpan == 0 || cell.RowSpan == 0 {
		return nil, record.Errorf(rec, "cell (%d,%d) has zero span", cell.Row, cell.Col)
	}
	return cell, nil
}

// parseTable decodes a TABLE record into t. The record must be consumed
// exactly.
func parseTable(rec record.Record, t *model.Table) error {
	c := rec.Cursor()
	t.Attr = c.U32()
	t.Rows = int(c.U16())
	t.Cols = int(c.U16())
	t.CellSpacing = c.U16()
	for i := range t.Padding {
		t.Padding[i] = c.U16()
	}
	t.RowSizes = make([]uint16, 0, t.Rows)
	for i := 0; i < t.Rows && c.Err() == nil; i++ {
		t.RowSizes = append(t.RowSizes, c.U16())
	}
	t.BorderFillID = c.U16()
	if c.Remaining() >= 2 {
		n := int(c.U16())
		for i := 0; i < n && c.Err() == nil; i++ {
			t.Zones = append(t.Zones, model.Zone{
				StartCol:     c.U16(),
				StartRow:     c.U16(),
				EndCol:       c.U16(),
				EndRow:       c.U16(),
				BorderFillID: c.U16(),
			})
		}
	}
	return c.ExpectEnd()
}

func parsePageDef(rec record.Record) (*model.PageDef, error) {
	if len(rec.Data) != pageDefSize {
		return nil, record.Errorf(rec, "size %d, want %d", len(rec.Data), pageDefSize)
	}
	c := rec.Cursor()
	p := &model.PageDef{
		Width:        c.U32(),
		Height:       c.U32(),
		LeftMargin:   c.U32(),
		RightMargin:  c.U32(),
		TopMargin:    c.U32(),
		BottomMargin: c.U32(),
		HeaderMargin: c.U32(),
		FooterMargin: c.U32(),
		Gutter:       c.U32(),
		Attr:         c.U32(),
	}
	return p, c.ExpectEnd()
}

func parseNoteShape(rec record.Record) (*model.NoteShape, error) {
	if n := len(rec.Data); n != noteShapeSize && n != noteShapeSizeLong {
		return nil, record.Errorf(rec, "size %d, want %d or %d", n, noteShapeSize, noteShapeSizeLong)
	}
	c := rec.Cursor()
	s := &model.NoteShape{
		Attr:             c.U32(),
		UserChar:         c.U16(),
		Prefix:           c.U16(),
		Suffix:           c.U16(),
		StartNumber:      c.U16(),
		DividerLength:    c.U16(),
		DividerTop:       c.U16(),
		DividerBottom:    c.U16(),
		NoteSpacing:      c.U16(),
		DividerLineType:  c.U8(),
		DividerThickness: c.U8(),
		DividerColor:     model.Color(c.U32()),
	}
	if c.Remaining() == 2 {
		c.Skip(2)
	}
	return s, c.ExpectEnd()
}

func parsePageBorderFill(rec record.Record) (model.PageBorderFill, error) {
	if len(rec.Data) != pageBorderFillSize {
		return model.PageBorderFill{}, record.Errorf(rec, "size %d, want %d", len(rec.Data), pageBorderFillSize)
	}
	c := rec.Cursor()
	f := model.PageBorderFill{
		Attr:         c.U32(),
		Left:         c.U16(),
		Right:        c.U16(),
		Top:          c.U16(),
		Bottom:       c.U16(),
		BorderFillID: c.U16(),
	}
	return f, c.ExpectEnd()
}

func parseSectionDef(rec record.Record, c *record.Cursor) (*model.SectionDef, error) {
	d := &model.SectionDef{
		Attr:             c.U32(),
		ColumnGap:        c.I16(),
		VertGrid:         c.U16(),
		HorzGrid:         c.U16(),
		DefaultTabStop:   c.U32(),
		NumberingShapeID: c.U16(),
		PageStart:        c.U16(),
		FigureStart:      c.U16(),
		TableStart:       c.U16(),
		EquationStart:    c.U16(),
	}
	d.Extra = c.Rest()
	return d, c.Err()
}

func parsePoint(c *record.Cursor) model.Point {
	return model.Point{X: c.I32(), Y: c.I32()}
}

func parseShapeComponent(rec record.Record, topLevel bool) (*model.ShapeComponent, error) {
	c := rec.Cursor()
	s := &model.ShapeComponent{ID: model.CtrlID(c.U32())}
	if topLevel {
		// The outermost component repeats its id.
		c.Skip(4)
	}
	s.OffsetX = c.I32()
	s.OffsetY = c.I32()
	s.GroupLevel = c.U16()
	s.LocalVersion = c.U16()
	s.InitWidth = c.U32()
	s.InitHeight = c.U32()
	s.Width = c.U32()
	s.Height = c.U32()
	s.Attr = c.U32()
	s.Rotation = c.I16()
	s.CenterX = c.I32()
	s.CenterY = c.I32()
	s.Rest = c.Rest()
	return s, c.Err()
}

// parseShapeDetail decodes a shape-kind record. It returns nil for tags
// that are not shape kinds.
func parseShapeDetail(rec record.Record) (model.ShapeDetail, error) {
	c := rec.Cursor()
	var d model.ShapeDetail
	switch rec.Tag {
	case record.TagShapeComponentLine:
		l := &model.Line{Start: parsePoint(c), End: parsePoint(c)}
		if c.Remaining() >= 2 {
			l.Attr = c.U16()
		}
		d = l
	case record.TagShapeComponentRect:
		r := &model.Rect{Round: c.U8()}
		for i := range r.Points {
			r.Points[i] = parsePoint(c)
		}
		d = r
	case record.TagShapeComponentEllipse:
		d = &model.Ellipse{
			Attr:   c.U32(),
			Center: parsePoint(c),
			Axis1:  parsePoint(c),
			Axis2:  parsePoint(c),
			Start:  parsePoint(c),
			End:    parsePoint(c),
			Start2: parsePoint(c),
			End2:   parsePoint(c),
		}
	case record.TagShapeComponentArc:
		d = &model.Arc{Type: c.U8(), Center: parsePoint(c), Axis1: parsePoint(c), Axis2: parsePoint(c)}
	case record.TagShapeComponentPolygon:
		d = &model.Polygon{Points: parsePoints(c)}
	case record.TagShapeComponentCurve:
		cv := &model.Curve{Points: parsePoints(c)}
		if n := len(cv.Points) - 1; n > 0 && c.Remaining() >= n {
			cv.SegmentTypes = append([]uint8(nil), c.Bytes(n)...)
		}
		d = cv
	case record.TagShapeComponentPicture:
		p := &model.Picture{
			BorderColor: model.Color(c.U32()),
			BorderWidth: c.I32(),
			BorderAttr:  c.U32(),
		}
		for i := range p.Corners {
			p.Corners[i] = parsePoint(c)
		}
		for i := range p.Crop {
			p.Crop[i] = c.I32()
		}
		for i := range p.Padding {
			p.Padding[i] = c.U16()
		}
		p.Image = model.ImageFill{
			Brightness: c.I8(),
			Contrast:   c.I8(),
			Effect:     c.U8(),
			BinDataID:  c.U16(),
		}
		p.Rest = c.Rest()
		d = p
	case record.TagShapeComponentOLE:
		o := &model.OLE{Attr: c.U32()}
		o.Extent = model.Size{Width: c.U32(), Height: c.U32()}
		o.BinDataID = c.U16()
		o.Rest = c.Rest()
		d = o
	case record.TagShapeComponentContainer:
		n := int(c.U16())
		ct := &model.Container{}
		for i := 0; i < n && c.Err() == nil; i++ {
			ct.ChildIDs = append(ct.ChildIDs, model.CtrlID(c.U32()))
		}
		d = ct
	case record.TagShapeComponentTextArt:
		d = &model.TextArt{Raw: c.Rest()}
	default:
		return nil, nil
	}
	return d, c.Err()
}

func parsePoints(c *record.Cursor) []model.Point {
	n := int(c.U16())
	if n*8 > c.Remaining() {
		c.Skip(n * 8)
		return nil
	}
	pts := make([]model.Point, n)
	for i := range pts {
		pts[i] = parsePoint(c)
	}
	return pts
}

func parseEquation(rec record.Record) (*model.Equation, error) {
	c := rec.Cursor()
	e := &model.Equation{
		Attr:     c.U32(),
		Script:   c.WString(),
		Size:     c.U32(),
		Color:    model.Color(c.U32()),
		Baseline: c.I16(),
	}
	e.Rest = c.Rest()
	return e, c.Err()
}

func parseFormObject(rec record.Record, f *model.Form) error {
	c := rec.Cursor()
	f.FormID = model.CtrlID(c.U32())
	c.Skip(4)
	f.Properties = c.WString()
	return c.Err()
}
