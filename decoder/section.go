package decoder

import (
	"fmt"
	"io"

	"github.com/tsawler/hwp/model"
	"github.com/tsawler/hwp/record"
)

type frameKind int

const (
	// frameList accepts PARA_HEADER records into paras.
	frameList frameKind = iota
	// frameParagraph accepts the sub-records of one paragraph.
	frameParagraph
	// frameControl accepts the sub-records of one control.
	frameControl
	// frameShape accepts the sub-records of one shape component.
	frameShape
)

// frame is one open scope. It accepts records whose level equals level.
type frame struct {
	kind  frameKind
	level int
	rec   record.Record // record that opened the frame

	// paras receives PARA_HEADER records at this level. Control and shape
	// frames point it at the list announced by the latest LIST_HEADER.
	paras *[]*model.Paragraph

	para  *model.Paragraph
	ctrl  *model.Control
	shape *model.Shape
}

type sectionDecoder struct {
	opts    Options
	version model.Version
	sec     *model.Section
	stack   []*frame

	// secDef is the section definition in effect: the latest secd seen in
	// the stream. Header and footer controls that follow attach to it, even
	// though they sit in later paragraphs than the secd frame.
	secDef *model.SectionDef
}

// ParseSection decodes one body-text stream. Every byte of data must belong
// to exactly one record.
func ParseSection(data []byte, version model.Version, opts Options) (*model.Section, error) {
	d := &sectionDecoder{
		opts:    opts,
		version: version,
		sec:     &model.Section{},
	}
	d.stack = []*frame{{kind: frameList, level: 0, paras: &d.sec.Paragraphs}}

	r := record.NewReader(data)
	for {
		next, err := r.Peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := d.closeTo(next.Level); err != nil {
			return nil, err
		}
		rec, _ := r.Next()

		top := d.top()
		if rec.Level > top.level {
			if err := d.unexpected(rec, fmt.Sprintf("no open scope at level %d", rec.Level)); err != nil {
				return nil, err
			}
			continue
		}
		if err := d.dispatch(top, rec); err != nil {
			return nil, err
		}
	}

	if err := d.closeTo(0); err != nil {
		return nil, err
	}
	return d.sec, nil
}

func (d *sectionDecoder) top() *frame {
	return d.stack[len(d.stack)-1]
}

func (d *sectionDecoder) push(f *frame) error {
	if len(d.stack) >= d.opts.maxDepth() {
		return record.Errorf(f.rec, "nesting deeper than %d frames", d.opts.maxDepth())
	}
	d.stack = append(d.stack, f)
	return nil
}

// closeTo pops every frame deeper than level.
func (d *sectionDecoder) closeTo(level int) error {
	for len(d.stack) > 1 && d.top().level > level {
		f := d.top()
		d.stack = d.stack[:len(d.stack)-1]
		if err := d.close(f); err != nil {
			return err
		}
	}
	return nil
}

func (d *sectionDecoder) close(f *frame) error {
	if f.kind != frameControl {
		return nil
	}
	t, ok := f.ctrl.Body.(*model.Table)
	if !ok {
		return nil
	}
	if t.Cells == nil {
		return record.Errorf(f.rec, "table has no %s record", record.TagTable)
	}
	if len(t.Cells) != t.DeclaredCells() {
		return notImplemented("table with %d cells where rows declare %d", len(t.Cells), t.DeclaredCells())
	}
	return nil
}

func (d *sectionDecoder) skip(rec record.Record, reason string) {
	d.opts.debugLog("skipping section record",
		"tag", rec.Tag.String(), "level", rec.Level, "size", rec.Size, "offset", rec.Offset, "reason", reason)
	d.sec.Skipped = append(d.sec.Skipped, model.Skipped{Tag: uint16(rec.Tag), Level: rec.Level, Offset: rec.Offset})
}

// modelled reports whether the section decoder understands tag. Such a
// record outside the scope that owns it is malformed; any other tag is
// skipped by its declared size.
func modelled(tag record.Tag) bool {
	switch tag {
	case record.TagParaHeader, record.TagParaText, record.TagParaCharShape,
		record.TagParaLineSeg, record.TagParaRangeTag, record.TagCtrlHeader,
		record.TagListHeader, record.TagPageDef, record.TagFootnoteShape,
		record.TagPageBorderFill, record.TagTable, record.TagEqEdit, record.TagFormObject,
		record.TagShapeComponent, record.TagShapeComponentLine, record.TagShapeComponentRect,
		record.TagShapeComponentEllipse, record.TagShapeComponentArc,
		record.TagShapeComponentPolygon, record.TagShapeComponentCurve,
		record.TagShapeComponentOLE, record.TagShapeComponentPicture,
		record.TagShapeComponentContainer, record.TagShapeComponentTextArt:
		return true
	}
	return false
}

// unexpected handles a record no open scope accepts: a modelled tag is a
// ParseError, anything else is skipped.
func (d *sectionDecoder) unexpected(rec record.Record, reason string) error {
	if modelled(rec.Tag) {
		return record.Errorf(rec, "%s", reason)
	}
	d.skip(rec, reason)
	return nil
}

func (d *sectionDecoder) dispatch(f *frame, rec record.Record) error {
	if f.kind == frameParagraph {
		return d.paragraphRecord(f, rec)
	}
	if rec.Tag == record.TagParaHeader {
		return d.openParagraph(f, rec)
	}

	switch f.kind {
	case frameControl:
		return d.controlRecord(f, rec)
	case frameShape:
		return d.shapeRecord(f, f.shape, rec)
	}
	return d.unexpected(rec, "unexpected in paragraph list")
}

func (d *sectionDecoder) openParagraph(f *frame, rec record.Record) error {
	if f.paras == nil {
		return record.Errorf(rec, "paragraph outside of a paragraph list")
	}
	h, err := parseParaHeader(rec, d.version)
	if err != nil {
		return err
	}
	p := &model.Paragraph{ParaHeader: h}
	*f.paras = append(*f.paras, p)
	return d.push(&frame{kind: frameParagraph, level: rec.Level + 1, rec: rec, para: p})
}

func (d *sectionDecoder) paragraphRecord(f *frame, rec record.Record) error {
	p := f.para
	var err error
	switch rec.Tag {
	case record.TagParaText:
		err = parseParaText(rec, d.sec, p)
	case record.TagParaCharShape:
		var refs []model.CharShapeRef
		if refs, err = parseCharShapeRefs(rec); err == nil {
			p.CharShapes = append(p.CharShapes, refs...)
		}
	case record.TagParaLineSeg:
		var segs []model.LineSeg
		if segs, err = parseLineSegs(rec); err == nil {
			p.LineSegs = append(p.LineSegs, segs...)
		}
	case record.TagParaRangeTag:
		var tags []model.RangeTag
		if tags, err = parseRangeTags(rec); err == nil {
			p.RangeTags = append(p.RangeTags, tags...)
		}
	case record.TagCtrlHeader:
		err = d.openControl(p, rec)
	default:
		err = d.unexpected(rec, "unexpected in paragraph")
	}
	return err
}

// claim returns the first unfulfilled placeholder of p with the given id,
// or a new control appended to p.
func (d *sectionDecoder) claim(p *model.Paragraph, id model.CtrlID) (model.ControlID, *model.Control) {
	for _, cid := range p.Controls {
		c := d.sec.Control(cid)
		if c != nil && !c.Fulfilled && c.ID == id {
			return cid, c
		}
	}
	c := &model.Control{ID: id, Pos: -1}
	cid := d.sec.NewControl(c)
	p.Controls = append(p.Controls, cid)
	return cid, c
}

func (d *sectionDecoder) openControl(p *model.Paragraph, rec record.Record) error {
	c := rec.Cursor()
	id := model.CtrlID(c.U32())
	if err := c.Err(); err != nil {
		return err
	}

	body, err := d.controlBody(id, rec, c)
	if err != nil {
		return err
	}

	cid, ctrl := d.claim(p, id)
	ctrl.Body = body
	ctrl.Fulfilled = true

	switch b := body.(type) {
	case *model.SectionDef:
		d.secDef = b
	case *model.HeadFoot:
		if d.secDef != nil {
			d.secDef.HeadFoots = append(d.secDef.HeadFoots, cid)
		}
	}

	return d.push(&frame{kind: frameControl, level: rec.Level + 1, rec: rec, ctrl: ctrl})
}

func (d *sectionDecoder) controlBody(id model.CtrlID, rec record.Record, c *record.Cursor) (model.ControlBody, error) {
	switch id {
	case model.CtrlTable:
		obj, err := parseObjectHeader(rec, c)
		if err != nil {
			return nil, err
		}
		return &model.Table{Object: obj}, nil
	case model.CtrlShape, model.CtrlEquation:
		obj, err := parseObjectHeader(rec, c)
		if err != nil {
			return nil, err
		}
		return &model.Shape{Object: obj}, nil
	case model.CtrlForm:
		obj, err := parseObjectHeader(rec, c)
		if err != nil {
			return nil, err
		}
		return &model.Form{Object: obj}, nil
	case model.CtrlSectionDef:
		return parseSectionDef(rec, c)
	case model.CtrlHeader, model.CtrlFooter:
		h := &model.HeadFoot{Footer: id == model.CtrlFooter, Attr: c.U32()}
		return h, c.Err()
	case model.CtrlFootnote, model.CtrlEndnote:
		n := &model.Note{Endnote: id == model.CtrlEndnote}
		if c.Remaining() >= 4 {
			n.Number = c.U32()
		}
		return n, c.Err()
	default:
		return &model.Generic{Payload: c.Rest()}, nil
	}
}

func (d *sectionDecoder) controlRecord(f *frame, rec record.Record) error {
	if rec.Tag == record.TagCtrlData {
		f.ctrl.Data = append(f.ctrl.Data, rec.Data)
		return nil
	}

	switch b := f.ctrl.Body.(type) {
	case *model.Table:
		return d.tableRecord(f, b, rec)
	case *model.Shape:
		return d.objectRecord(f, b, rec)
	case *model.SectionDef:
		return d.sectionDefRecord(b, rec)
	case *model.HeadFoot:
		if rec.Tag == record.TagListHeader {
			c := rec.Cursor()
			b.List = parseListHeader(c)
			if c.Remaining() >= 8 {
				b.TextWidth = c.U32()
				b.TextHeight = c.U32()
			}
			f.paras = &b.Paragraphs
			return c.Err()
		}
	case *model.Note:
		if rec.Tag == record.TagListHeader {
			c := rec.Cursor()
			b.List = parseListHeader(c)
			f.paras = &b.Paragraphs
			return c.Err()
		}
	case *model.Form:
		if rec.Tag == record.TagFormObject {
			return parseFormObject(rec, b)
		}
	case *model.Generic:
		if rec.Tag == record.TagListHeader {
			f.paras = &b.Paragraphs
			return nil
		}
	}
	return d.unexpected(rec, fmt.Sprintf("unexpected in %q control", f.ctrl.ID))
}

// tableRecord applies the caption/cell rule: list headers seen before the
// TABLE record open the caption, list headers after it open cells.
func (d *sectionDecoder) tableRecord(f *frame, t *model.Table, rec record.Record) error {
	switch rec.Tag {
	case record.TagTable:
		if t.Cells != nil {
			return notImplemented("table with more than one %s record", record.TagTable)
		}
		if err := parseTable(rec, t); err != nil {
			return err
		}
		t.Cells = make([]*model.Cell, 0, t.DeclaredCells())
		f.paras = nil
		return nil

	case record.TagListHeader:
		if t.Cells == nil {
			if t.Caption != nil {
				return notImplemented("table with a second list before its %s record", record.TagTable)
			}
			caption, err := parseCaption(rec)
			if err != nil {
				return err
			}
			t.Caption = caption
			f.paras = &caption.Paragraphs
			return nil
		}
		if len(t.Cells) >= t.DeclaredCells() {
			return notImplemented("table cell beyond the %d declared by its rows", t.DeclaredCells())
		}
		cell, err := parseCell(rec)
		if err != nil {
			return err
		}
		t.Cells = append(t.Cells, cell)
		f.paras = &cell.Paragraphs
		return nil
	}
	return d.unexpected(rec, "unexpected in table")
}

// objectRecord handles sub-records of "gso " and "eqed" controls.
func (d *sectionDecoder) objectRecord(f *frame, s *model.Shape, rec record.Record) error {
	switch rec.Tag {
	case record.TagListHeader:
		if s.Caption == nil && len(rec.Data) >= captionListSize {
			caption, err := parseCaption(rec)
			if err != nil {
				return err
			}
			if caption.Width != 0 {
				s.Caption = caption
				f.paras = &caption.Paragraphs
				return nil
			}
		}
		c := rec.Cursor()
		list := parseListHeader(c)
		s.TextBoxList = &list
		f.paras = &s.TextBox
		return c.Err()

	case record.TagShapeComponent:
		if s.Component != nil {
			return record.Errorf(rec, "second top-level shape component")
		}
		comp, err := parseShapeComponent(rec, true)
		if err != nil {
			return err
		}
		s.Component = comp
		f.paras = nil
		return d.push(&frame{kind: frameShape, level: rec.Level + 1, rec: rec, shape: s})

	case record.TagEqEdit:
		if f.ctrl.ID != model.CtrlEquation {
			break
		}
		eq, err := parseEquation(rec)
		if err != nil {
			return err
		}
		s.Detail = eq
		return nil
	}
	return d.unexpected(rec, fmt.Sprintf("unexpected in %q control", f.ctrl.ID))
}

func (d *sectionDecoder) shapeRecord(f *frame, s *model.Shape, rec record.Record) error {
	switch rec.Tag {
	case record.TagListHeader:
		c := rec.Cursor()
		list := parseListHeader(c)
		s.TextBoxList = &list
		f.paras = &s.TextBox
		return c.Err()

	case record.TagShapeComponent:
		if s.Kind() != model.ShapeContainer {
			return record.Errorf(rec, "shape component nested in a %s shape", s.Kind())
		}
		comp, err := parseShapeComponent(rec, false)
		if err != nil {
			return err
		}
		container, _ := s.Detail.(*model.Container)
		if container == nil {
			container = &model.Container{}
			s.Detail = container
		}
		child := &model.Shape{Component: comp}
		container.Children = append(container.Children, child)
		return d.push(&frame{kind: frameShape, level: rec.Level + 1, rec: rec, shape: child})
	}

	detail, err := parseShapeDetail(rec)
	if err != nil {
		return err
	}
	if detail == nil {
		return d.unexpected(rec, fmt.Sprintf("unexpected in %s shape", s.Kind()))
	}
	if prev, ok := s.Detail.(*model.Container); ok {
		if next, ok := detail.(*model.Container); ok {
			next.Children = prev.Children
		}
	}
	s.Detail = detail
	return nil
}

func (d *sectionDecoder) sectionDefRecord(def *model.SectionDef, rec record.Record) error {
	switch rec.Tag {
	case record.TagPageDef:
		if def.Page != nil {
			return record.Errorf(rec, "second page definition")
		}
		page, err := parsePageDef(rec)
		if err != nil {
			return err
		}
		def.Page = page
	case record.TagFootnoteShape:
		shape, err := parseNoteShape(rec)
		if err != nil {
			return err
		}
		switch {
		case def.Footnote == nil:
			def.Footnote = shape
		case def.Endnote == nil:
			def.Endnote = shape
		default:
			return record.Errorf(rec, "more than two note shapes")
		}
	case record.TagPageBorderFill:
		if len(def.BorderFills) == 3 {
			return record.Errorf(rec, "more than three page border fills")
		}
		fill, err := parsePageBorderFill(rec)
		if err != nil {
			return err
		}
		def.BorderFills = append(def.BorderFills, fill)
	default:
		return d.unexpected(rec, "unexpected in section definition")
	}
	return nil
}
