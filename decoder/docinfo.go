package decoder

import (
	"github.com/tsawler/hwp/model"
	"github.com/tsawler/hwp/record"
)

const documentPropertiesSize = 26

// ParseDocInfo decodes the flat DocInfo stream. Each tag maps to one
// resource collection; record levels carry no structure here. Records with
// unknown tags are skipped.
func ParseDocInfo(data []byte, version model.Version, opts Options) (*model.DocInfo, error) {
	info := model.NewDocInfo()
	r := record.NewReader(data)
	binDataSeq := uint16(0)

	for !r.EOF() {
		rec, err := r.Next()
		if err != nil {
			return nil, err
		}

		switch rec.Tag {
		case record.TagDocumentProperties:
			err = parseDocumentProperties(rec, &info.Properties)
		case record.TagIDMappings:
			info.IDMappings, err = parseIDMappings(rec)
		case record.TagBinData:
			binDataSeq++
			var item *model.BinDataItem
			if item, err = parseBinData(rec, binDataSeq); err == nil {
				info.BinData[item.ID] = item
			}
		case record.TagFaceName:
			var f model.FaceName
			if f, err = parseFaceName(rec); err == nil {
				info.FaceNames = append(info.FaceNames, f)
			}
		case record.TagBorderFill:
			var b model.BorderFill
			if b, err = parseBorderFill(rec); err == nil {
				info.BorderFills = append(info.BorderFills, b)
			}
		case record.TagCharShape:
			var s model.CharShape
			if s, err = parseCharShape(rec, version); err == nil {
				info.CharShapes = append(info.CharShapes, s)
			}
		case record.TagTabDef:
			var t model.TabDef
			if t, err = parseTabDef(rec); err == nil {
				info.TabDefs = append(info.TabDefs, t)
			}
		case record.TagNumbering:
			var n model.Numbering
			if n, err = parseNumbering(rec); err == nil {
				info.Numberings = append(info.Numberings, n)
			}
		case record.TagBullet:
			var b model.Bullet
			if b, err = parseBullet(rec); err == nil {
				info.Bullets = append(info.Bullets, b)
			}
		case record.TagParaShape:
			var p model.ParaShape
			if p, err = parseParaShape(rec); err == nil {
				info.ParaShapes = append(info.ParaShapes, p)
			}
		case record.TagStyle:
			var s model.Style
			if s, err = parseStyle(rec); err == nil {
				info.Styles = append(info.Styles, s)
			}
		case record.TagDocData:
			info.DocData = rec.Data
		case record.TagMemoShape:
			info.MemoShapes = append(info.MemoShapes, rec.Data)
		case record.TagCompatibleDocument:
			c := rec.Cursor()
			info.Compatible = true
			info.CompatibleTarget = model.CompatibleTarget(c.U32())
			err = c.Err()
		case record.TagLayoutCompatibility:
			c := rec.Cursor()
			for c.Remaining() >= 4 {
				info.LayoutCompatibility = append(info.LayoutCompatibility, c.U32())
			}
		default:
			opts.debugLog("skipping docinfo record",
				"tag", rec.Tag.String(), "level", rec.Level, "size", rec.Size, "offset", rec.Offset)
		}
		if err != nil {
			return nil, err
		}
	}

	return info, nil
}

func parseDocumentProperties(rec record.Record, p *model.DocumentProperties) error {
	if len(rec.Data) != documentPropertiesSize {
		return record.Errorf(rec, "size %d, want %d", len(rec.Data), documentPropertiesSize)
	}
	c := rec.Cursor()
	p.SectionCount = c.U16()
	p.PageStart = c.U16()
	p.FootnoteStart = c.U16()
	p.EndnoteStart = c.U16()
	p.PictureStart = c.U16()
	p.TableStart = c.U16()
	p.EquationStart = c.U16()
	p.CaretList = c.U32()
	p.CaretParagraph = c.U32()
	p.CaretChar = c.U32()
	return c.ExpectEnd()
}

func parseIDMappings(rec record.Record) (model.IDMappings, error) {
	if len(rec.Data)%4 != 0 {
		return nil, record.Errorf(rec, "size %d is not a multiple of 4", len(rec.Data))
	}
	c := rec.Cursor()
	m := make(model.IDMappings, len(rec.Data)/4)
	for i := range m {
		m[i] = c.U32()
	}
	return m, c.ExpectEnd()
}

func parseBinData(rec record.Record, seq uint16) (*model.BinDataItem, error) {
	c := rec.Cursor()
	attr := c.U16()
	item := &model.BinDataItem{
		ID:          seq,
		Attr:        attr,
		Type:        model.BinDataType(attr & 0xF),
		Compression: model.BinDataCompression(attr >> 4 & 0x3),
		State:       uint8(attr >> 8 & 0x3),
	}
	switch item.Type {
	case model.BinDataLink:
		item.AbsolutePath = c.WString()
		item.RelativePath = c.WString()
	case model.BinDataEmbedding:
		item.StorageID = c.U16()
		item.Extension = c.WString()
	case model.BinDataStorage:
		item.StorageID = c.U16()
	default:
		return nil, notImplemented("BinData storage type %d", item.Type)
	}
	return item, c.Err()
}

func parseFaceName(rec record.Record) (model.FaceName, error) {
	c := rec.Cursor()
	f := model.FaceName{Attr: c.U8()}
	f.Name = c.WString()
	if f.Attr&0x80 != 0 {
		f.AltType = c.U8()
		f.AltName = c.WString()
	}
	if f.Attr&0x40 != 0 {
		f.TypeInfo = c.Bytes(10)
	}
	if f.Attr&0x20 != 0 {
		f.DefaultName = c.WString()
	}
	return f, c.Err()
}

func parseBorderLine(c *record.Cursor) model.BorderLine {
	return model.BorderLine{Type: c.U8(), Width: c.U8(), Color: model.Color(c.U32())}
}

func parseBorderFill(rec record.Record) (model.BorderFill, error) {
	c := rec.Cursor()
	b := model.BorderFill{Attr: c.U16()}
	for i := range b.Borders {
		b.Borders[i] = parseBorderLine(c)
	}
	b.Diagonal = parseBorderLine(c)
	b.Fill = c.Rest()
	return b, c.Err()
}

var (
	charShapeBorderVersion = model.Version{Major: 5, Minor: 0, Build: 2, Revision: 1}
	charShapeStrikeVersion = model.Version{Major: 5, Minor: 0, Build: 3, Revision: 0}
)

func parseCharShape(rec record.Record, version model.Version) (model.CharShape, error) {
	c := rec.Cursor()
	var s model.CharShape
	for i := range s.FaceIDs {
		s.FaceIDs[i] = c.U16()
	}
	for i := range s.Ratios {
		s.Ratios[i] = c.U8()
	}
	for i := range s.Spacings {
		s.Spacings[i] = c.I8()
	}
	for i := range s.RelSizes {
		s.RelSizes[i] = c.U8()
	}
	for i := range s.Offsets {
		s.Offsets[i] = c.I8()
	}
	s.BaseSize = c.I32()
	s.Attr = c.U32()
	s.ShadowX = c.I8()
	s.ShadowY = c.I8()
	s.TextColor = model.Color(c.U32())
	s.UnderlineColor = model.Color(c.U32())
	s.ShadeColor = model.Color(c.U32())
	s.ShadowColor = model.Color(c.U32())
	if version.AtLeast(charShapeBorderVersion) && c.Remaining() >= 2 {
		s.BorderFillID = c.U16()
	}
	if version.AtLeast(charShapeStrikeVersion) && c.Remaining() >= 4 {
		s.StrikeColor = model.Color(c.U32())
	}
	return s, c.Err()
}

func parseTabDef(rec record.Record) (model.TabDef, error) {
	c := rec.Cursor()
	t := model.TabDef{Attr: c.U32()}
	n := int(c.U32())
	for i := 0; i < n && c.Err() == nil; i++ {
		tab := model.Tab{Position: model.HWPUnit(c.I32()), Type: c.U8(), Fill: c.U8()}
		c.Skip(2)
		t.Tabs = append(t.Tabs, tab)
	}
	return t, c.Err()
}

func parseNumbering(rec record.Record) (model.Numbering, error) {
	c := rec.Cursor()
	var n model.Numbering
	for i := range n.Levels {
		n.Levels[i] = model.NumberingLevel{
			Attr:        c.U32(),
			Width:       c.U16(),
			Distance:    c.U16(),
			CharShapeID: c.U32(),
			Format:      c.WString(),
		}
	}
	n.Start = c.U16()
	n.Extra = c.Rest()
	return n, c.Err()
}

func parseBullet(rec record.Record) (model.Bullet, error) {
	c := rec.Cursor()
	b := model.Bullet{
		Attr:        c.U32(),
		Width:       c.U16(),
		Distance:    c.U16(),
		CharShapeID: c.U32(),
		Char:        rune(c.U16()),
	}
	b.Extra = c.Rest()
	return b, c.Err()
}

func parseParaShape(rec record.Record) (model.ParaShape, error) {
	c := rec.Cursor()
	p := model.ParaShape{
		Attr1:        c.U32(),
		LeftMargin:   c.I32(),
		RightMargin:  c.I32(),
		Indent:       c.I32(),
		PrevSpacing:  c.I32(),
		NextSpacing:  c.I32(),
		LineSpacing:  c.I32(),
		TabDefID:     c.U16(),
		NumberingID:  c.U16(),
		BorderFillID: c.U16(),
	}
	for i := range p.BorderOffsets {
		p.BorderOffsets[i] = c.I16()
	}
	if c.Remaining() >= 4 {
		p.Attr2 = c.U32()
	}
	if c.Remaining() >= 8 {
		p.Attr3 = c.U32()
		p.LineSpacing2 = c.U32()
	}
	return p, c.Err()
}

func parseStyle(rec record.Record) (model.Style, error) {
	c := rec.Cursor()
	s := model.Style{
		LocalName:   c.WString(),
		Name:        c.WString(),
		Attr:        c.U8(),
		NextStyleID: c.U8(),
		LangID:      c.I16(),
		ParaShapeID: c.U16(),
		CharShapeID: c.U16(),
	}
	return s, c.Err()
}
