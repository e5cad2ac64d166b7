package decoder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/hwp/internal/hwptest"
	"github.com/tsawler/hwp/model"
	"github.com/tsawler/hwp/record"
)

var v5032 = model.VersionFromUint32(hwptest.Version5032)

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func para(level int, text string) *hwptest.Stream {
	return (&hwptest.Stream{}).
		Add(record.TagParaHeader, level, hwptest.ParaHeader(uint32(len(text)+1))).
		Add(record.TagParaText, level+1, cat(hwptest.Text(text), hwptest.Char(13)))
}

func TestParseSectionTwoParagraphs(t *testing.T) {
	s := (&hwptest.Stream{}).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(6)).
		Add(record.TagParaText, 1, cat(hwptest.Text("Hello"), hwptest.Char(13))).
		Add(record.TagParaCharShape, 1, hwptest.P().U32(0).U32(3).Bytes()).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(1))

	sec, err := ParseSection(s.Bytes(), v5032, Options{})
	require.NoError(t, err)
	require.Len(t, sec.Paragraphs, 2)

	first := sec.Paragraphs[0]
	assert.Equal(t, "Hello", first.Text())
	assert.Equal(t, uint32(6), first.Chars)
	assert.Equal(t, []model.CharShapeRef{{Pos: 0, CharShapeID: 3}}, first.CharShapes)
	require.Len(t, first.Runs, 2)
	assert.Equal(t, model.TextRun{Pos: 5, Kind: model.CharControl, Code: 13}, first.Runs[1])

	second := sec.Paragraphs[1]
	assert.Empty(t, second.Runs)
	assert.Empty(t, second.CharShapes)
	assert.Empty(t, sec.Controls)
}

func TestParseSectionEmpty(t *testing.T) {
	sec, err := ParseSection(nil, v5032, Options{})
	require.NoError(t, err)
	assert.Empty(t, sec.Paragraphs)
}

func tableStream(rowSizes []uint16, cells [][3]uint16) *hwptest.Stream {
	s := (&hwptest.Stream{}).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(9)).
		Add(record.TagParaText, 1, cat(hwptest.Extended(model.CharObject, "tbl "), hwptest.Char(13))).
		Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("tbl ", hwptest.ObjectHeader(20000, 4000))).
		Add(record.TagListHeader, 2, hwptest.CaptionList(1, 3000)).
		Add(record.TagParaHeader, 2, hwptest.ParaHeader(8)).
		Add(record.TagParaText, 3, hwptest.Text("Caption")).
		Add(record.TagTable, 2, hwptest.Table(2, rowSizes...))
	for i, c := range cells {
		s.Add(record.TagListHeader, 2, hwptest.CellList(1, c[0], c[1], 1, c[2])).
			Add(record.TagParaHeader, 2, hwptest.ParaHeader(2)).
			Add(record.TagParaText, 3, hwptest.Text(string(rune('A'+i))))
	}
	return s
}

func TestParseSectionTableCaptionThenCells(t *testing.T) {
	s := tableStream([]uint16{2, 1}, [][3]uint16{{0, 0, 1}, {0, 1, 1}, {1, 0, 2}})
	s.Add(record.TagParaHeader, 0, hwptest.ParaHeader(1))

	sec, err := ParseSection(s.Bytes(), v5032, Options{})
	require.NoError(t, err)
	require.Len(t, sec.Paragraphs, 2)
	require.Len(t, sec.Controls, 1, "CTRL_HEADER must fill the placeholder, not add a control")

	ctrl := sec.ControlsOf(sec.Paragraphs[0])[0]
	assert.True(t, ctrl.Fulfilled)
	assert.Equal(t, 0, ctrl.Pos)
	assert.Equal(t, model.KindTable, ctrl.Kind())

	table := ctrl.Body.(*model.Table)
	assert.Equal(t, uint32(20000), table.Object.Width)
	require.NotNil(t, table.Caption)
	assert.Equal(t, uint32(3000), table.Caption.Width)
	assert.Equal(t, "Caption", model.ParagraphsText(table.Caption.Paragraphs))

	require.Len(t, table.Cells, table.DeclaredCells())
	assert.Equal(t, 3, len(table.Cells))
	assert.Equal(t, "A", table.Cells[0].Text())
	assert.Equal(t, "B", table.Cells[1].Text())
	assert.Equal(t, 2, table.Cells[2].ColSpan)
	assert.Equal(t, "| A | B |\n|---|---|\n| C |  |\n", table.ToMarkdown())
}

func TestParseSectionTableCellBeyondDeclared(t *testing.T) {
	s := tableStream([]uint16{1}, [][3]uint16{{0, 0, 1}, {0, 1, 1}})

	sec, err := ParseSection(s.Bytes(), v5032, Options{})
	assert.Nil(t, sec)
	var nie *NotImplementedError
	require.True(t, errors.As(err, &nie), "got %v", err)
	assert.Contains(t, nie.Feature, "declared")
}

func TestParseSectionTableMissingCells(t *testing.T) {
	s := tableStream([]uint16{2}, [][3]uint16{{0, 0, 1}})

	_, err := ParseSection(s.Bytes(), v5032, Options{})
	var nie *NotImplementedError
	require.True(t, errors.As(err, &nie), "got %v", err)
}

func TestParseSectionTableWithoutGrid(t *testing.T) {
	s := (&hwptest.Stream{}).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(1)).
		Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("tbl ", hwptest.ObjectHeader(1, 1)))

	_, err := ParseSection(s.Bytes(), v5032, Options{})
	var perr *record.ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, record.TagCtrlHeader, perr.Tag)
}

func secdStream() *hwptest.Stream {
	return (&hwptest.Stream{}).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(17)).
		Add(record.TagParaText, 1, cat(
			hwptest.Extended(model.CharSectionColumn, "secd"),
			hwptest.Extended(model.CharSectionColumn, "cold"),
			hwptest.Char(13))).
		Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("secd", hwptest.SectionDef()))
}

func TestParseSectionDefinition(t *testing.T) {
	s := secdStream().
		Add(record.TagPageDef, 2, hwptest.PageDef()).
		Add(record.TagFootnoteShape, 2, hwptest.NoteShape()).
		Add(record.TagFootnoteShape, 2, cat(hwptest.NoteShape(), []byte{0, 0})).
		Add(record.TagPageBorderFill, 2, hwptest.PageBorderFill()).
		Add(record.TagPageBorderFill, 2, hwptest.PageBorderFill()).
		Add(record.TagPageBorderFill, 2, hwptest.PageBorderFill()).
		Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("cold", hwptest.P().U16(0x1004).U16(1134).Bytes())).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(9)).
		Add(record.TagParaText, 1, cat(hwptest.Extended(model.CharHeadFoot, "head"), hwptest.Char(13))).
		Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("head", hwptest.P().U32(uint32(model.PageOdd)).Bytes())).
		Add(record.TagListHeader, 2, hwptest.P().Raw(hwptest.ListHeader(1, 0)).U32(42520).U32(4252).Bytes()).
		Add(record.TagParaHeader, 2, hwptest.ParaHeader(12)).
		Add(record.TagParaText, 3, hwptest.Text("Header text"))

	sec, err := ParseSection(s.Bytes(), v5032, Options{})
	require.NoError(t, err)

	def := sec.SectionDef()
	require.NotNil(t, def)
	assert.Equal(t, uint32(8000), def.DefaultTabStop)
	require.NotNil(t, def.Page)
	assert.Equal(t, uint32(59528), def.Page.Width)
	assert.Equal(t, uint32(84188), def.Page.Height)
	require.NotNil(t, def.Footnote)
	require.NotNil(t, def.Endnote)
	assert.Equal(t, uint16(')'), def.Footnote.Suffix)
	assert.Len(t, def.BorderFills, 3)

	cold := sec.Control(sec.Paragraphs[0].Controls[1])
	assert.Equal(t, model.KindGeneric, cold.Kind())
	assert.Equal(t, []byte{0x04, 0x10, 0x6E, 0x04}, cold.Body.(*model.Generic).Payload)

	require.Len(t, def.HeadFoots, 1)
	hf := sec.Control(def.HeadFoots[0]).Body.(*model.HeadFoot)
	assert.False(t, hf.Footer)
	assert.Equal(t, model.PageOdd, hf.AppliesTo())
	assert.Equal(t, uint32(42520), hf.TextWidth)
	assert.Equal(t, "Header text", model.ParagraphsText(hf.Paragraphs))
}

func TestParseSectionFixedLayoutMismatch(t *testing.T) {
	tests := []struct {
		name    string
		tag     record.Tag
		payload []byte
	}{
		{"short page def", record.TagPageDef, hwptest.PageDef()[:36]},
		{"long page def", record.TagPageDef, cat(hwptest.PageDef(), []byte{0, 0, 0, 0})},
		{"note shape 27 bytes", record.TagFootnoteShape, cat(hwptest.NoteShape(), []byte{0})},
		{"page border fill 12 bytes", record.TagPageBorderFill, hwptest.PageBorderFill()[:12]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := secdStream().Add(tt.tag, 2, tt.payload)

			sec, err := ParseSection(s.Bytes(), v5032, Options{})
			assert.Nil(t, sec)
			var perr *record.ParseError
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.Equal(t, tt.tag, perr.Tag)
		})
	}
}

func TestParseSectionTooManyNoteShapes(t *testing.T) {
	s := secdStream()
	for i := 0; i < 3; i++ {
		s.Add(record.TagFootnoteShape, 2, hwptest.NoteShape())
	}

	_, err := ParseSection(s.Bytes(), v5032, Options{})
	var perr *record.ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
}

func TestParseSectionPlaceholders(t *testing.T) {
	s := (&hwptest.Stream{}).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(19)).
		Add(record.TagParaText, 1, cat(
			hwptest.Text("a"),
			hwptest.Extended(model.CharObject, "tbl "),
			hwptest.Text("b"),
			hwptest.Extended(model.CharNote, "fn  "),
			hwptest.Char(13))).
		Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("fn  ", hwptest.P().U32(1).Bytes())).
		Add(record.TagListHeader, 2, hwptest.ListHeader(1, 0)).
		Add(record.TagParaHeader, 2, hwptest.ParaHeader(5)).
		Add(record.TagParaText, 3, hwptest.Text("note"))

	sec, err := ParseSection(s.Bytes(), v5032, Options{})
	require.NoError(t, err)

	p := sec.Paragraphs[0]
	assert.Equal(t, "ab", p.Text())
	require.Len(t, p.Controls, 2)
	require.Len(t, sec.Controls, 2)

	tbl := sec.Control(p.Controls[0])
	assert.Equal(t, model.CtrlTable, tbl.ID)
	assert.False(t, tbl.Fulfilled)
	assert.Equal(t, model.KindPlaceholder, tbl.Kind())
	assert.Equal(t, 1, tbl.Pos)

	fn := sec.Control(p.Controls[1])
	assert.True(t, fn.Fulfilled)
	assert.Equal(t, 10, fn.Pos)
	note := fn.Body.(*model.Note)
	assert.False(t, note.Endnote)
	assert.Equal(t, uint32(1), note.Number)
	assert.Equal(t, "note", model.ParagraphsText(note.Paragraphs))

	assert.Equal(t, []*model.Control{tbl}, sec.Unfulfilled())
	assert.Equal(t, p.Controls[1], p.Runs[3].Control)
}

func TestParseSectionControlWithoutPlaceholder(t *testing.T) {
	s := (&hwptest.Stream{}).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(1)).
		Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("pgnp", hwptest.P().U32(0).U16('-').Bytes())).
		Add(record.TagCtrlData, 2, []byte{1, 2})

	sec, err := ParseSection(s.Bytes(), v5032, Options{})
	require.NoError(t, err)
	ctrls := sec.ControlsOf(sec.Paragraphs[0])
	require.Len(t, ctrls, 1)
	assert.Equal(t, -1, ctrls[0].Pos)
	assert.Equal(t, [][]byte{{1, 2}}, ctrls[0].Data)
}

func TestParseSectionSkipsUnknownTags(t *testing.T) {
	s := (&hwptest.Stream{}).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(2)).
		Add(record.TagParaText, 1, hwptest.Text("x")).
		Add(record.Tag(200), 1, []byte{1, 2, 3}).
		Add(record.Tag(201), 2, []byte{4}).
		Add(record.TagParaLineSeg, 1, make([]byte, 36))

	sec, err := ParseSection(s.Bytes(), v5032, Options{})
	require.NoError(t, err)
	require.Len(t, sec.Paragraphs, 1)
	assert.Equal(t, "x", sec.Paragraphs[0].Text())
	assert.Len(t, sec.Paragraphs[0].LineSegs, 1)
	require.Len(t, sec.Skipped, 2)
	assert.Equal(t, uint16(200), sec.Skipped[0].Tag)
	assert.Equal(t, 2, sec.Skipped[1].Level)
}

func TestParseSectionMaxDepth(t *testing.T) {
	s := (&hwptest.Stream{}).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(1)).
		Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("tcmt", nil)).
		Add(record.TagListHeader, 2, hwptest.ListHeader(1, 0)).
		Add(record.TagParaHeader, 2, hwptest.ParaHeader(1)).
		Add(record.TagCtrlHeader, 3, hwptest.CtrlHeader("tcmt", nil))

	_, err := ParseSection(s.Bytes(), v5032, Options{MaxDepth: 4})
	var perr *record.ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Contains(t, perr.Msg, "deeper than 4")

	sec, err := ParseSection(s.Bytes(), v5032, Options{})
	require.NoError(t, err)
	inner := sec.Control(sec.Paragraphs[0].Controls[0]).Body.(*model.Generic)
	require.Len(t, inner.Paragraphs, 1)
	assert.Len(t, inner.Paragraphs[0].Controls, 1)
}

func TestParseSectionParagraphOutsideList(t *testing.T) {
	s := (&hwptest.Stream{}).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(1)).
		Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("head", hwptest.P().U32(0).Bytes())).
		Add(record.TagParaHeader, 2, hwptest.ParaHeader(1))

	_, err := ParseSection(s.Bytes(), v5032, Options{})
	var perr *record.ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, record.TagParaHeader, perr.Tag)
}

func TestParseSectionShapeContainer(t *testing.T) {
	s := (&hwptest.Stream{}).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(9)).
		Add(record.TagParaText, 1, cat(hwptest.Extended(model.CharObject, "gso "), hwptest.Char(13))).
		Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("gso ", hwptest.ObjectHeader(500, 500))).
		Add(record.TagListHeader, 2, hwptest.CaptionList(1, 2000)).
		Add(record.TagParaHeader, 2, hwptest.ParaHeader(9)).
		Add(record.TagParaText, 3, hwptest.Text("Figure 1")).
		Add(record.TagShapeComponent, 2, hwptest.ShapeComponent("$con", true)).
		Add(record.TagShapeComponentContainer, 3, hwptest.P().U16(2).
			U32(uint32(model.ShapeIDPicture)).U32(uint32(model.ShapeIDRect)).Bytes()).
		Add(record.TagShapeComponent, 3, hwptest.ShapeComponent("$pic", false)).
		Add(record.TagShapeComponentPicture, 4, hwptest.Picture(1)).
		Add(record.TagShapeComponent, 3, hwptest.ShapeComponent("$rec", false)).
		Add(record.TagShapeComponentRect, 4, hwptest.P().U8(0).Zeros(32).Bytes()).
		Add(record.TagListHeader, 4, hwptest.ListHeader(1, 0)).
		Add(record.TagParaHeader, 4, hwptest.ParaHeader(7)).
		Add(record.TagParaText, 5, hwptest.Text("inside"))

	sec, err := ParseSection(s.Bytes(), v5032, Options{})
	require.NoError(t, err)

	ctrl := sec.ControlsOf(sec.Paragraphs[0])[0]
	assert.Equal(t, model.KindContainer, ctrl.Kind())
	shape := ctrl.Body.(*model.Shape)
	assert.Equal(t, "Figure 1", model.ParagraphsText(shape.Caption.Paragraphs))
	assert.Equal(t, model.ShapeIDContainer, shape.Component.ID)

	children := shape.Children()
	require.Len(t, children, 2)
	assert.Equal(t, model.ShapePicture, children[0].Kind())
	assert.Equal(t, uint16(1), children[0].Detail.(*model.Picture).Image.BinDataID)
	assert.Equal(t, model.ShapeRect, children[1].Kind())
	assert.Equal(t, "inside", model.ParagraphsText(children[1].TextBox))

	var texts []string
	sec.Walk(func(p *model.Paragraph, depth int) {
		if depth > 0 {
			texts = append(texts, p.Text())
		}
	})
	assert.Equal(t, []string{"Figure 1", "inside"}, texts)
}

func TestParseSectionShapeListWithoutCaptionWidth(t *testing.T) {
	s := (&hwptest.Stream{}).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(1)).
		Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("gso ", hwptest.ObjectHeader(500, 500))).
		Add(record.TagListHeader, 2, hwptest.CaptionList(1, 0)).
		Add(record.TagParaHeader, 2, hwptest.ParaHeader(5)).
		Add(record.TagParaText, 3, hwptest.Text("body"))

	sec, err := ParseSection(s.Bytes(), v5032, Options{})
	require.NoError(t, err)

	shape := sec.Control(0).Body.(*model.Shape)
	assert.Nil(t, shape.Caption)
	require.NotNil(t, shape.TextBoxList)
	assert.Equal(t, uint16(1), shape.TextBoxList.ParaCount)
	require.Len(t, shape.TextBox, 1)
	assert.Equal(t, "body", shape.TextBox[0].Text())
}

func TestParseSectionShapeSecondListIsBody(t *testing.T) {
	s := (&hwptest.Stream{}).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(1)).
		Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("gso ", hwptest.ObjectHeader(500, 500))).
		Add(record.TagListHeader, 2, hwptest.CaptionList(1, 2000)).
		Add(record.TagParaHeader, 2, hwptest.ParaHeader(8)).
		Add(record.TagParaText, 3, hwptest.Text("Figure 2")).
		Add(record.TagListHeader, 2, hwptest.ListHeader(1, 0)).
		Add(record.TagParaHeader, 2, hwptest.ParaHeader(5)).
		Add(record.TagParaText, 3, hwptest.Text("body"))

	sec, err := ParseSection(s.Bytes(), v5032, Options{})
	require.NoError(t, err)

	shape := sec.Control(0).Body.(*model.Shape)
	require.NotNil(t, shape.Caption)
	assert.Equal(t, "Figure 2", model.ParagraphsText(shape.Caption.Paragraphs))
	require.Len(t, shape.TextBox, 1)
	assert.Equal(t, "body", shape.TextBox[0].Text())
}

func TestParseSectionMisplacedRecords(t *testing.T) {
	tests := []struct {
		name   string
		stream *hwptest.Stream
		tag    record.Tag
	}{
		{
			name: "table record in a paragraph",
			stream: (&hwptest.Stream{}).
				Add(record.TagParaHeader, 0, hwptest.ParaHeader(1)).
				Add(record.TagTable, 1, hwptest.Table(1, 1)),
			tag: record.TagTable,
		},
		{
			name: "list header deeper than any open scope",
			stream: (&hwptest.Stream{}).
				Add(record.TagParaHeader, 0, hwptest.ParaHeader(1)).
				Add(record.TagListHeader, 3, hwptest.ListHeader(1, 0)).
				Add(record.TagPageDef, 1, hwptest.PageDef()),
			tag: record.TagListHeader,
		},
		{
			name: "page definition in a table",
			stream: (&hwptest.Stream{}).
				Add(record.TagParaHeader, 0, hwptest.ParaHeader(1)).
				Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("tbl ", hwptest.ObjectHeader(100, 100))).
				Add(record.TagPageDef, 2, hwptest.PageDef()),
			tag: record.TagPageDef,
		},
		{
			name: "shape component in a footnote",
			stream: (&hwptest.Stream{}).
				Add(record.TagParaHeader, 0, hwptest.ParaHeader(1)).
				Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("fn  ", hwptest.P().U32(1).Bytes())).
				Add(record.TagShapeComponent, 2, hwptest.ShapeComponent("$rec", true)),
			tag: record.TagShapeComponent,
		},
		{
			name: "footnote shape in a header",
			stream: (&hwptest.Stream{}).
				Add(record.TagParaHeader, 0, hwptest.ParaHeader(1)).
				Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("head", hwptest.P().U32(0).Bytes())).
				Add(record.TagFootnoteShape, 2, hwptest.NoteShape()),
			tag: record.TagFootnoteShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sec, err := ParseSection(tt.stream.Bytes(), v5032, Options{})
			assert.Nil(t, sec)
			var perr *record.ParseError
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.Equal(t, tt.tag, perr.Tag)
		})
	}
}

func TestParseSectionHeadFootAttachToSectionDefInEffect(t *testing.T) {
	s := (&hwptest.Stream{}).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(1)).
		Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("foot", hwptest.P().U32(0).Bytes()))
	s.Add(record.TagParaHeader, 0, hwptest.ParaHeader(1)).
		Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("secd", hwptest.SectionDef())).
		Add(record.TagPageDef, 2, hwptest.PageDef()).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(1)).
		Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("head", hwptest.P().U32(0).Bytes()))

	sec, err := ParseSection(s.Bytes(), v5032, Options{})
	require.NoError(t, err)

	def := sec.SectionDef()
	require.NotNil(t, def)
	require.Len(t, def.HeadFoots, 1, "only controls after the secd attach")
	assert.False(t, sec.Control(def.HeadFoots[0]).Body.(*model.HeadFoot).Footer)
}

func TestParseSectionEquation(t *testing.T) {
	s := (&hwptest.Stream{}).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(9)).
		Add(record.TagParaText, 1, cat(hwptest.Extended(model.CharObject, "eqed"), hwptest.Char(13))).
		Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("eqed", hwptest.ObjectHeader(800, 300))).
		Add(record.TagEqEdit, 2, hwptest.P().U32(0).WString("x over y").U32(1000).U32(0).U16(86).Bytes())

	sec, err := ParseSection(s.Bytes(), v5032, Options{})
	require.NoError(t, err)

	shape := sec.Control(0).Body.(*model.Shape)
	assert.Equal(t, model.ShapeEquation, shape.Kind())
	eq := shape.Detail.(*model.Equation)
	assert.Equal(t, "x over y", eq.Script)
	assert.Equal(t, int16(86), eq.Baseline)
}

func TestParseSectionForm(t *testing.T) {
	s := (&hwptest.Stream{}).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(1)).
		Add(record.TagCtrlHeader, 1, hwptest.CtrlHeader("form", hwptest.ObjectHeader(800, 300))).
		Add(record.TagFormObject, 2, hwptest.P().U32(uint32(model.MakeCtrlID("tbp+"))).
			U32(0).WString("CheckBox").Bytes())

	sec, err := ParseSection(s.Bytes(), v5032, Options{})
	require.NoError(t, err)
	form := sec.Control(0).Body.(*model.Form)
	assert.Equal(t, "CheckBox", form.Properties)
	assert.Equal(t, "tbp+", form.FormID.String())
}

func TestParseSectionTruncatedControlChar(t *testing.T) {
	s := (&hwptest.Stream{}).
		Add(record.TagParaHeader, 0, hwptest.ParaHeader(1)).
		Add(record.TagParaText, 1, hwptest.Extended(model.CharObject, "tbl ")[:6])

	_, err := ParseSection(s.Bytes(), v5032, Options{})
	var perr *record.ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, record.TagParaText, perr.Tag)
}

func TestParseSectionTruncatedStream(t *testing.T) {
	data := para(0, "hello").Bytes()

	_, err := ParseSection(data[:len(data)-3], v5032, Options{})
	var perr *record.ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
}

func TestParseSectionParaHeaderTooShort(t *testing.T) {
	s := (&hwptest.Stream{}).Add(record.TagParaHeader, 0, make([]byte, 18))

	_, err := ParseSection(s.Bytes(), v5032, Options{})
	var perr *record.ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
}
