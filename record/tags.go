package record

import "fmt"

// Tag identifies the kind of a record.
type Tag uint16

// tagBegin is the first tag value used by the format.
const tagBegin Tag = 0x10

// DocInfo stream tags.
const (
	TagDocumentProperties  Tag = tagBegin      // 16
	TagIDMappings          Tag = tagBegin + 1  // 17
	TagBinData             Tag = tagBegin + 2  // 18
	TagFaceName            Tag = tagBegin + 3  // 19
	TagBorderFill          Tag = tagBegin + 4  // 20
	TagCharShape           Tag = tagBegin + 5  // 21
	TagTabDef              Tag = tagBegin + 6  // 22
	TagNumbering           Tag = tagBegin + 7  // 23
	TagBullet              Tag = tagBegin + 8  // 24
	TagParaShape           Tag = tagBegin + 9  // 25
	TagStyle               Tag = tagBegin + 10 // 26
	TagDocData             Tag = tagBegin + 11 // 27
	TagDistributeDocData   Tag = tagBegin + 12 // 28
	TagCompatibleDocument  Tag = tagBegin + 14 // 30
	TagLayoutCompatibility Tag = tagBegin + 15 // 31
	TagTrackChange         Tag = tagBegin + 16 // 32
	TagMemoShape           Tag = tagBegin + 76 // 92
	TagForbiddenChar       Tag = tagBegin + 78 // 94
	TagTrackChangeContent  Tag = tagBegin + 80 // 96
	TagTrackChangeAuthor   Tag = tagBegin + 81 // 97
)

// BodyText stream tags.
const (
	TagParaHeader              Tag = tagBegin + 50 // 66
	TagParaText                Tag = tagBegin + 51 // 67
	TagParaCharShape           Tag = tagBegin + 52 // 68
	TagParaLineSeg             Tag = tagBegin + 53 // 69
	TagParaRangeTag            Tag = tagBegin + 54 // 70
	TagCtrlHeader              Tag = tagBegin + 55 // 71
	TagListHeader              Tag = tagBegin + 56 // 72
	TagPageDef                 Tag = tagBegin + 57 // 73
	TagFootnoteShape           Tag = tagBegin + 58 // 74
	TagPageBorderFill          Tag = tagBegin + 59 // 75
	TagShapeComponent          Tag = tagBegin + 60 // 76
	TagTable                   Tag = tagBegin + 61 // 77
	TagShapeComponentLine      Tag = tagBegin + 62 // 78
	TagShapeComponentRect      Tag = tagBegin + 63 // 79
	TagShapeComponentEllipse   Tag = tagBegin + 64 // 80
	TagShapeComponentArc       Tag = tagBegin + 65 // 81
	TagShapeComponentPolygon   Tag = tagBegin + 66 // 82
	TagShapeComponentCurve     Tag = tagBegin + 67 // 83
	TagShapeComponentOLE       Tag = tagBegin + 68 // 84
	TagShapeComponentPicture   Tag = tagBegin + 69 // 85
	TagShapeComponentContainer Tag = tagBegin + 70 // 86
	TagCtrlData                Tag = tagBegin + 71 // 87
	TagEqEdit                  Tag = tagBegin + 72 // 88
	TagShapeComponentTextArt   Tag = tagBegin + 74 // 90
	TagFormObject              Tag = tagBegin + 75 // 91
	TagMemoList                Tag = tagBegin + 77 // 93
	TagChartData               Tag = tagBegin + 79 // 95
	TagVideoData               Tag = tagBegin + 82 // 98
	TagShapeComponentUnknown   Tag = tagBegin + 99 // 115
)

var tagNames = map[Tag]string{
	TagDocumentProperties:      "DOCUMENT_PROPERTIES",
	TagIDMappings:              "ID_MAPPINGS",
	TagBinData:                 "BIN_DATA",
	TagFaceName:                "FACE_NAME",
	TagBorderFill:              "BORDER_FILL",
	TagCharShape:               "CHAR_SHAPE",
	TagTabDef:                  "TAB_DEF",
	TagNumbering:               "NUMBERING",
	TagBullet:                  "BULLET",
	TagParaShape:               "PARA_SHAPE",
	TagStyle:                   "STYLE",
	TagDocData:                 "DOC_DATA",
	TagDistributeDocData:       "DISTRIBUTE_DOC_DATA",
	TagCompatibleDocument:      "COMPATIBLE_DOCUMENT",
	TagLayoutCompatibility:     "LAYOUT_COMPATIBILITY",
	TagTrackChange:             "TRACKCHANGE",
	TagMemoShape:               "MEMO_SHAPE",
	TagForbiddenChar:           "FORBIDDEN_CHAR",
	TagTrackChangeContent:      "TRACK_CHANGE",
	TagTrackChangeAuthor:       "TRACK_CHANGE_AUTHOR",
	TagParaHeader:              "PARA_HEADER",
	TagParaText:                "PARA_TEXT",
	TagParaCharShape:           "PARA_CHAR_SHAPE",
	TagParaLineSeg:             "PARA_LINE_SEG",
	TagParaRangeTag:            "PARA_RANGE_TAG",
	TagCtrlHeader:              "CTRL_HEADER",
	TagListHeader:              "LIST_HEADER",
	TagPageDef:                 "PAGE_DEF",
	TagFootnoteShape:           "FOOTNOTE_SHAPE",
	TagPageBorderFill:          "PAGE_BORDER_FILL",
	TagShapeComponent:          "SHAPE_COMPONENT",
	TagTable:                   "TABLE",
	TagShapeComponentLine:      "SHAPE_COMPONENT_LINE",
	TagShapeComponentRect:      "SHAPE_COMPONENT_RECTANGLE",
	TagShapeComponentEllipse:   "SHAPE_COMPONENT_ELLIPSE",
	TagShapeComponentArc:       "SHAPE_COMPONENT_ARC",
	TagShapeComponentPolygon:   "SHAPE_COMPONENT_POLYGON",
	TagShapeComponentCurve:     "SHAPE_COMPONENT_CURVE",
	TagShapeComponentOLE:       "SHAPE_COMPONENT_OLE",
	TagShapeComponentPicture:   "SHAPE_COMPONENT_PICTURE",
	TagShapeComponentContainer: "SHAPE_COMPONENT_CONTAINER",
	TagCtrlData:                "CTRL_DATA",
	TagEqEdit:                  "EQEDIT",
	TagShapeComponentTextArt:   "SHAPE_COMPONENT_TEXTART",
	TagFormObject:              "FORM_OBJECT",
	TagMemoList:                "MEMO_LIST",
	TagChartData:               "CHART_DATA",
	TagVideoData:               "VIDEO_DATA",
	TagShapeComponentUnknown:   "SHAPE_COMPONENT_UNKNOWN",
}

// String returns the record name used by the format documentation.
func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TAG_%d", uint16(t))
}
