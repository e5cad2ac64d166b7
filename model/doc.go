// Package model provides the in-memory representation of a decoded HWP 5
// document.
//
// All decoding ultimately produces these types. They are plain data: the
// decoder builds them in a single pass and nothing mutates them afterwards.
//
// # Document Structure
//
// A [Document] carries the [FileHeader], the global [DocInfo] resources and
// one [Section] per body-text stream:
//
//	for _, sec := range doc.Sections {
//		for _, p := range sec.Paragraphs {
//			fmt.Println(p.Text())
//		}
//	}
//
// # Controls
//
// Inline objects (tables, shapes, headers and footers, notes, section
// definitions, forms) are [Control] values stored in a per-section arena.
// Paragraphs refer to them by [ControlID]; use [Section.Control] or
// [Section.ControlsOf] to resolve them. The concrete payload is one of a
// closed set of [ControlBody] types:
//
//   - [*Table] - cells with row/column spans and an optional caption
//   - [*Shape] - pictures, lines, rectangles, containers, equations...
//   - [*HeadFoot] - header or footer paragraph lists
//   - [*Note] - footnotes and endnotes
//   - [*SectionDef] - page geometry, note shapes, page borders
//   - [*Form] - form objects
//   - [*Generic] - any other control, kept as raw payload
//
// A control whose body is nil is a placeholder: its position in the
// paragraph text was seen but its defining header never arrived.
//
// # Tables
//
// [Table.Grid] lays cells out on their declared rows and columns, and
// [Table.ToMarkdown] and [Table.ToCSV] export the grid.
//
// # Units
//
// Lengths are in HWPUNIT (1/7200 inch). [HWPUnit] converts to points and
// millimetres.
package model
