// Package decoder turns HWP record streams into the document model.
//
// Three entry points cover the streams of a document:
//
//	hdr, err := decoder.ParseFileHeader(fileHeaderBytes)
//	info, err := decoder.ParseDocInfo(docInfoBytes, hdr.Version, opts)
//	sec, err := decoder.ParseSection(sectionBytes, hdr.Version, opts)
//
// Input must already be decompressed and decrypted. DocInfo is a flat
// sequence of records; a section is a tree whose shape is carried
// only by record levels. ParseSection walks it with an explicit stack of
// open frames, so nesting depth is bounded by [Options.MaxDepth] rather
// than by the goroutine stack.
//
// Records with unknown tags are skipped by their declared size. Fixed-layout
// records whose size does not match their layout fail with a
// [*record.ParseError]; inputs that use a recognised but unmodelled feature
// fail with a [*NotImplementedError].
package decoder
