// Package reader opens HWP 5 documents.
//
// The Reader runs the whole decode pipeline: it opens the compound
// container, validates the FileHeader, decodes DocInfo and every body-text
// section, decrypting and inflating streams as the header flags require.
//
// # Opening Documents
//
// Use [Open] to open a file:
//
//	r, err := reader.Open("document.hwp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
// Or use [NewReader] with any io.ReaderAt.
//
// Opening is atomic: either every stream decodes and a Reader is returned,
// or an error is returned and nothing is kept.
//
// # Document Access
//
//   - Header() - FileHeader: version and feature flags
//   - DocInfo() - fonts, shapes, styles, BinData descriptors
//   - Sections() - decoded body sections
//   - Document() - all of the above as a model.Document
//
// # Binary Data
//
// Embedded pictures and OLE objects live in the BinData storage:
//
//	data, err := r.BinData(id)
//	img, err := r.BinDataImage(id)
//
// BinDataImage sniffs the image format and dimensions (PNG, JPEG, GIF, BMP,
// TIFF and WebP are recognised).
package reader
