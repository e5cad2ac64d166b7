// Package record provides the tag/level/size framing shared by the HWP
// DocInfo and BodyText streams.
//
// Every record starts with a 32-bit little-endian header word:
//
//	bits  0-9   tag
//	bits 10-19  level (nesting depth relative to the logical parent)
//	bits 20-31  payload size
//
// A size of 0xFFF means the real size follows in the next four bytes, so the
// header occupies eight bytes instead of four.
//
// # Reading Records
//
// [Reader] walks a fully materialized stream. [Reader.Peek] decodes the next
// header without consuming it, which is how tree decoders detect that a
// subtree has closed:
//
//	r := record.NewReader(data)
//	for !r.EOF() {
//	    rec, err := r.Next()
//	    if err != nil {
//	        return err
//	    }
//	    // dispatch on rec.Tag
//	}
//
// # Payload Decoding
//
// [Cursor] reads little-endian integers and WCHAR strings out of a record
// payload. It keeps a sticky error, so fixed layouts can be decoded with a
// straight run of calls followed by one [Cursor.Err] check. [Cursor.ExpectEnd]
// asserts that a fixed-layout record was consumed exactly.
package record
