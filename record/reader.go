package record

import "io"

// Record is one framed unit of a stream. Data aliases the stream buffer.
type Record struct {
	Header
	Offset int // offset of the header within the stream
	Data   []byte
}

// Cursor returns a payload cursor over the record data.
func (r Record) Cursor() *Cursor {
	return NewCursor(r)
}

// Reader decodes records sequentially from an in-memory stream. Every byte
// of the stream belongs to exactly one record; a record is never read twice
// once Next has returned it.
type Reader struct {
	buf []byte
	off int

	peeked  bool
	next    Record
	nextEnd int
	nextErr error
}

// NewReader creates a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{buf: data}
}

// Offset returns the offset of the next unread record.
func (r *Reader) Offset() int {
	return r.off
}

// EOF reports whether the stream has been fully consumed.
func (r *Reader) EOF() bool {
	return r.off >= len(r.buf)
}

// Peek decodes the next record without consuming it. It returns io.EOF when
// the stream is exhausted.
func (r *Reader) Peek() (Record, error) {
	if !r.peeked {
		r.next, r.nextEnd, r.nextErr = r.decodeAt(r.off)
		r.peeked = true
	}
	return r.next, r.nextErr
}

// Next consumes and returns the next record.
func (r *Reader) Next() (Record, error) {
	rec, err := r.Peek()
	if err != nil {
		return Record{}, err
	}
	r.off = r.nextEnd
	r.peeked = false
	return rec, nil
}

func (r *Reader) decodeAt(off int) (Record, int, error) {
	if off >= len(r.buf) {
		return Record{}, off, io.EOF
	}
	h, n, err := DecodeHeader(r.buf[off:])
	if err != nil {
		return Record{}, off, &ParseError{Offset: off, Msg: err.Error()}
	}
	start := off + n
	end := start + int(h.Size)
	if int(h.Size) > len(r.buf)-start {
		return Record{}, off, &ParseError{
			Tag:    h.Tag,
			Offset: off,
			Msg:    "declared size runs past end of stream",
		}
	}
	return Record{Header: h, Offset: off, Data: r.buf[start:end:end]}, end, nil
}

// ReadAll decodes every record in data.
func ReadAll(data []byte) ([]Record, error) {
	r := NewReader(data)
	var recs []Record
	for !r.EOF() {
		rec, err := r.Next()
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
