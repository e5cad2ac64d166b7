package record

import "fmt"

// ParseError reports a malformed record: a payload whose consumed size does
// not match its declared size, a truncated stream, or a record that arrives
// where no open container can accept it.
type ParseError struct {
	Tag    Tag
	Offset int // stream offset of the record header
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed %s record at offset %d: %s", e.Tag, e.Offset, e.Msg)
}

// Errorf builds a ParseError for rec.
func Errorf(rec Record, format string, args ...any) *ParseError {
	return &ParseError{Tag: rec.Tag, Offset: rec.Offset, Msg: fmt.Sprintf(format, args...)}
}
