package cfb

import (
	"errors"
	"fmt"
)

// Header fields named by DetectError.
const (
	FieldSignature            = "Signature"
	FieldMinorVersion         = "MinorVersion"
	FieldMajorVersion         = "MajorVersion"
	FieldByteOrder            = "ByteOrder"
	FieldSectorShift          = "SectorShift"
	FieldMiniSectorShift      = "MiniSectorShift"
	FieldDirectorySectorCount = "DirectorySectorCount"
	FieldMiniStreamCutoff     = "MiniStreamCutoffSize"
)

// ErrSignatureMismatch is matched by a DetectError for the signature field.
var ErrSignatureMismatch = errors.New("cfb: signature mismatch")

// ErrNotFound is returned when a named entry does not exist.
var ErrNotFound = errors.New("cfb: entry not found")

// DetectError reports a header field that fails validation.
type DetectError struct {
	Field string
	Value uint64
}

func (e *DetectError) Error() string {
	if e.Field == FieldSignature {
		return "cfb: signature mismatch (not a compound file)"
	}
	return fmt.Sprintf("cfb: invalid %s in header: %#x", e.Field, e.Value)
}

// Is makes errors.Is(err, ErrSignatureMismatch) work for signature failures.
func (e *DetectError) Is(target error) bool {
	return target == ErrSignatureMismatch && e.Field == FieldSignature
}

// ReadError reports a structural failure while resolving sectors.
type ReadError struct {
	Op     string // what was being resolved, e.g. "SAT", "directory", "stream BodyText/Section0"
	Sector uint32
	Msg    string
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cfb: reading %s at sector %#x: %s", e.Op, e.Sector, e.Msg)
}
