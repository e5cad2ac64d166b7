package decoder

import (
	"errors"
	"fmt"
)

// ErrNotHWP is returned when the FileHeader stream does not identify an
// HWP 5 document.
var ErrNotHWP = errors.New("not an HWP 5 document")

// NotImplementedError reports input that uses a recognised feature this
// decoder does not model.
type NotImplementedError struct {
	Feature string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented: %s", e.Feature)
}

func notImplemented(format string, args ...any) error {
	return &NotImplementedError{Feature: fmt.Sprintf(format, args...)}
}
