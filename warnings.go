package hwp

import (
	"fmt"
	"strings"
)

// Warning is a non-fatal issue found during extraction. The extraction
// succeeded but the result may be incomplete.
type Warning struct {
	// Section is the 0-based section index, or -1 for document-wide issues.
	Section int
	Message string
}

// String formats the warning with its 1-based section number
func (w Warning) String() string {
	if w.Section < 0 {
		return w.Message
	}
	return fmt.Sprintf("section %d: %s", w.Section+1, w.Message)
}

// FormatWarnings joins warnings into a single line
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
