package hwp

import "log/slog"

// ExtractOptions holds configuration for extraction.
type ExtractOptions struct {
	// Section selection (1-indexed in API, stored as-is)
	sections []int

	// Content filtering
	excludeHeaders   bool
	excludeFooters   bool
	excludeFootnotes bool
	includeCaptions  bool

	// OCR of embedded pictures
	ocrImages   bool
	ocrLanguage string

	// Decoder settings
	logger   *slog.Logger
	maxDepth int
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		sections:         nil, // nil means all sections
		excludeHeaders:   false,
		excludeFooters:   false,
		excludeFootnotes: false,
		includeCaptions:  false,
		ocrImages:        false,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o

	// Deep copy sections slice
	if o.sections != nil {
		newOpts.sections = make([]int, len(o.sections))
		copy(newOpts.sections, o.sections)
	}

	return newOpts
}
