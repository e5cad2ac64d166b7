package decoder

import "log/slog"

// DefaultMaxDepth bounds the frame stack when Options.MaxDepth is zero.
const DefaultMaxDepth = 64

// Options configures decoding. The zero value is valid.
type Options struct {
	// Logger is the optional logger for debug output.
	Logger *slog.Logger

	// MaxDepth is the maximum number of simultaneously open frames
	// (paragraphs, controls and shapes) in a section.
	MaxDepth int
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// debugLog logs a debug message if logging is enabled.
func (o Options) debugLog(msg string, args ...any) {
	if o.Logger != nil {
		o.Logger.Debug(msg, args...)
	}
}
