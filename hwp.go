// Package hwp extracts text, tables and pictures from HWP 5 word processor
// documents.
//
// An Extractor is configured by chaining option methods and consumed by a
// terminal operation, which decodes the document and closes it:
//
//	text, warnings, err := hwp.Open("report.hwp").
//	    Sections(1, 2).
//	    ExcludeHeadersAndFooters().
//	    Text()
//
// Terminal operations return non-fatal problems, such as records the
// decoder skipped, as Warnings next to the result. Lower layers are
// available directly: reader opens documents, decoder parses record
// streams, and cfb reads the compound container.
package hwp

import (
	"bytes"

	"github.com/tsawler/hwp/reader"
)

// Open returns an Extractor for the named file. Nothing is read until a
// terminal operation runs.
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes returns an Extractor over an in-memory document, e.g. an
// attachment that never touched the disk.
func FromBytes(data []byte) *Extractor {
	return &Extractor{
		src:     bytes.NewReader(data),
		size:    int64(len(data)),
		options: defaultOptions(),
	}
}

// FromReader returns an Extractor over an open reader. Terminal operations
// leave r open; the caller closes it.
func FromReader(r *reader.Reader) *Extractor {
	return &Extractor{
		reader:       r,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must panics if err is non-nil and returns val otherwise.
//
//	n := hwp.Must(hwp.Open("report.hwp").SectionCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is Must for terminal operations; warnings are discarded.
//
//	text := hwp.MustText(hwp.Open("report.hwp").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
