package hwp

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/tsawler/hwp/decoder"
	"github.com/tsawler/hwp/format"
	"github.com/tsawler/hwp/model"
	"github.com/tsawler/hwp/record"
	"github.com/tsawler/hwp/reader"
)

// Extractor provides a fluent interface for extracting content from HWP
// documents. Each configuration method returns a new Extractor instance,
// making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source: a file name or an in-memory document
	filename string
	src      io.ReaderAt
	size     int64

	reader *reader.Reader

	// Lifecycle
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if reader has been opened

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		src:          e.src,
		size:         e.size,
		reader:       e.reader,
		ownsReader:   e.ownsReader,
		readerOpened: e.readerOpened,
		options:      e.options.clone(),
		err:          e.err,
		warnings:     append([]Warning(nil), e.warnings...),
	}
}

// ensureReader opens the reader if not already open.
func (e *Extractor) ensureReader() error {
	if e.readerOpened {
		return nil
	}

	opts := reader.Options{
		Logger:   e.options.logger,
		MaxDepth: e.options.maxDepth,
	}
	switch {
	case e.src != nil:
		if err := checkFormat(e.src, e.size, "document"); err != nil {
			return err
		}
		r, err := reader.NewReader(e.src, e.size, opts)
		if err != nil {
			return fmt.Errorf("failed to open HWP: %w", err)
		}
		e.reader = r
	case e.filename != "":
		if err := checkFile(e.filename); err != nil {
			return err
		}
		r, err := reader.OpenWithOptions(e.filename, opts)
		if err != nil {
			return fmt.Errorf("failed to open HWP: %w", err)
		}
		e.reader = r
	default:
		return fmt.Errorf("no filename specified")
	}
	e.ownsReader = true
	e.readerOpened = true
	return nil
}

// checkFile sniffs the file content; the .hwp extension is shared by HWP 3
// and HWP 5 so the name alone is not enough.
func checkFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}
	return checkFormat(file, info.Size(), filename)
}

func checkFormat(r io.ReaderAt, size int64, name string) error {
	f, err := format.DetectFromReader(r, size)
	if err != nil {
		return fmt.Errorf("failed to detect format: %w", err)
	}
	switch {
	case f.Supported():
		return nil
	case f == format.Unknown:
		return fmt.Errorf("unsupported file format: %s", name)
	default:
		return &decoder.NotImplementedError{Feature: f.String() + " documents"}
	}
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsReader && e.reader != nil {
		err := e.reader.Close()
		e.reader = nil
		e.ownsReader = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Sections specifies which sections to extract from (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	text, _, err := hwp.Open("doc.hwp").Sections(1, 3).Text()
func (e *Extractor) Sections(sections ...int) *Extractor {
	newExt := e.clone()
	newExt.options.sections = append(newExt.options.sections, sections...)
	return newExt
}

// SectionRange specifies a range of sections to extract (1-indexed, inclusive).
func (e *Extractor) SectionRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.sections = append(newExt.options.sections, i)
	}
	return newExt
}

// ExcludeHeaders leaves header ("head") controls out of the output.
func (e *Extractor) ExcludeHeaders() *Extractor {
	newExt := e.clone()
	newExt.options.excludeHeaders = true
	return newExt
}

// ExcludeFooters leaves footer ("foot") controls out of the output.
func (e *Extractor) ExcludeFooters() *Extractor {
	newExt := e.clone()
	newExt.options.excludeFooters = true
	return newExt
}

// ExcludeHeadersAndFooters is equivalent to calling
// ExcludeHeaders().ExcludeFooters().
//
// Example:
//
//	text, _, err := hwp.Open("doc.hwp").ExcludeHeadersAndFooters().Text()
func (e *Extractor) ExcludeHeadersAndFooters() *Extractor {
	newExt := e.clone()
	newExt.options.excludeHeaders = true
	newExt.options.excludeFooters = true
	return newExt
}

// ExcludeFootnotes leaves footnote and endnote bodies out of the output.
func (e *Extractor) ExcludeFootnotes() *Extractor {
	newExt := e.clone()
	newExt.options.excludeFootnotes = true
	return newExt
}

// IncludeCaptions renders table and shape captions.
func (e *Extractor) IncludeCaptions() *Extractor {
	newExt := e.clone()
	newExt.options.includeCaptions = true
	return newExt
}

// OCRImages runs OCR over embedded pictures and adds the recognised text
// where each picture is anchored. lang is a Tesseract language set such as
// "kor+eng"; empty selects ocr.DefaultLanguage. OCR needs a build with the
// "ocr" tag; without it a warning is reported and pictures are skipped.
func (e *Extractor) OCRImages(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.ocrImages = true
	newExt.options.ocrLanguage = lang
	return newExt
}

// WithLogger sets the logger used for decoder debug output.
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// MaxDepth bounds record nesting while decoding sections.
func (e *Extractor) MaxDepth(depth int) *Extractor {
	newExt := e.clone()
	newExt.options.maxDepth = depth
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// prepare opens the reader and resolves the selected sections. Callers
// must close the Extractor.
func (e *Extractor) prepare() ([]*model.Section, error) {
	if e.err != nil {
		return nil, e.err
	}
	if err := e.ensureReader(); err != nil {
		return nil, err
	}
	sections, err := e.resolveSections()
	if err != nil {
		return nil, err
	}
	for _, sec := range sections {
		e.warnings = append(e.warnings, sectionWarnings(sec)...)
	}
	return sections, nil
}

// Text extracts and returns the text content from the configured sections.
// This is a terminal operation that closes the underlying reader.
//
// Returns the extracted text, any warnings encountered during processing,
// and an error if extraction failed.
//
// Example:
//
//	text, warnings, err := hwp.Open("document.hwp").Text()
func (e *Extractor) Text() (string, []Warning, error) {
	sections, err := e.prepare()
	defer e.Close()
	if err != nil {
		return "", nil, err
	}

	ocrText := e.recognizeImages(sections)
	out := renderText(sections, e.options, ocrText)
	return out, e.warnings, nil
}

// ToMarkdown extracts content as markdown: outline headings become "#"
// headings, tables become pipe tables and notes become footnotes.
// This is a terminal operation that closes the underlying reader.
func (e *Extractor) ToMarkdown() (string, []Warning, error) {
	sections, err := e.prepare()
	defer e.Close()
	if err != nil {
		return "", nil, err
	}

	ocrText := e.recognizeImages(sections)
	out := renderMarkdown(sections, e.reader.DocInfo(), e.options, ocrText)
	return out, e.warnings, nil
}

// HTML extracts content as an HTML document.
// This is a terminal operation that closes the underlying reader.
func (e *Extractor) HTML() (string, []Warning, error) {
	sections, err := e.prepare()
	defer e.Close()
	if err != nil {
		return "", nil, err
	}

	ocrText := e.recognizeImages(sections)
	out, err := renderHTML(sections, e.reader.DocInfo(), e.options, ocrText)
	if err != nil {
		return "", e.warnings, err
	}
	return out, e.warnings, nil
}

// Tables returns every table in the configured sections, nested tables
// included. This is a terminal operation that closes the underlying reader.
func (e *Extractor) Tables() ([]*model.Table, []Warning, error) {
	sections, err := e.prepare()
	defer e.Close()
	if err != nil {
		return nil, nil, err
	}

	var tables []*model.Table
	for _, sec := range sections {
		tables = append(tables, sec.Tables()...)
	}
	return tables, e.warnings, nil
}

// Document returns the decoded document restricted to the configured
// sections. This is a terminal operation that closes the underlying reader.
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	sections, err := e.prepare()
	defer e.Close()
	if err != nil {
		return nil, nil, err
	}

	doc := e.reader.Document()
	doc.Sections = sections
	return doc, e.warnings, nil
}

// Images returns the embedded pictures referenced from the configured
// sections. Pictures that cannot be read are reported as warnings.
// This is a terminal operation that closes the underlying reader.
func (e *Extractor) Images() ([]*reader.Image, []Warning, error) {
	sections, err := e.prepare()
	defer e.Close()
	if err != nil {
		return nil, nil, err
	}

	var images []*reader.Image
	for _, ref := range pictureRefs(sections) {
		img, err := e.reader.BinDataImage(ref.id)
		if err != nil {
			e.warnings = append(e.warnings, Warning{Section: ref.section, Message: err.Error()})
			continue
		}
		images = append(images, img)
	}
	return images, e.warnings, nil
}

// SectionCount returns the total number of sections in the document.
// Note: This does NOT close the reader, allowing further operations.
//
// Example:
//
//	ext := hwp.Open("document.hwp")
//	defer ext.Close()
//	count, err := ext.SectionCount()
func (e *Extractor) SectionCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureReader(); err != nil {
		e.err = err
		return 0, err
	}
	return e.reader.SectionCount(), nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// resolveSections validates the 1-indexed selection and returns the chosen
// sections in document order. If no sections are specified, returns all.
func (e *Extractor) resolveSections() ([]*model.Section, error) {
	all := e.reader.Sections()
	if len(e.options.sections) == 0 {
		return all, nil
	}

	seen := make(map[int]bool)
	var indices []int
	for _, s := range e.options.sections {
		if s < 1 || s > len(all) {
			return nil, fmt.Errorf("section %d out of range (1-%d)", s, len(all))
		}
		if !seen[s-1] {
			seen[s-1] = true
			indices = append(indices, s-1)
		}
	}
	sort.Ints(indices)

	sections := make([]*model.Section, len(indices))
	for i, idx := range indices {
		sections[i] = all[idx]
	}
	return sections, nil
}

// sectionWarnings reports controls whose header never arrived and records
// the decoder did not model.
func sectionWarnings(sec *model.Section) []Warning {
	var warnings []Warning
	if n := len(sec.Unfulfilled()); n > 0 {
		warnings = append(warnings, Warning{
			Section: sec.Index,
			Message: fmt.Sprintf("%d control(s) referenced in text have no %s record", n, record.TagCtrlHeader),
		})
	}

	if len(sec.Skipped) > 0 {
		counts := make(map[uint16]int)
		var tags []uint16
		for _, s := range sec.Skipped {
			if counts[s.Tag] == 0 {
				tags = append(tags, s.Tag)
			}
			counts[s.Tag]++
		}
		sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
		for _, tag := range tags {
			warnings = append(warnings, Warning{
				Section: sec.Index,
				Message: fmt.Sprintf("skipped %d %s record(s)", counts[tag], record.Tag(tag)),
			})
		}
	}
	return warnings
}
