package ocr

import (
	"errors"
	"image"
	"strings"
)

// DefaultLanguage is the Tesseract language set used when Options.Language
// is empty. HWP documents are mostly Korean with embedded Latin text.
const DefaultLanguage = "kor+eng"

// ErrOCRNotEnabled is returned by every operation of a build without the
// "ocr" tag.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// PageSegMode selects how Tesseract segments a picture. Values use
// Tesseract's numbering; only the modes that suit embedded pictures are
// named.
type PageSegMode int

const (
	SegmentAuto        PageSegMode = 3  // fully automatic
	SegmentSingleBlock PageSegMode = 6  // one uniform block, e.g. a scanned paragraph
	SegmentSingleLine  PageSegMode = 7  // a banner or a single caption line
	SegmentSparseText  PageSegMode = 11 // diagrams with scattered labels
)

// Options configures a Client. The zero value recognises DefaultLanguage
// with Tesseract's own segmentation and keeps every line.
type Options struct {
	// Language is a "+" separated Tesseract language set such as "kor+eng".
	Language string
	// PageSegMode is left to Tesseract when zero.
	PageSegMode PageSegMode
	// MinConfidence drops recognised lines scoring below it (0-100).
	MinConfidence float64
}

func (o Options) languages() []string {
	lang := o.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	var langs []string
	for _, l := range strings.Split(lang, "+") {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	return langs
}

// Line is one recognised line of text.
type Line struct {
	Text       string
	Confidence float64
	Bounds     image.Rectangle
}

// joinLines returns the non-empty lines scoring at least min, one per line.
func joinLines(lines []Line, min float64) string {
	var kept []string
	for _, l := range lines {
		text := strings.TrimSpace(l.Text)
		if text == "" || l.Confidence < min {
			continue
		}
		kept = append(kept, text)
	}
	return strings.Join(kept, "\n")
}
