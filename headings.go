package hwp

import (
	"strings"

	"github.com/tsawler/hwp/model"
)

// Heading is a top-level paragraph whose paragraph shape marks it as an
// outline heading.
type Heading struct {
	Section int // 0-based section index
	Level   int // 1-based outline level, at most 6
	Text    string
}

// Headings returns the outline headings of the configured sections in
// document order. This is a terminal operation that closes the underlying
// reader.
//
// Example:
//
//	headings, _, err := hwp.Open("report.hwp").Headings()
//	for _, h := range headings {
//	    fmt.Printf("%s%s\n", strings.Repeat("  ", h.Level-1), h.Text)
//	}
func (e *Extractor) Headings() ([]Heading, []Warning, error) {
	sections, err := e.prepare()
	defer e.Close()
	if err != nil {
		return nil, nil, err
	}
	return headings(sections, e.reader.DocInfo()), e.warnings, nil
}

func headings(sections []*model.Section, info *model.DocInfo) []Heading {
	var out []Heading
	for _, sec := range sections {
		for _, p := range sec.Paragraphs {
			level := headingLevel(info, p)
			if level == 0 {
				continue
			}
			if text := strings.TrimSpace(p.Text()); text != "" {
				out = append(out, Heading{Section: sec.Index, Level: level, Text: text})
			}
		}
	}
	return out
}
