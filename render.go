package hwp

import (
	"fmt"
	"strings"

	"github.com/tsawler/hwp/model"
)

// include reports whether a control's content is rendered.
func (o ExtractOptions) include(c *model.Control) bool {
	switch b := c.Body.(type) {
	case *model.HeadFoot:
		if b.Footer {
			return !o.excludeFooters
		}
		return !o.excludeHeaders
	case *model.Note:
		return !o.excludeFootnotes
	}
	return true
}

// headingLevel returns the 1-based outline level of p, or 0.
func headingLevel(info *model.DocInfo, p *model.Paragraph) int {
	if info == nil {
		return 0
	}
	ps := info.ParaShape(p.ParaShapeID)
	if ps == nil || ps.HeadingType() != model.HeadingOutline {
		return 0
	}
	return min(ps.HeadingLevel()+1, 6)
}

type pictureRef struct {
	section int
	id      uint16
}

// pictureRefs lists the BinData ids of pictures in the sections, once
// each, in arena order.
func pictureRefs(sections []*model.Section) []pictureRef {
	var refs []pictureRef
	seen := make(map[uint16]bool)
	for _, sec := range sections {
		for _, c := range sec.Controls {
			shape, ok := c.Body.(*model.Shape)
			if !ok {
				continue
			}
			shape.Walk(func(s *model.Shape) {
				if pic, ok := s.Detail.(*model.Picture); ok && !seen[pic.Image.BinDataID] {
					seen[pic.Image.BinDataID] = true
					refs = append(refs, pictureRef{section: sec.Index, id: pic.Image.BinDataID})
				}
			})
		}
	}
	return refs
}

// ============================================================================
// Plain text
// ============================================================================

// renderText writes one line per paragraph, with control content following
// the paragraph that anchors it. Sections are separated by a blank line.
func renderText(sections []*model.Section, opts ExtractOptions, ocrText map[uint16]string) string {
	var result strings.Builder
	for _, sec := range sections {
		w := &textWriter{sec: sec, opts: opts, ocr: ocrText}
		w.paragraphs(sec.Paragraphs)
		text := strings.TrimRight(w.sb.String(), "\n")

		if result.Len() > 0 && len(text) > 0 {
			result.WriteString("\n\n")
		}
		result.WriteString(text)
	}
	return result.String()
}

type textWriter struct {
	sec  *model.Section
	opts ExtractOptions
	ocr  map[uint16]string
	sb   strings.Builder
}

func (w *textWriter) line(s string) {
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
}

func (w *textWriter) paragraphs(paras []*model.Paragraph) {
	for _, p := range paras {
		if text := p.Text(); text != "" || len(p.Controls) == 0 {
			w.line(text)
		}
		for _, c := range w.sec.ControlsOf(p) {
			w.control(c)
		}
	}
}

func (w *textWriter) caption(c *model.Caption) {
	if c != nil && w.opts.includeCaptions {
		w.paragraphs(c.Paragraphs)
	}
}

func (w *textWriter) control(c *model.Control) {
	if !w.opts.include(c) {
		return
	}
	switch b := c.Body.(type) {
	case *model.Table:
		w.caption(b.Caption)
		for _, row := range b.Grid() {
			for i, cell := range row {
				row[i] = strings.ReplaceAll(cell, "\n", " ")
			}
			w.line(strings.Join(row, "\t"))
		}
	case *model.Shape:
		w.caption(b.Caption)
		b.Walk(func(s *model.Shape) {
			switch d := s.Detail.(type) {
			case *model.Picture:
				if text := w.ocr[d.Image.BinDataID]; text != "" {
					w.line(text)
				}
			case *model.Equation:
				if d.Script != "" {
					w.line(d.Script)
				}
			}
			w.paragraphs(s.TextBox)
		})
	default:
		for _, list := range c.Paragraphs() {
			w.paragraphs(list)
		}
	}
}

// ============================================================================
// Markdown
// ============================================================================

func renderMarkdown(sections []*model.Section, info *model.DocInfo, opts ExtractOptions, ocrText map[uint16]string) string {
	var parts []string
	noteNum := 0
	for _, sec := range sections {
		w := &markdownWriter{sec: sec, info: info, opts: opts, ocr: ocrText, noteNum: &noteNum}
		w.paragraphs(sec.Paragraphs, false)

		out := strings.Join(w.blocks, "\n\n")
		if len(w.notes) > 0 {
			out += "\n\n" + strings.Join(w.notes, "\n")
		}
		if out != "" {
			parts = append(parts, out)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

type markdownWriter struct {
	sec     *model.Section
	info    *model.DocInfo
	opts    ExtractOptions
	ocr     map[uint16]string
	noteNum *int

	blocks []string
	notes  []string
}

// paragraphs renders paras as blocks. Nested lists (cells, captions, text
// boxes) never produce headings.
func (w *markdownWriter) paragraphs(paras []*model.Paragraph, nested bool) {
	for _, p := range paras {
		text := strings.TrimSpace(p.Text())

		var deferred []*model.Control
		for _, c := range w.sec.ControlsOf(p) {
			note, ok := c.Body.(*model.Note)
			if !ok {
				deferred = append(deferred, c)
				continue
			}
			if w.opts.excludeFootnotes {
				continue
			}
			*w.noteNum++
			text += fmt.Sprintf("[^%d]", *w.noteNum)
			w.notes = append(w.notes, fmt.Sprintf("[^%d]: %s", *w.noteNum, flatten(note.Paragraphs)))
		}

		if text != "" {
			if level := headingLevel(w.info, p); level > 0 && !nested {
				text = strings.Repeat("#", level) + " " + text
			}
			w.blocks = append(w.blocks, text)
		}
		for _, c := range deferred {
			w.control(c)
		}
	}
}

func (w *markdownWriter) caption(c *model.Caption) {
	if c == nil || !w.opts.includeCaptions {
		return
	}
	if text := flatten(c.Paragraphs); text != "" {
		w.blocks = append(w.blocks, "*"+text+"*")
	}
}

func (w *markdownWriter) control(c *model.Control) {
	if !w.opts.include(c) {
		return
	}
	switch b := c.Body.(type) {
	case *model.Table:
		w.caption(b.Caption)
		if md := strings.TrimRight(b.ToMarkdown(), "\n"); md != "" {
			w.blocks = append(w.blocks, md)
		}
	case *model.Shape:
		w.caption(b.Caption)
		b.Walk(func(s *model.Shape) {
			switch d := s.Detail.(type) {
			case *model.Picture:
				if text := w.ocr[d.Image.BinDataID]; text != "" {
					w.blocks = append(w.blocks, text)
				}
			case *model.Equation:
				if d.Script != "" {
					w.blocks = append(w.blocks, "`"+d.Script+"`")
				}
			}
			w.paragraphs(s.TextBox, true)
		})
	default:
		for _, list := range c.Paragraphs() {
			w.paragraphs(list, true)
		}
	}
}

// flatten joins the text of paras on one line.
func flatten(paras []*model.Paragraph) string {
	var parts []string
	for _, p := range paras {
		if text := strings.TrimSpace(strings.ReplaceAll(p.Text(), "\n", " ")); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
