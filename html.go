package hwp

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/hwp/model"
)

var headingAtoms = []atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// appendText adds s to n, turning line breaks into <br> elements.
func appendText(n *html.Node, s string) {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			n.AppendChild(element(atom.Br))
		}
		if line != "" {
			n.AppendChild(textNode(line))
		}
	}
}

// renderHTML builds a complete HTML document. Each section becomes a
// <section> element; notes are collected into an <aside> at its end.
func renderHTML(sections []*model.Section, info *model.DocInfo, opts ExtractOptions, ocrText map[uint16]string) (string, error) {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	root.AppendChild(head)
	body := element(atom.Body)
	root.AppendChild(body)

	noteNum := 0
	for _, sec := range sections {
		w := &htmlWriter{sec: sec, info: info, opts: opts, ocr: ocrText, noteNum: &noteNum}
		section := element(atom.Section, attr("data-section", strconv.Itoa(sec.Index+1)))
		w.paragraphs(section, sec.Paragraphs, false)

		if len(w.notes) > 0 {
			aside := element(atom.Aside, attr("class", "footnotes"))
			ol := element(atom.Ol)
			for _, li := range w.notes {
				ol.AppendChild(li)
			}
			aside.AppendChild(ol)
			section.AppendChild(aside)
		}
		body.AppendChild(section)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	return buf.String(), nil
}

type htmlWriter struct {
	sec     *model.Section
	info    *model.DocInfo
	opts    ExtractOptions
	ocr     map[uint16]string
	noteNum *int

	notes []*html.Node
}

func (w *htmlWriter) paragraphs(parent *html.Node, paras []*model.Paragraph, nested bool) {
	for _, p := range paras {
		tag := atom.P
		if level := headingLevel(w.info, p); level > 0 && !nested {
			tag = headingAtoms[level-1]
		}
		node := element(tag)
		appendText(node, p.Text())

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
			num := strconv.Itoa(*w.noteNum)

			sup := element(atom.Sup)
			link := element(atom.A, attr("href", "#fn-"+num))
			link.AppendChild(textNode(num))
			sup.AppendChild(link)
			node.AppendChild(sup)

			li := element(atom.Li, attr("id", "fn-"+num), attr("value", num))
			w.paragraphs(li, note.Paragraphs, true)
			w.notes = append(w.notes, li)
		}

		if node.FirstChild != nil {
			parent.AppendChild(node)
		}
		for _, c := range deferred {
			w.control(parent, c)
		}
	}
}

func (w *htmlWriter) caption(c *model.Caption, tag atom.Atom) *html.Node {
	if c == nil || !w.opts.includeCaptions {
		return nil
	}
	n := element(tag)
	w.paragraphs(n, c.Paragraphs, true)
	if n.FirstChild == nil {
		return nil
	}
	return n
}

func (w *htmlWriter) control(parent *html.Node, c *model.Control) {
	if !w.opts.include(c) {
		return
	}
	switch b := c.Body.(type) {
	case *model.Table:
		parent.AppendChild(w.table(b))

	case *model.Shape:
		fig := element(atom.Figure)
		b.Walk(func(s *model.Shape) {
			switch d := s.Detail.(type) {
			case *model.Picture:
				img := element(atom.Img, attr("data-bindata", strconv.Itoa(int(d.Image.BinDataID))))
				if text := w.ocr[d.Image.BinDataID]; text != "" {
					img.Attr = append(img.Attr, attr("alt", text))
				}
				fig.AppendChild(img)
			case *model.Equation:
				code := element(atom.Code, attr("class", "equation"))
				code.AppendChild(textNode(d.Script))
				fig.AppendChild(code)
			}
			w.paragraphs(fig, s.TextBox, true)
		})
		if caption := w.caption(b.Caption, atom.Figcaption); caption != nil {
			fig.AppendChild(caption)
		}
		if fig.FirstChild != nil {
			parent.AppendChild(fig)
		}

	case *model.HeadFoot:
		tag := atom.Header
		if b.Footer {
			tag = atom.Footer
		}
		n := element(tag)
		w.paragraphs(n, b.Paragraphs, true)
		if n.FirstChild != nil {
			parent.AppendChild(n)
		}

	case *model.Generic:
		w.paragraphs(parent, b.Paragraphs, true)
	}
}

// table renders cells row by row; spans become colspan/rowspan attributes.
func (w *htmlWriter) table(t *model.Table) *html.Node {
	n := element(atom.Table)
	if caption := w.caption(t.Caption, atom.Caption); caption != nil {
		n.AppendChild(caption)
	}

	rows := t.Rows
	byRow := make(map[int][]*model.Cell)
	for _, cell := range t.Cells {
		byRow[cell.Row] = append(byRow[cell.Row], cell)
		if cell.Row+1 > rows {
			rows = cell.Row + 1
		}
	}

	tbody := element(atom.Tbody)
	for r := 0; r < rows; r++ {
		cells := byRow[r]
		sort.SliceStable(cells, func(i, j int) bool { return cells[i].Col < cells[j].Col })

		tr := element(atom.Tr)
		for _, cell := range cells {
			td := element(atom.Td)
			if cell.ColSpan > 1 {
				td.Attr = append(td.Attr, attr("colspan", strconv.Itoa(cell.ColSpan)))
			}
			if cell.RowSpan > 1 {
				td.Attr = append(td.Attr, attr("rowspan", strconv.Itoa(cell.RowSpan)))
			}
			w.paragraphs(td, cell.Paragraphs, true)
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	n.AppendChild(tbody)
	return n
}
