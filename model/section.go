package model

// Skipped records a record the decoder did not model.
type Skipped struct {
	Tag    uint16
	Level  int
	Offset int
}

// Section is the content of one body-text stream.
type Section struct {
	Index      int
	Paragraphs []*Paragraph

	// Controls is the arena of every control in the section, including
	// those nested in cells, captions and note bodies.
	Controls []*Control

	Skipped []Skipped
}

// NewControl appends a control to the arena and returns its id
func (s *Section) NewControl(c *Control) ControlID {
	s.Controls = append(s.Controls, c)
	return ControlID(len(s.Controls) - 1)
}

// Control returns the control with the given id, or nil
func (s *Section) Control(id ControlID) *Control {
	if id < 0 || int(id) >= len(s.Controls) {
		return nil
	}
	return s.Controls[id]
}

// ControlsOf resolves a paragraph's control ids
func (s *Section) ControlsOf(p *Paragraph) []*Control {
	out := make([]*Control, 0, len(p.Controls))
	for _, id := range p.Controls {
		if c := s.Control(id); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// SectionDef returns the first section definition in the section, or nil
func (s *Section) SectionDef() *SectionDef {
	for _, c := range s.Controls {
		if def, ok := c.Body.(*SectionDef); ok {
			return def
		}
	}
	return nil
}

// Tables returns every table in the section, nested ones included
func (s *Section) Tables() []*Table {
	var tables []*Table
	for _, c := range s.Controls {
		if t, ok := c.Body.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// Unfulfilled returns placeholders whose defining header never arrived
func (s *Section) Unfulfilled() []*Control {
	var out []*Control
	for _, c := range s.Controls {
		if !c.Fulfilled {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits every paragraph in document order, descending into the
// paragraph lists owned by controls. depth is 0 for top-level paragraphs.
func (s *Section) Walk(fn func(p *Paragraph, depth int)) {
	s.walk(s.Paragraphs, 0, fn)
}

func (s *Section) walk(paras []*Paragraph, depth int, fn func(*Paragraph, int)) {
	for _, p := range paras {
		fn(p, depth)
		for _, c := range s.ControlsOf(p) {
			for _, list := range c.Paragraphs() {
				s.walk(list, depth+1, fn)
			}
		}
	}
}

// Document is a fully decoded document.
type Document struct {
	Header   FileHeader
	DocInfo  *DocInfo
	Sections []*Section
}

// Text returns the text of every top-level paragraph, one per line, with
// sections separated by a blank line.
func (d *Document) Text() string {
	var text string
	for i, sec := range d.Sections {
		if i > 0 {
			text += "\n"
		}
		for _, p := range sec.Paragraphs {
			text += p.Text() + "\n"
		}
	}
	return text
}

// Tables returns all tables from all sections
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, sec := range d.Sections {
		tables = append(tables, sec.Tables()...)
	}
	return tables
}
