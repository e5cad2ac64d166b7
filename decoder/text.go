package decoder

import (
	"encoding/binary"

	"github.com/tsawler/hwp/model"
	"github.com/tsawler/hwp/record"
)

// parseParaText splits PARA_TEXT into runs. Each extended control character
// allocates an unfulfilled placeholder in the section arena; the matching
// CTRL_HEADER later fills that slot.
func parseParaText(rec record.Record, sec *model.Section, p *model.Paragraph) error {
	data := rec.Data
	if len(data)%2 != 0 {
		return record.Errorf(rec, "odd size %d", len(data))
	}
	n := len(data) / 2

	var pending []byte
	start := 0
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		s, err := record.DecodeUTF16(pending)
		if err != nil {
			return record.Errorf(rec, "text at %d: %v", start, err)
		}
		p.Runs = append(p.Runs, model.TextRun{Pos: start, Kind: model.CharText, Text: s})
		pending = nil
		return nil
	}

	for i := 0; i < n; {
		code := binary.LittleEndian.Uint16(data[2*i:])
		kind := model.ClassifyChar(code)
		if kind == model.CharText {
			if len(pending) == 0 {
				start = i
			}
			pending = append(pending, data[2*i:2*i+2]...)
			i++
			continue
		}
		if err := flush(); err != nil {
			return err
		}

		run := model.TextRun{Pos: i, Kind: kind, Code: code}
		if kind == model.CharControl {
			p.Runs = append(p.Runs, run)
			i++
			continue
		}

		if i+model.CharUnits > n {
			return record.Errorf(rec, "control character %d at %d truncated", code, i)
		}
		run.CtrlID = model.CtrlID(binary.LittleEndian.Uint32(data[2*i+2:]))
		if kind == model.CharExtended {
			run.Control = sec.NewControl(&model.Control{ID: run.CtrlID, Pos: i})
			p.Controls = append(p.Controls, run.Control)
		}
		p.Runs = append(p.Runs, run)
		i += model.CharUnits
	}
	return flush()
}
