package hwp

import (
	"fmt"

	"github.com/tsawler/hwp/model"
	"github.com/tsawler/hwp/ocr"
)

type recognizer interface {
	RecognizeImage(imageData []byte) (string, error)
	Close() error
}

// newRecognizer is replaced in tests.
var newRecognizer = func(lang string) (recognizer, error) {
	client, err := ocr.New(ocr.Options{Language: lang, PageSegMode: ocr.SegmentAuto})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// recognizeImages OCRs the pictures of the sections when enabled and
// returns the text by BinData id. Failures become warnings.
func (e *Extractor) recognizeImages(sections []*model.Section) map[uint16]string {
	if !e.options.ocrImages {
		return nil
	}
	refs := pictureRefs(sections)
	if len(refs) == 0 {
		return nil
	}

	rec, err := newRecognizer(e.options.ocrLanguage)
	if err != nil {
		e.warnings = append(e.warnings, Warning{Section: -1, Message: fmt.Sprintf("OCR unavailable: %v", err)})
		return nil
	}
	defer rec.Close()

	out := make(map[uint16]string, len(refs))
	for _, ref := range refs {
		text, err := e.recognize(rec, ref.id)
		if err != nil {
			e.warnings = append(e.warnings, Warning{Section: ref.section, Message: err.Error()})
			continue
		}
		out[ref.id] = text
	}
	return out
}

func (e *Extractor) recognize(rec recognizer, id uint16) (string, error) {
	img, err := e.reader.BinDataImage(id)
	if err != nil {
		return "", err
	}
	data, err := img.ToPNG()
	if err != nil {
		return "", fmt.Errorf("BinData %d: %w", id, err)
	}
	text, err := rec.RecognizeImage(data)
	if err != nil {
		return "", fmt.Errorf("OCR of BinData %d: %w", id, err)
	}
	return text, nil
}
