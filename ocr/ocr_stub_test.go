//go:build !ocr

package ocr

import (
	"errors"
	"image"
	"testing"
)

func TestNewDisabled(t *testing.T) {
	client, err := New(Options{})
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Expected ErrOCRNotEnabled, got: %v", err)
	}
	if client != nil {
		t.Error("Expected nil client when OCR is disabled")
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close on nil client should not error: %v", err)
	}
}

func TestDisabledClient(t *testing.T) {
	client := &Client{}
	if _, err := client.RecognizeImage([]byte{1, 2, 3}); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("RecognizeImage: expected ErrOCRNotEnabled, got %v", err)
	}
	if _, err := client.Recognize(image.NewGray(image.Rect(0, 0, 1, 1))); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Recognize: expected ErrOCRNotEnabled, got %v", err)
	}
	if _, err := client.Lines(nil); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Lines: expected ErrOCRNotEnabled, got %v", err)
	}
}
