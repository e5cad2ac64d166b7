//go:build ocr

package ocr

import (
	"image"
	"image/color"
	"testing"
)

// blockImage is a white picture with one black bar; Tesseract may or may
// not find text in it.
func blockImage() image.Image {
	img := image.NewGray(image.Rect(0, 0, 120, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 120; x++ {
			c := color.White
			if x >= 10 && x < 60 && y >= 10 && y < 25 {
				c = color.Black
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func newClient(t *testing.T, opts Options) *Client {
	t.Helper()
	client, err := New(opts)
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRecognize(t *testing.T) {
	client := newClient(t, Options{Language: "eng", PageSegMode: SegmentSingleBlock})

	if _, err := client.Recognize(blockImage()); err != nil {
		t.Errorf("Recognize failed: %v", err)
	}
}

func TestRecognizeWithMinConfidence(t *testing.T) {
	client := newClient(t, Options{Language: "eng", MinConfidence: 101})

	text, err := client.Recognize(blockImage())
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if text != "" {
		t.Errorf("expected every line to be dropped, got %q", text)
	}
}

func TestCloseTwice(t *testing.T) {
	client, err := New(Options{Language: "eng"})
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
