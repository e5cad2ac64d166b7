//go:build ocr

// Package ocr recognises text in pictures embedded in HWP documents.
//
// It drives the Tesseract engine through gosseract, so Tesseract and its
// Korean language data must be installed. On macOS:
//
//	brew install tesseract tesseract-lang
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-kor
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client recognises text in pictures. It is not safe for concurrent use.
type Client struct {
	client *gosseract.Client
	opts   Options
}

// New creates a Client. Close it to release the engine.
func New(opts Options) (*Client, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(opts.languages()...); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language %q: %w", opts.Language, err)
	}
	if opts.PageSegMode != 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(opts.PageSegMode)); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set page segmentation mode %d: %w", opts.PageSegMode, err)
		}
	}
	return &Client{client: client, opts: opts}, nil
}

// Close releases the engine. It is safe to call on a nil or closed Client.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// RecognizeImage returns the text of an encoded picture (PNG, JPEG, TIFF,
// BMP...). Lines below Options.MinConfidence are dropped.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if c.opts.MinConfidence > 0 {
		lines, err := c.Lines(imageData)
		if err != nil {
			return "", err
		}
		return joinLines(lines, c.opts.MinConfidence), nil
	}

	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Recognize returns the text of a decoded picture.
func (c *Client) Recognize(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return c.RecognizeImage(buf.Bytes())
}

// Lines returns every recognised text line with its confidence and
// position in the picture.
func (c *Client) Lines(imageData []byte) ([]Line, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}
	lines := make([]Line, len(boxes))
	for i, b := range boxes {
		lines[i] = Line{Text: b.Word, Confidence: b.Confidence, Bounds: b.Box}
	}
	return lines, nil
}
