//go:build !ocr

// Package ocr recognises text in pictures embedded in HWP documents.
//
// Without the "ocr" build tag every operation fails with ErrOCRNotEnabled.
// Build with
//
//	go build -tags ocr
//
// to link Tesseract.
package ocr

import "image"

// Client is the disabled OCR client.
type Client struct{}

// New always fails with ErrOCRNotEnabled.
func New(opts Options) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op.
func (c *Client) Close() error {
	return nil
}

func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

func (c *Client) Recognize(img image.Image) (string, error) {
	return "", ErrOCRNotEnabled
}

func (c *Client) Lines(imageData []byte) ([]Line, error) {
	return nil, ErrOCRNotEnabled
}
