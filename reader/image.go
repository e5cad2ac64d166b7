package reader

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a picture held in BinData
type Image struct {
	ID        uint16
	Extension string // extension recorded in DocInfo
	Format    string // format detected from the bytes
	Width     int
	Height    int
	Data      []byte
}

// BinDataImage reads a BinData item and identifies it as an image.
// Items whose bytes are not a recognised image format return an error.
func (r *Reader) BinDataImage(id uint16) (*Image, error) {
	data, err := r.BinData(id)
	if err != nil {
		return nil, err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("BinData %d: %w", id, err)
	}
	return &Image{
		ID:        id,
		Extension: r.docInfo.BinData[id].Extension,
		Format:    format,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Data:      data,
	}, nil
}

// Images returns every embedded BinData item that decodes as an image,
// in id order. Items that are not images are skipped.
func (r *Reader) Images() []*Image {
	var out []*Image
	for _, id := range r.docInfo.BinDataIDs() {
		img, err := r.BinDataImage(id)
		if err != nil {
			r.debugLog("skipping BinData", "id", id, "error", err)
			continue
		}
		out = append(out, img)
	}
	return out
}

// Decode decodes the image data
func (img *Image) Decode() (image.Image, error) {
	decoded, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image: %w", img.Format, err)
	}
	return decoded, nil
}

// ToPNG re-encodes the image as PNG. PNG data is returned unchanged.
func (img *Image) ToPNG() ([]byte, error) {
	if img.Format == "png" {
		return img.Data, nil
	}
	decoded, err := img.Decode()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, decoded); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
