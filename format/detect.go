// Package format provides file format detection for HWP documents.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/tsawler/hwp/cfb"
	"github.com/tsawler/hwp/decoder"
)

// Format represents a recognised document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// HWP indicates an HWP 5 compound document (.hwp).
	HWP
	// HWPX indicates an OWPML zip package (.hwpx).
	HWPX
	// HWP3 indicates a legacy HWP 3 document.
	HWP3
)

// HWPXMimeType is the content of the mimetype entry of an HWPX package.
const HWPXMimeType = "application/hwp+zip"

var (
	cfbMagic  = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipMagic  = []byte{0x50, 0x4B, 0x03, 0x04}
	hwp3Magic = []byte("HWP Document File V3")
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case HWP:
		return "HWP"
	case HWPX:
		return "HWPX"
	case HWP3:
		return "HWP3"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case HWP, HWP3:
		return ".hwp"
	case HWPX:
		return ".hwpx"
	default:
		return ""
	}
}

// Supported reports whether the decoder can read the format.
func (f Format) Supported() bool {
	return f == HWP
}

// Detect determines file format from filename extension.
// HWP 3 and HWP 5 share an extension, so .hwp always yields HWP.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hwp":
		return HWP
	case ".hwpx":
		return HWPX
	default:
		return Unknown
	}
}

// DetectFromMagic checks file magic bytes to determine format.
// A compound file is reported as HWP without looking inside; use
// DetectFromReader to tell HWP from other compound documents.
// Returns Unknown if the format cannot be determined from magic bytes alone.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, cfbMagic):
		return HWP
	case bytes.HasPrefix(data, hwp3Magic):
		return HWP3
	default:
		// A zip could be HWPX or anything else; caller should use
		// DetectFromReader for zip files.
		return Unknown
	}
}

// DetectFromReader inspects the content to determine format. Compound
// files are opened and their FileHeader signature checked; zip archives
// are checked for the HWPX mimetype entry.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 32)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	switch {
	case bytes.HasPrefix(magic, cfbMagic):
		return detectCompound(r, size)
	case bytes.HasPrefix(magic, zipMagic):
		return detectZIPFormat(r, size)
	case bytes.HasPrefix(magic, hwp3Magic):
		return HWP3, nil
	}
	return Unknown, nil
}

// detectCompound reports HWP when the compound file holds an HWP 5
// FileHeader. Other compound documents (.doc, .xls...) are Unknown.
func detectCompound(r io.ReaderAt, size int64) (Format, error) {
	c, err := cfb.Open(r, size)
	if err != nil {
		return Unknown, err
	}
	data, err := c.ReadStream("FileHeader")
	if err != nil {
		return Unknown, nil
	}
	if _, err := decoder.ParseFileHeader(data); err != nil {
		return Unknown, nil
	}
	return HWP, nil
}

// detectZIPFormat reports HWPX when the archive's mimetype entry names the
// HWPX media type.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if f.Name != "mimetype" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return Unknown, err
		}
		data, err := io.ReadAll(io.LimitReader(rc, 256))
		rc.Close()
		if err != nil {
			return Unknown, err
		}
		if strings.TrimSpace(string(data)) == HWPXMimeType {
			return HWPX, nil
		}
		return Unknown, nil
	}
	return Unknown, nil
}
