package decoder

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/tsawler/hwp/model"
)

const (
	// FileHeaderSize is the size of the FileHeader stream.
	FileHeaderSize = 256

	// Signature opens every HWP 5 FileHeader.
	Signature = "HWP Document File"
)

// ParseFileHeader decodes the fixed 256-byte FileHeader stream.
func ParseFileHeader(data []byte) (*model.FileHeader, error) {
	if len(data) < FileHeaderSize {
		return nil, fmt.Errorf("%w: FileHeader is %d bytes, want %d", ErrNotHWP, len(data), FileHeaderSize)
	}

	sig := data[:32]
	if i := bytes.IndexByte(sig, 0); i >= 0 {
		sig = sig[:i]
	}
	if string(sig) != Signature {
		return nil, fmt.Errorf("%w: signature %q", ErrNotHWP, sig)
	}

	h := &model.FileHeader{
		Signature:      string(sig),
		Version:        model.VersionFromUint32(binary.LittleEndian.Uint32(data[32:])),
		Flags:          model.FileFlags(binary.LittleEndian.Uint32(data[36:])),
		License:        model.LicenseFlags(binary.LittleEndian.Uint32(data[40:])),
		EncryptVersion: binary.LittleEndian.Uint32(data[44:]),
		KOGLCountry:    data[48],
	}
	if h.Version.Major != 5 {
		return nil, fmt.Errorf("%w: unsupported version %s", ErrNotHWP, h.Version)
	}
	return h, nil
}
