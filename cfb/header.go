package cfb

import (
	"bytes"
	"encoding/binary"
)

// Signature is the 8-byte magic at the start of every compound file.
var Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Sector id sentinels.
const (
	MaxRegularSector uint32 = 0xFFFFFFFA
	MasterSATSector  uint32 = 0xFFFFFFFC
	SATSector        uint32 = 0xFFFFFFFD
	EndOfChain       uint32 = 0xFFFFFFFE
	FreeSector       uint32 = 0xFFFFFFFF

	// NoStream marks an absent sibling or child link.
	NoStream uint32 = 0xFFFFFFFF
)

const (
	headerSize          = 512
	headerSATEntries    = 109
	minorVersion        = 0x003E
	byteOrderMarker     = 0xFFFE
	miniSectorShift     = 6
	miniStreamCutoff    = 4096
	directoryEntrySize  = 128
	sectorShiftVersion3 = 9
	sectorShiftVersion4 = 12
)

// header is the fixed 512-byte preamble.
type header struct {
	Signature        [8]byte
	CLSID            [16]byte
	MinorVersion     uint16
	MajorVersion     uint16
	ByteOrder        uint16
	SectorShift      uint16
	MiniSectorShift  uint16
	Reserved         [6]byte
	NumDirSectors    uint32
	NumSATSectors    uint32
	FirstDirSector   uint32
	TransactionSig   uint32
	MiniStreamCutoff uint32
	FirstSSATSector  uint32
	NumSSATSectors   uint32
	FirstMSATSector  uint32
	NumMSATSectors   uint32
	SAT              [headerSATEntries]uint32
}

// parseHeader decodes and validates the header. Fields are checked in file
// order so the first offending field is reported.
func parseHeader(b []byte) (*header, error) {
	if len(b) < headerSize || !bytes.Equal(b[:8], Signature) {
		return nil, &DetectError{Field: FieldSignature}
	}

	h := new(header)
	if err := binary.Read(bytes.NewReader(b[:headerSize]), binary.LittleEndian, h); err != nil {
		return nil, &ReadError{Op: "header", Msg: err.Error()}
	}

	if h.MinorVersion != minorVersion {
		return nil, &DetectError{Field: FieldMinorVersion, Value: uint64(h.MinorVersion)}
	}
	if h.MajorVersion != 3 && h.MajorVersion != 4 {
		return nil, &DetectError{Field: FieldMajorVersion, Value: uint64(h.MajorVersion)}
	}
	if h.ByteOrder != byteOrderMarker {
		return nil, &DetectError{Field: FieldByteOrder, Value: uint64(h.ByteOrder)}
	}
	if (h.MajorVersion == 3 && h.SectorShift != sectorShiftVersion3) ||
		(h.MajorVersion == 4 && h.SectorShift != sectorShiftVersion4) {
		return nil, &DetectError{Field: FieldSectorShift, Value: uint64(h.SectorShift)}
	}
	if h.MiniSectorShift != miniSectorShift {
		return nil, &DetectError{Field: FieldMiniSectorShift, Value: uint64(h.MiniSectorShift)}
	}
	if h.MajorVersion == 3 && h.NumDirSectors != 0 {
		return nil, &DetectError{Field: FieldDirectorySectorCount, Value: uint64(h.NumDirSectors)}
	}
	if h.MiniStreamCutoff != miniStreamCutoff {
		return nil, &DetectError{Field: FieldMiniStreamCutoff, Value: uint64(h.MiniStreamCutoff)}
	}
	return h, nil
}

func (h *header) sectorSize() int {
	return 1 << h.SectorShift
}
