package cfb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/hwp/internal/hwptest"
)

func pattern(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i*7)
	}
	return b
}

func TestOpenSingleStream(t *testing.T) {
	want := pattern(256, 3)
	data := hwptest.NewCompound().Add("FileHeader", want).Bytes()

	c, err := OpenBytes(data)
	require.NoError(t, err)

	assert.Equal(t, 3, c.MajorVersion())
	assert.Equal(t, 512, c.SectorSize())
	assert.Equal(t, 64, c.MiniSectorSize())
	assert.Equal(t, "Root Entry", c.Root().Name)
	assert.Equal(t, KindRoot, c.Root().Kind)

	got, err := c.ReadStream("FileHeader")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	e, err := c.Entry("FileHeader")
	require.NoError(t, err)
	assert.True(t, e.InMiniStream())
	assert.Equal(t, uint32(0), e.StartSector)
}

func TestOpenStoragesAndLargeStreams(t *testing.T) {
	small := pattern(100, 1)
	large := pattern(9000, 2)
	exact := pattern(4096, 5)

	data := hwptest.NewCompound().
		Add("FileHeader", pattern(256, 9)).
		Add("DocInfo", small).
		Add("BodyText/Section0", large).
		Add("BodyText/Section1", exact).
		Add("BinData/BIN0001.png", small).
		Bytes()

	c, err := OpenBytes(data)
	require.NoError(t, err)

	children, err := c.ChildrenOf("BodyText")
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "Section0", children[0].Name)
	assert.Equal(t, "Section1", children[1].Name)

	got, err := c.Read(children[0])
	require.NoError(t, err)
	assert.Equal(t, large, got)
	assert.False(t, children[0].InMiniStream())

	got, err = c.ReadStream("BodyText/Section1")
	require.NoError(t, err)
	assert.Equal(t, exact, got)

	got, err = c.ReadStream("/BinData/BIN0001.png")
	require.NoError(t, err)
	assert.Equal(t, small, got)

	rootChildren := c.Children(c.Root())
	names := make([]string, len(rootChildren))
	for i, e := range rootChildren {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"FileHeader", "DocInfo", "BodyText", "BinData"}, names)
}

func TestOpenMasterSATChain(t *testing.T) {
	want := pattern(5000, 4)
	data := hwptest.NewCompound().UseMasterSAT().Add("Stream", want).Bytes()

	c, err := OpenBytes(data)
	require.NoError(t, err)
	require.Len(t, c.SATSectors(), 1)

	got, err := c.ReadStream("Stream")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEntryNotFound(t *testing.T) {
	c, err := OpenBytes(hwptest.NewCompound().Add("FileHeader", pattern(256, 0)).Bytes())
	require.NoError(t, err)

	_, err = c.Entry("DocInfo")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.ChildrenOf("FileHeader")
	assert.Error(t, err)
}

func TestHeaderValidation(t *testing.T) {
	base := hwptest.NewCompound().Add("FileHeader", pattern(256, 0)).Bytes()

	patch16 := func(off int, v uint16) []byte {
		b := bytes.Clone(base)
		binary.LittleEndian.PutUint16(b[off:], v)
		return b
	}
	patch32 := func(off int, v uint32) []byte {
		b := bytes.Clone(base)
		binary.LittleEndian.PutUint32(b[off:], v)
		return b
	}

	tests := []struct {
		name  string
		data  []byte
		field string
	}{
		{"minor version", patch16(24, 0x3B), FieldMinorVersion},
		{"major version", patch16(26, 5), FieldMajorVersion},
		{"byte order", patch16(28, 0xFEFF), FieldByteOrder},
		{"sector shift for v3", patch16(30, 12), FieldSectorShift},
		{"mini sector shift", patch16(32, 7), FieldMiniSectorShift},
		{"directory sector count for v3", patch32(40, 1), FieldDirectorySectorCount},
		{"mini stream cutoff", patch32(56, 2048), FieldMiniStreamCutoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := OpenBytes(tt.data)
			assert.Nil(t, c)
			var de *DetectError
			require.True(t, errors.As(err, &de), "got %v", err)
			assert.Equal(t, tt.field, de.Field)
		})
	}
}

func TestVersionShiftCombinations(t *testing.T) {
	for major := uint16(2); major <= 5; major++ {
		for _, shift := range []uint16{8, 9, 12, 13} {
			for _, miniShift := range []uint16{5, 6, 7} {
				h := make([]byte, headerSize)
				copy(h, Signature)
				binary.LittleEndian.PutUint16(h[24:], minorVersion)
				binary.LittleEndian.PutUint16(h[26:], major)
				binary.LittleEndian.PutUint16(h[28:], byteOrderMarker)
				binary.LittleEndian.PutUint16(h[30:], shift)
				binary.LittleEndian.PutUint16(h[32:], miniShift)
				binary.LittleEndian.PutUint32(h[56:], miniStreamCutoff)

				_, err := parseHeader(h)
				valid := miniShift == 6 && ((major == 3 && shift == 9) || (major == 4 && shift == 12))
				if valid {
					assert.NoError(t, err, "major=%d shift=%d mini=%d", major, shift, miniShift)
					continue
				}

				var de *DetectError
				require.True(t, errors.As(err, &de), "major=%d shift=%d mini=%d", major, shift, miniShift)
				switch {
				case major != 3 && major != 4:
					assert.Equal(t, FieldMajorVersion, de.Field)
				case (major == 3 && shift != 9) || (major == 4 && shift != 12):
					assert.Equal(t, FieldSectorShift, de.Field)
				default:
					assert.Equal(t, FieldMiniSectorShift, de.Field)
				}
			}
		}
	}
}

func TestSignatureMismatch(t *testing.T) {
	_, err := OpenBytes([]byte("PK\x03\x04 definitely not a compound file"))
	assert.ErrorIs(t, err, ErrSignatureMismatch)

	data := hwptest.NewCompound().Add("FileHeader", pattern(256, 0)).Bytes()
	data[0] = 0
	_, err = OpenBytes(data)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestOutOfRangeDirectorySector(t *testing.T) {
	data := hwptest.NewCompound().Add("FileHeader", pattern(256, 0)).Bytes()
	binary.LittleEndian.PutUint32(data[48:], 0x1000)

	c, err := OpenBytes(data)
	assert.Nil(t, c)
	var re *ReadError
	require.True(t, errors.As(err, &re), "got %v", err)
	assert.Equal(t, "directory", re.Op)
}

func TestCyclicChainFails(t *testing.T) {
	data := hwptest.NewCompound().Add("Big", pattern(5000, 1)).Bytes()

	c, err := OpenBytes(data)
	require.NoError(t, err)
	e, err := c.Entry("Big")
	require.NoError(t, err)

	// Point the stream's first SAT entry back at itself.
	fatSector := c.SATSectors()[0]
	off := int(fatSector+1)*512 + int(e.StartSector)*4
	binary.LittleEndian.PutUint32(data[off:], e.StartSector)

	_, err = OpenBytes(data)
	var re *ReadError
	require.True(t, errors.As(err, &re), "got %v", err)
	assert.Contains(t, re.Error(), "does not terminate")
}

func TestFreeSectorMidChain(t *testing.T) {
	data := hwptest.NewCompound().Add("Big", pattern(5000, 1)).Bytes()
	c, err := OpenBytes(data)
	require.NoError(t, err)
	e, err := c.Entry("Big")
	require.NoError(t, err)

	fatSector := c.SATSectors()[0]
	off := int(fatSector+1)*512 + int(e.StartSector+1)*4
	binary.LittleEndian.PutUint32(data[off:], FreeSector)

	_, err = OpenBytes(data)
	var re *ReadError
	require.True(t, errors.As(err, &re), "got %v", err)
	assert.Contains(t, re.Error(), "unallocated")
}

func TestBuildTreeToleratesCycles(t *testing.T) {
	entries := []*Entry{
		{ID: 0, Name: "Root Entry", Kind: KindRoot, Left: NoStream, Right: NoStream, Child: 1},
		{ID: 1, Name: "B", Kind: KindStream, Left: 2, Right: 3, Child: NoStream},
		{ID: 2, Name: "A", Kind: KindStream, Left: NoStream, Right: 1, Child: NoStream},
		{ID: 3, Name: "C", Kind: KindStorage, Left: 1, Right: NoStream, Child: 3},
	}
	buildTree(entries)

	var names []string
	for _, e := range entries[0].children {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
	assert.Empty(t, entries[3].children)
}
