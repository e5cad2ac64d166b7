package record

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		header   Header
		wantLen  int
		extended bool
	}{
		{"zero size", Header{Tag: TagParaHeader, Level: 0, Size: 0}, 4, false},
		{"small", Header{Tag: TagParaText, Level: 1, Size: 22}, 4, false},
		{"largest short form", Header{Tag: TagTable, Level: 3, Size: 0xFFE}, 4, false},
		{"forces extended form", Header{Tag: TagParaText, Level: 2, Size: 0xFFF}, 8, true},
		{"large extended", Header{Tag: TagBinData, Level: 0, Size: 1 << 20}, 8, true},
		{"max tag and level", Header{Tag: MaxTag, Level: MaxLevel, Size: 7}, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := tt.header.Encode()
			require.Len(t, encoded, tt.wantLen)

			word := binary.LittleEndian.Uint32(encoded)
			if tt.extended {
				assert.Equal(t, uint32(0xFFF), word>>20)
			}

			got, n, err := DecodeHeader(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, n)
			assert.Equal(t, tt.header, got)
		})
	}
}

func TestHeaderBitLayout(t *testing.T) {
	// tag 66, level 1, size 22
	word := uint32(66) | 1<<10 | 22<<20
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, word)

	h, n, err := DecodeHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, TagParaHeader, h.Tag)
	assert.Equal(t, 1, h.Level)
	assert.Equal(t, uint32(22), h.Size)
}

func TestDecodeHeaderTruncated(t *testing.T) {
	_, _, err := DecodeHeader([]byte{1, 2})
	assert.Error(t, err)

	extended := Header{Tag: TagParaText, Size: 0x1000}.Encode()
	_, _, err = DecodeHeader(extended[:6])
	assert.Error(t, err)
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "PARA_HEADER", TagParaHeader.String())
	assert.Equal(t, "SHAPE_COMPONENT_CONTAINER", TagShapeComponentContainer.String())
	assert.Equal(t, "TAG_1000", Tag(1000).String())
}
