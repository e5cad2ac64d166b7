package filters

import (
	"bytes"
	"compress/flate"
	"errors"
	"fmt"
	"io"
)

// ErrDecompression is wrapped by every InflateRaw failure.
var ErrDecompression = errors.New("decompression failed")

// InflateRaw decompresses raw DEFLATE data. Trailing bytes after the final
// block are ignored; a stream that ends before its final block is an error.
func InflateRaw(data []byte) ([]byte, error) {
	reader := flate.NewReader(bytes.NewReader(data))
	defer reader.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	return buf.Bytes(), nil
}
