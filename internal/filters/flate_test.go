package filters

import (
	"bytes"
	"compress/flate"
	"errors"
	"testing"
)

// deflateRaw compresses data for testing
func deflateRaw(data []byte) []byte {
	var buf bytes.Buffer
	w, _ := flate.NewWriter(&buf, flate.DefaultCompression)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

// TestInflateRawBasic tests basic raw deflate decompression
func TestInflateRawBasic(t *testing.T) {
	original := []byte("Hello, World! This is test data for InflateRaw.")

	decoded, err := InflateRaw(deflateRaw(original))
	if err != nil {
		t.Fatalf("InflateRaw failed: %v", err)
	}

	if !bytes.Equal(decoded, original) {
		t.Errorf("decoded data doesn't match original\ngot:  %s\nwant: %s", decoded, original)
	}
}

// TestInflateRawEmpty tests an empty compressed stream
func TestInflateRawEmpty(t *testing.T) {
	decoded, err := InflateRaw(deflateRaw(nil))
	if err != nil {
		t.Fatalf("InflateRaw failed: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("expected empty output, got %d bytes", len(decoded))
	}
}

// TestInflateRawTrailingBytes tests that bytes after the final block are ignored
func TestInflateRawTrailingBytes(t *testing.T) {
	original := bytes.Repeat([]byte("section "), 100)
	compressed := append(deflateRaw(original), 0, 0, 0, 0, 0, 0, 0, 0)

	decoded, err := InflateRaw(compressed)
	if err != nil {
		t.Fatalf("InflateRaw failed: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("decoded data doesn't match original")
	}
}

// TestInflateRawTruncated tests that a cut-off stream is a decompression error
func TestInflateRawTruncated(t *testing.T) {
	original := bytes.Repeat([]byte("0123456789abcdef"), 256)
	compressed := deflateRaw(original)

	_, err := InflateRaw(compressed[:len(compressed)/2])
	if err == nil {
		t.Fatal("expected error for truncated stream")
	}
	if !errors.Is(err, ErrDecompression) {
		t.Errorf("expected ErrDecompression, got %v", err)
	}
}

// TestInflateRawZlibFramed tests that zlib framing is rejected
func TestInflateRawZlibFramed(t *testing.T) {
	// zlib header 0x78 0x9C followed by garbage is not valid raw deflate
	_, err := InflateRaw([]byte{0x78, 0x9C, 0xFF, 0xFF, 0xFF, 0xFF})
	if !errors.Is(err, ErrDecompression) {
		t.Errorf("expected ErrDecompression, got %v", err)
	}
}
