package format

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/tsawler/hwp/internal/hwptest"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{HWP, "HWP"},
		{HWPX, "HWPX"},
		{HWP3, "HWP3"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{HWP, ".hwp"},
		{HWP3, ".hwp"},
		{HWPX, ".hwpx"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Supported(t *testing.T) {
	if !HWP.Supported() {
		t.Error("HWP should be supported")
	}
	for _, f := range []Format{Unknown, HWPX, HWP3} {
		if f.Supported() {
			t.Errorf("%v should not be supported", f)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"document.hwp", HWP},
		{"document.HWP", HWP},
		{"document.Hwp", HWP},
		{"document.hwpx", HWPX},
		{"document.HWPX", HWPX},
		{"/path/to/보고서.hwp", HWP},
		{"document.doc", Unknown},
		{"document", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{
			name: "compound file magic",
			data: []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00},
			want: HWP,
		},
		{
			name: "HWP 3 signature",
			data: []byte("HWP Document File V3.00 \x1a\x01\x02\x03\x04\x05"),
			want: HWP3,
		},
		{
			name: "ZIP magic bytes",
			data: []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00},
			want: Unknown, // ZIP needs further inspection
		},
		{
			name: "truncated compound magic",
			data: []byte{0xD0, 0xCF, 0x11},
			want: Unknown,
		},
		{
			name: "empty data",
			data: []byte{},
			want: Unknown,
		},
		{
			name: "text file",
			data: []byte("Hello, World!"),
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func detect(t *testing.T, data []byte) Format {
	t.Helper()
	format, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	return format
}

func TestDetectFromReader_HWP(t *testing.T) {
	data := hwptest.NewDocument(hwptest.Paragraphs("hello")).Bytes()
	if got := detect(t, data); got != HWP {
		t.Errorf("DetectFromReader() = %v, want HWP", got)
	}
}

func TestDetectFromReader_OtherCompound(t *testing.T) {
	data := hwptest.NewCompound().Add("WordDocument", []byte{1, 2, 3}).Bytes()
	if got := detect(t, data); got != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", got)
	}

	header := hwptest.FileHeader(0x03000000, 0)
	data = hwptest.NewCompound().Add("FileHeader", header).Bytes()
	if got := detect(t, data); got != Unknown {
		t.Errorf("DetectFromReader() with version 3 header = %v, want Unknown", got)
	}
}

func zipWith(t *testing.T, name, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDetectFromReader_HWPX(t *testing.T) {
	if got := detect(t, zipWith(t, "mimetype", HWPXMimeType)); got != HWPX {
		t.Errorf("DetectFromReader() = %v, want HWPX", got)
	}
	if got := detect(t, zipWith(t, "mimetype", "application/epub+zip")); got != Unknown {
		t.Errorf("DetectFromReader() epub = %v, want Unknown", got)
	}
	if got := detect(t, zipWith(t, "word/document.xml", "<w:document/>")); got != Unknown {
		t.Errorf("DetectFromReader() docx = %v, want Unknown", got)
	}
}

func TestDetectFromReader_HWP3(t *testing.T) {
	data := append([]byte("HWP Document File V3.00 \x1a\x01\x02\x03\x04\x05"), make([]byte, 100)...)
	if got := detect(t, data); got != HWP3 {
		t.Errorf("DetectFromReader() = %v, want HWP3", got)
	}
}

func TestDetectFromReader_Unknown(t *testing.T) {
	if got := detect(t, []byte("Hello, World! This is plain text.")); got != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", got)
	}
}
