package reader

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/hwp/cfb"
	"github.com/tsawler/hwp/decoder"
	"github.com/tsawler/hwp/internal/filters"
	"github.com/tsawler/hwp/model"
)

// Stream and storage names.
const (
	StreamFileHeader = "FileHeader"
	StreamDocInfo    = "DocInfo"
	StorageBodyText  = "BodyText"
	StorageViewText  = "ViewText"
	StorageBinData   = "BinData"

	sectionPrefix = "Section"
)

// ErrNoBinData is returned for an unknown BinData id.
var ErrNoBinData = errors.New("no such BinData item")

// Options configures a Reader. The zero value is valid.
type Options struct {
	// Logger is the optional logger for debug output.
	Logger *slog.Logger

	// MaxDepth bounds section nesting; see decoder.Options.
	MaxDepth int
}

// Reader represents an opened HWP document
type Reader struct {
	file      *os.File
	container *cfb.Container
	header    *model.FileHeader
	docInfo   *model.DocInfo
	sections  []*model.Section
	opts      Options
}

// Open opens an HWP file and decodes it
func Open(filename string) (*Reader, error) {
	return OpenWithOptions(filename, Options{})
}

// OpenWithOptions opens an HWP file with the given options
func OpenWithOptions(filename string, opts Options) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	r, err := NewReader(file, info.Size(), opts)
	if err != nil {
		file.Close()
		return nil, err
	}
	r.file = file
	return r, nil
}

// NewReader decodes the document held by src. src must stay readable for
// as long as BinData is accessed.
func NewReader(src io.ReaderAt, size int64, opts Options) (*Reader, error) {
	container, err := cfb.Open(src, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open container: %w", err)
	}

	r := &Reader{container: container, opts: opts}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Close closes the underlying file, if the Reader opened it
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

func (r *Reader) decoderOptions() decoder.Options {
	return decoder.Options{Logger: r.opts.Logger, MaxDepth: r.opts.MaxDepth}
}

// debugLog logs a debug message if logging is enabled.
func (r *Reader) debugLog(msg string, args ...any) {
	if r.opts.Logger != nil {
		r.opts.Logger.Debug(msg, args...)
	}
}

func (r *Reader) load() error {
	data, err := r.container.ReadStream(StreamFileHeader)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", StreamFileHeader, err)
	}
	header, err := decoder.ParseFileHeader(data)
	if err != nil {
		return err
	}
	if header.PasswordProtected() {
		return &decoder.NotImplementedError{Feature: "password-protected document"}
	}
	r.header = header
	r.debugLog("opened document", "version", header.Version.String(), "flags", header.Flags.Names())

	data, err = r.container.ReadStream(StreamDocInfo)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", StreamDocInfo, err)
	}
	if data, err = r.decode(data, false); err != nil {
		return fmt.Errorf("%s: %w", StreamDocInfo, err)
	}
	if r.docInfo, err = decoder.ParseDocInfo(data, header.Version, r.decoderOptions()); err != nil {
		return fmt.Errorf("%s: %w", StreamDocInfo, err)
	}

	storage := StorageBodyText
	if header.Distributable() {
		storage = StorageViewText
	}
	entries, err := r.sectionEntries(storage)
	if err != nil {
		return err
	}

	for _, se := range entries {
		path := storage + "/" + se.entry.Name
		data, err := r.container.Read(se.entry)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if data, err = r.decode(data, header.Distributable()); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		sec, err := decoder.ParseSection(data, header.Version, r.decoderOptions())
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		sec.Index = se.index
		r.sections = append(r.sections, sec)
		r.debugLog("decoded section", "path", path, "paragraphs", len(sec.Paragraphs),
			"controls", len(sec.Controls), "skipped", len(sec.Skipped))
	}
	return nil
}

// decode undoes distribution encryption and compression.
func (r *Reader) decode(data []byte, distributed bool) ([]byte, error) {
	var err error
	if distributed {
		if data, err = filters.DecryptDistributed(data); err != nil {
			return nil, err
		}
	}
	if r.header.Compressed() {
		if data, err = filters.InflateRaw(data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

type sectionEntry struct {
	index int
	entry *cfb.Entry
}

// sectionEntries lists SectionN streams of storage ordered by N.
func (r *Reader) sectionEntries(storage string) ([]sectionEntry, error) {
	children, err := r.container.ChildrenOf(storage)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", storage, err)
	}

	var out []sectionEntry
	for _, e := range children {
		name := strings.TrimSpace(e.Name)
		if !e.IsStream() || !strings.HasPrefix(name, sectionPrefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(name, sectionPrefix))
		if err != nil || n < 0 {
			continue
		}
		out = append(out, sectionEntry{index: n, entry: e})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s has no sections", storage)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].index < out[j].index })
	return out, nil
}

// Header returns the decoded FileHeader
func (r *Reader) Header() *model.FileHeader {
	return r.header
}

// Version returns the document format version
func (r *Reader) Version() model.Version {
	return r.header.Version
}

// DocInfo returns the document-wide resources
func (r *Reader) DocInfo() *model.DocInfo {
	return r.docInfo
}

// Sections returns the decoded sections in order
func (r *Reader) Sections() []*model.Section {
	return r.sections
}

// SectionCount returns the number of sections
func (r *Reader) SectionCount() int {
	return len(r.sections)
}

// Section returns a section by index (0-based)
func (r *Reader) Section(i int) (*model.Section, error) {
	if i < 0 || i >= len(r.sections) {
		return nil, fmt.Errorf("section index %d out of range [0, %d)", i, len(r.sections))
	}
	return r.sections[i], nil
}

// Document bundles the decoded parts into a model.Document
func (r *Reader) Document() *model.Document {
	return &model.Document{
		Header:   *r.header,
		DocInfo:  r.docInfo,
		Sections: r.sections,
	}
}

// Container exposes the underlying compound container
func (r *Reader) Container() *cfb.Container {
	return r.container
}

// BinDataPath returns the container path of an embedded BinData item
func BinDataPath(item *model.BinDataItem) string {
	return fmt.Sprintf("%s/BIN%04X.%s", StorageBinData, item.StorageID, item.Extension)
}

// BinData returns the bytes of the BinData item with the given id,
// inflated if the item is stored compressed.
func (r *Reader) BinData(id uint16) ([]byte, error) {
	item, ok := r.docInfo.BinData[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNoBinData, id)
	}
	switch item.Type {
	case model.BinDataEmbedding:
	case model.BinDataLink:
		return nil, &decoder.NotImplementedError{Feature: fmt.Sprintf("linked BinData %d (%s)", id, item.AbsolutePath)}
	default:
		return nil, &decoder.NotImplementedError{Feature: fmt.Sprintf("BinData %d of type %s", id, item.Type)}
	}

	path := BinDataPath(item)
	data, err := r.container.ReadStream(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if item.Compressed(r.header.Compressed()) {
		if data, err = filters.InflateRaw(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return data, nil
}

// DecodedStream reads the stream at path and undoes the encoding the
// document applies to it: DocInfo and body-text sections are inflated when
// the document is compressed, ViewText sections are decrypted first, and
// BinData streams follow their item's compression policy. Other streams
// are returned as stored.
func (r *Reader) DecodedStream(path string) ([]byte, error) {
	e, err := r.container.Entry(path)
	if err != nil {
		return nil, err
	}
	data, err := r.container.Read(e)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	dir, name, _ := strings.Cut(strings.Trim(path, "/"), "/")
	switch {
	case dir == StreamDocInfo && name == "":
		data, err = r.decode(data, false)
	case dir == StorageBodyText:
		data, err = r.decode(data, false)
	case dir == StorageViewText:
		data, err = r.decode(data, true)
	case dir == StorageBinData:
		for _, item := range r.docInfo.BinData {
			if item.Type == model.BinDataEmbedding && BinDataPath(item) == StorageBinData+"/"+name {
				if item.Compressed(r.header.Compressed()) {
					data, err = filters.InflateRaw(data)
				}
				break
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}
