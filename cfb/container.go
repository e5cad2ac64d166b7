package cfb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// Container is an opened compound file. It is immutable after Open returns
// and safe for concurrent reads if the underlying io.ReaderAt is.
type Container struct {
	src  io.ReaderAt
	size int64

	hdr            *header
	sectorSize     int
	miniSectorSize int
	numSectors     int

	satSectors []uint32 // sector ids holding the SAT
	sat        []uint32 // next-sector table
	ssat       []uint32 // next-mini-sector table
	miniStream []uint32 // root entry chain backing the mini sectors

	entries []*Entry
	root    *Entry
}

// OpenBytes opens a container held in memory.
func OpenBytes(data []byte) (*Container, error) {
	return Open(bytes.NewReader(data), int64(len(data)))
}

// Open parses the container header, allocation tables and directory, and
// resolves every stream's sector extent. Any structural error aborts the
// open; no partial container is returned.
func Open(r io.ReaderAt, size int64) (*Container, error) {
	buf := make([]byte, headerSize)
	n, err := r.ReadAt(buf, 0)
	if n < headerSize {
		if n < len(Signature) || !bytes.Equal(buf[:len(Signature)], Signature) {
			return nil, &DetectError{Field: FieldSignature}
		}
		return nil, &ReadError{Op: "header", Msg: fmt.Sprintf("file too short (%d bytes): %v", n, err)}
	}

	hdr, err := parseHeader(buf)
	if err != nil {
		return nil, err
	}

	c := &Container{
		src:            r,
		size:           size,
		hdr:            hdr,
		sectorSize:     hdr.sectorSize(),
		miniSectorSize: 1 << hdr.MiniSectorShift,
	}
	c.numSectors = int((size+int64(c.sectorSize)-1)/int64(c.sectorSize)) - 1
	if c.numSectors < 0 {
		c.numSectors = 0
	}

	if err := c.loadSAT(); err != nil {
		return nil, err
	}
	if err := c.loadDirectory(); err != nil {
		return nil, err
	}
	if err := c.loadSSAT(); err != nil {
		return nil, err
	}
	if err := c.resolveExtents(); err != nil {
		return nil, err
	}
	return c, nil
}

// MajorVersion returns the container format version (3 or 4).
func (c *Container) MajorVersion() int {
	return int(c.hdr.MajorVersion)
}

// SectorSize returns the sector size in bytes (512 or 4096).
func (c *Container) SectorSize() int {
	return c.sectorSize
}

// MiniSectorSize returns the mini sector size in bytes.
func (c *Container) MiniSectorSize() int {
	return c.miniSectorSize
}

// SATSectors returns the ids of the sectors holding the SAT.
func (c *Container) SATSectors() []uint32 {
	return append([]uint32(nil), c.satSectors...)
}

// Root returns the root storage entry.
func (c *Container) Root() *Entry {
	return c.root
}

// Entries returns every live directory entry in id order.
func (c *Container) Entries() []*Entry {
	out := make([]*Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if e != nil && e.Kind != KindEmpty {
			out = append(out, e)
		}
	}
	return out
}

// Entry returns the entry at path. Path components are separated by "/" and
// compared exactly after trimming surrounding whitespace; the root entry is
// implied.
func (c *Container) Entry(path string) (*Entry, error) {
	node := c.root
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var next *Entry
		for _, child := range node.children {
			if strings.TrimSpace(child.Name) == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		node = next
	}
	return node, nil
}

// Children returns the ordered children of a storage entry.
func (c *Container) Children(e *Entry) []*Entry {
	return append([]*Entry(nil), e.children...)
}

// ChildrenOf returns the ordered children of the storage at path.
func (c *Container) ChildrenOf(path string) ([]*Entry, error) {
	e, err := c.Entry(path)
	if err != nil {
		return nil, err
	}
	if !e.IsStorage() {
		return nil, fmt.Errorf("cfb: %s is not a storage", path)
	}
	return c.Children(e), nil
}

// ReadStream returns the contents of the stream at path.
func (c *Container) ReadStream(path string) ([]byte, error) {
	e, err := c.Entry(path)
	if err != nil {
		return nil, err
	}
	return c.Read(e)
}

// Read returns the full contents of a stream entry, clipped to its declared
// size.
func (c *Container) Read(e *Entry) ([]byte, error) {
	if !e.IsStream() {
		return nil, fmt.Errorf("cfb: %s is not a stream", e.Name)
	}
	out := make([]byte, 0, e.Size)
	remaining := int(e.Size)
	unit := c.sectorSize
	if e.mini {
		unit = c.miniSectorSize
	}

	for _, id := range e.extent {
		if remaining == 0 {
			break
		}
		n := unit
		if remaining < n {
			n = remaining
		}
		var off int64
		if e.mini {
			off = c.miniSectorOffset(id)
		} else {
			off = c.sectorOffset(id)
		}
		chunk := make([]byte, n)
		if err := c.readAt(chunk, off, "stream "+e.Name, id); err != nil {
			return nil, err
		}
		out = append(out, chunk...)
		remaining -= n
	}
	if remaining != 0 {
		return nil, &ReadError{Op: "stream " + e.Name, Sector: e.StartSector, Msg: "extent shorter than declared size"}
	}
	return out, nil
}

func (c *Container) sectorOffset(id uint32) int64 {
	return int64(id+1) * int64(c.sectorSize)
}

// miniSectorOffset maps a mini sector index to its file offset through the
// root entry's sector chain. Extents are validated in resolveExtents, so the
// index is always in range here.
func (c *Container) miniSectorOffset(id uint32) int64 {
	pos := int64(id) * int64(c.miniSectorSize)
	backing := c.miniStream[pos/int64(c.sectorSize)]
	return c.sectorOffset(backing) + pos%int64(c.sectorSize)
}

func (c *Container) readAt(buf []byte, off int64, op string, sector uint32) error {
	n, err := c.src.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return &ReadError{Op: op, Sector: sector, Msg: fmt.Sprintf("short read at offset %d: %v", off, err)}
}

func (c *Container) readSector(id uint32, op string) ([]byte, error) {
	if int(id) >= c.numSectors {
		return nil, &ReadError{Op: op, Sector: id, Msg: fmt.Sprintf("sector id out of range (file has %d sectors)", c.numSectors)}
	}
	buf := make([]byte, c.sectorSize)
	if err := c.readAt(buf, c.sectorOffset(id), op, id); err != nil {
		return nil, err
	}
	return buf, nil
}

func sectorIDs(b []byte) []uint32 {
	ids := make([]uint32, len(b)/4)
	for i := range ids {
		ids[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return ids
}
