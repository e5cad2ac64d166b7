package cfb

import (
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// EntryKind is the object type of a directory entry.
type EntryKind uint8

// Directory entry kinds.
const (
	KindEmpty   EntryKind = 0
	KindStorage EntryKind = 1
	KindStream  EntryKind = 2
	KindRoot    EntryKind = 5
)

func (k EntryKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindStorage:
		return "storage"
	case KindStream:
		return "stream"
	case KindRoot:
		return "root"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Entry is one node of the container's directory.
type Entry struct {
	ID          int
	Name        string
	Kind        EntryKind
	Left        uint32
	Right       uint32
	Child       uint32
	StartSector uint32
	Size        uint64

	children []*Entry
	extent   []uint32 // resolved sector (or mini sector) ids
	mini     bool
}

// IsStorage reports whether the entry can have children.
func (e *Entry) IsStorage() bool {
	return e.Kind == KindStorage || e.Kind == KindRoot
}

// IsStream reports whether the entry holds stream data.
func (e *Entry) IsStream() bool {
	return e.Kind == KindStream
}

// InMiniStream reports whether the stream data lives in mini sectors.
func (e *Entry) InMiniStream() bool {
	return e.mini
}

var nameDecoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// parseEntry decodes a 128-byte directory entry.
func parseEntry(id int, b []byte, majorVersion uint16) (*Entry, error) {
	nameLen := int(binary.LittleEndian.Uint16(b[64:]))
	if nameLen > 64 {
		return nil, &ReadError{Op: "directory", Msg: fmt.Sprintf("entry %d name length %d exceeds 64 bytes", id, nameLen)}
	}
	if nameLen%2 != 0 {
		nameLen--
	}
	raw, err := nameDecoder.NewDecoder().Bytes(b[:nameLen])
	if err != nil {
		return nil, &ReadError{Op: "directory", Msg: fmt.Sprintf("entry %d name: %v", id, err)}
	}

	e := &Entry{
		ID:          id,
		Name:        strings.TrimRight(string(raw), "\x00"),
		Kind:        EntryKind(b[66]),
		Left:        binary.LittleEndian.Uint32(b[68:]),
		Right:       binary.LittleEndian.Uint32(b[72:]),
		Child:       binary.LittleEndian.Uint32(b[76:]),
		StartSector: binary.LittleEndian.Uint32(b[116:]),
	}
	if majorVersion == 3 {
		// Version 3 files may carry garbage in the high word.
		e.Size = uint64(binary.LittleEndian.Uint32(b[120:]))
	} else {
		e.Size = binary.LittleEndian.Uint64(b[120:])
	}

	switch e.Kind {
	case KindEmpty, KindStorage, KindStream, KindRoot:
	default:
		return nil, &ReadError{Op: "directory", Msg: fmt.Sprintf("entry %d has unknown kind %d", id, e.Kind)}
	}
	return e, nil
}

// buildTree flattens each storage's sibling tree into an ordered child list.
// The walk is iterative and tracks visited ids, so cyclic or shared links in
// malformed files are visited at most once.
func buildTree(entries []*Entry) {
	visited := make([]bool, len(entries))
	visited[0] = true

	queue := []*Entry{entries[0]}
	for len(queue) > 0 {
		storage := queue[0]
		queue = queue[1:]

		// In-order walk: left subtree, node, right subtree.
		var stack []*Entry
		id := storage.Child
		for {
			for id != NoStream && int(id) < len(entries) && !visited[id] {
				e := entries[id]
				visited[id] = true
				stack = append(stack, e)
				id = e.Left
			}
			if len(stack) == 0 {
				break
			}
			e := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if e.Kind != KindEmpty {
				storage.children = append(storage.children, e)
				if e.IsStorage() {
					queue = append(queue, e)
				}
			}
			id = e.Right
		}
	}
}
