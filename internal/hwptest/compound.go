// Package hwptest builds synthetic compound files and HWP record streams for
// tests. Nothing in here is used outside _test.go files.
package hwptest

import (
	"encoding/binary"
	"strings"
	"unicode/utf16"
)

const (
	sectorSize     = 512
	miniSectorSize = 64
	miniCutoff     = 4096
	idsPerSector   = sectorSize / 4

	endOfChain = 0xFFFFFFFE
	freeSector = 0xFFFFFFFF
	satMarker  = 0xFFFFFFFD
	msatMarker = 0xFFFFFFFC
	noStream   = 0xFFFFFFFF
)

// Compound assembles a version 3 (512-byte sector) compound file.
type Compound struct {
	root      *node
	masterSAT bool
}

type node struct {
	name     string
	kind     byte
	data     []byte
	children []*node

	id    int
	start uint32
}

// NewCompound creates an empty compound file with a root storage.
func NewCompound() *Compound {
	return &Compound{root: &node{name: "Root Entry", kind: 5}}
}

// Add stores data as a stream at path, creating intermediate storages.
func (c *Compound) Add(path string, data []byte) *Compound {
	parts := strings.Split(path, "/")
	parent := c.root
	for _, name := range parts[:len(parts)-1] {
		var next *node
		for _, child := range parent.children {
			if child.name == name && child.kind == 1 {
				next = child
				break
			}
		}
		if next == nil {
			next = &node{name: name, kind: 1}
			parent.children = append(parent.children, next)
		}
		parent = next
	}
	parent.children = append(parent.children, &node{name: parts[len(parts)-1], kind: 2, data: data})
	return c
}

// UseMasterSAT places the SAT sector ids in a master-SAT sector instead of
// the header.
func (c *Compound) UseMasterSAT() *Compound {
	c.masterSAT = true
	return c
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Bytes lays out and serializes the compound file.
func (c *Compound) Bytes() []byte {
	var nodes []*node
	var walk func(n *node)
	walk = func(n *node) {
		n.id = len(nodes)
		nodes = append(nodes, n)
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(c.root)

	// Mini stream and mini-SAT.
	var mini []byte
	var ssat []uint32
	var big []*node
	for _, n := range nodes {
		if n.kind != 2 {
			continue
		}
		if len(n.data) >= miniCutoff {
			big = append(big, n)
			continue
		}
		if len(n.data) == 0 {
			n.start = endOfChain
			continue
		}
		n.start = uint32(len(ssat))
		count := ceilDiv(len(n.data), miniSectorSize)
		for i := 0; i < count; i++ {
			next := uint32(len(ssat) + 1)
			if i == count-1 {
				next = endOfChain
			}
			ssat = append(ssat, next)
		}
		padded := make([]byte, count*miniSectorSize)
		copy(padded, n.data)
		mini = append(mini, padded...)
	}

	nDir := ceilDiv(len(nodes), sectorSize/128)
	nSSAT := ceilDiv(len(ssat)*4, sectorSize)
	nMini := ceilDiv(len(mini), sectorSize)
	nBig := 0
	for _, n := range big {
		nBig += ceilDiv(len(n.data), sectorSize)
	}
	nMSAT := 0
	if c.masterSAT {
		nMSAT = 1
	}
	nFAT := 1
	for {
		need := ceilDiv(nFAT+nMSAT+nDir+nSSAT+nMini+nBig, idsPerSector)
		if need <= nFAT {
			break
		}
		nFAT = need
	}

	fat := make([]uint32, nFAT*idsPerSector)
	for i := range fat {
		fat[i] = freeSector
	}
	next := 0
	alloc := func(count int, marker uint32) uint32 {
		if count == 0 {
			return endOfChain
		}
		start := next
		for i := 0; i < count; i++ {
			switch {
			case marker != 0:
				fat[next] = marker
			case i == count-1:
				fat[next] = endOfChain
			default:
				fat[next] = uint32(next + 1)
			}
			next++
		}
		return uint32(start)
	}

	fatStart := alloc(nFAT, satMarker)
	msatStart := alloc(nMSAT, msatMarker)
	dirStart := alloc(nDir, 0)
	ssatStart := alloc(nSSAT, 0)
	miniStart := alloc(nMini, 0)
	for _, n := range big {
		n.start = alloc(ceilDiv(len(n.data), sectorSize), 0)
	}

	sectors := make([]byte, next*sectorSize)
	sector := func(id uint32) []byte {
		return sectors[int(id)*sectorSize : int(id+1)*sectorSize]
	}
	putIDs := func(dst []byte, ids []uint32) {
		for i, id := range ids {
			binary.LittleEndian.PutUint32(dst[i*4:], id)
		}
	}

	for i := 0; i < nFAT; i++ {
		putIDs(sector(fatStart+uint32(i)), fat[i*idsPerSector:(i+1)*idsPerSector])
	}

	header := make([]byte, sectorSize)
	copy(header, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	binary.LittleEndian.PutUint16(header[24:], 0x3E)
	binary.LittleEndian.PutUint16(header[26:], 3)
	binary.LittleEndian.PutUint16(header[28:], 0xFFFE)
	binary.LittleEndian.PutUint16(header[30:], 9)
	binary.LittleEndian.PutUint16(header[32:], 6)
	binary.LittleEndian.PutUint32(header[44:], uint32(nFAT))
	binary.LittleEndian.PutUint32(header[48:], dirStart)
	binary.LittleEndian.PutUint32(header[56:], miniCutoff)
	binary.LittleEndian.PutUint32(header[60:], ssatStart)
	binary.LittleEndian.PutUint32(header[64:], uint32(nSSAT))
	binary.LittleEndian.PutUint32(header[68:], msatStart)
	binary.LittleEndian.PutUint32(header[72:], uint32(nMSAT))
	difat := make([]uint32, 109)
	for i := range difat {
		difat[i] = freeSector
	}
	satIDs := make([]uint32, nFAT)
	for i := range satIDs {
		satIDs[i] = fatStart + uint32(i)
	}
	if c.masterSAT {
		ids := make([]uint32, idsPerSector)
		for i := range ids {
			ids[i] = freeSector
		}
		copy(ids, satIDs)
		ids[idsPerSector-1] = endOfChain
		putIDs(sector(msatStart), ids)
	} else {
		copy(difat, satIDs)
	}
	putIDs(header[76:], difat)

	// Directory.
	dir := make([]byte, nDir*sectorSize)
	for i := len(nodes); i < nDir*(sectorSize/128); i++ {
		e := dir[i*128 : (i+1)*128]
		binary.LittleEndian.PutUint32(e[68:], noStream)
		binary.LittleEndian.PutUint32(e[72:], noStream)
		binary.LittleEndian.PutUint32(e[76:], noStream)
	}
	c.root.start = miniStart
	c.root.data = mini
	for _, n := range nodes {
		e := dir[n.id*128 : (n.id+1)*128]
		units := utf16.Encode([]rune(n.name))
		for i, u := range units {
			binary.LittleEndian.PutUint16(e[i*2:], u)
		}
		binary.LittleEndian.PutUint16(e[64:], uint16((len(units)+1)*2))
		e[66] = n.kind
		e[67] = 1
		binary.LittleEndian.PutUint32(e[68:], noStream)
		binary.LittleEndian.PutUint32(e[72:], noStream)
		binary.LittleEndian.PutUint32(e[76:], noStream)
		if len(n.children) > 0 {
			binary.LittleEndian.PutUint32(e[76:], uint32(n.children[0].id))
		}
		if n.kind == 1 {
			continue
		}
		binary.LittleEndian.PutUint32(e[116:], n.start)
		binary.LittleEndian.PutUint32(e[120:], uint32(len(n.data)))
	}
	// Siblings are chained through right links, which an in-order walk
	// visits in insertion order.
	for _, n := range nodes {
		for i := 0; i+1 < len(n.children); i++ {
			e := dir[n.children[i].id*128:]
			binary.LittleEndian.PutUint32(e[72:], uint32(n.children[i+1].id))
		}
	}
	copy(sectors[int(dirStart)*sectorSize:], dir)

	if nSSAT > 0 {
		buf := make([]byte, nSSAT*sectorSize)
		for i := range buf {
			buf[i] = 0xFF
		}
		putIDs(buf, ssat)
		copy(sectors[int(ssatStart)*sectorSize:], buf)
	}
	if nMini > 0 {
		copy(sectors[int(miniStart)*sectorSize:], mini)
	}
	for _, n := range big {
		copy(sectors[int(n.start)*sectorSize:], n.data)
	}

	return append(header, sectors...)
}
