package cfb

import "fmt"

// loadSAT collects the SAT sector ids from the header and the master-SAT
// chain, then reads the SAT itself.
func (c *Container) loadSAT() error {
	for _, id := range c.hdr.SAT {
		if id == FreeSector || id == EndOfChain {
			break
		}
		c.satSectors = append(c.satSectors, id)
	}

	perSector := c.sectorSize/4 - 1
	next := c.hdr.FirstMSATSector
	for visited := 0; next != EndOfChain && next != FreeSector; visited++ {
		if visited >= c.numSectors {
			return &ReadError{Op: "master SAT", Sector: next, Msg: "chain does not terminate"}
		}
		buf, err := c.readSector(next, "master SAT")
		if err != nil {
			return err
		}
		ids := sectorIDs(buf)
		for _, id := range ids[:perSector] {
			if id == FreeSector || id == EndOfChain {
				continue
			}
			c.satSectors = append(c.satSectors, id)
		}
		next = ids[perSector]
	}

	if len(c.satSectors) < int(c.hdr.NumSATSectors) {
		return &ReadError{
			Op:  "SAT",
			Msg: fmt.Sprintf("found %d SAT sector ids, header declares %d", len(c.satSectors), c.hdr.NumSATSectors),
		}
	}
	c.satSectors = c.satSectors[:c.hdr.NumSATSectors]

	c.sat = make([]uint32, 0, len(c.satSectors)*c.sectorSize/4)
	for _, id := range c.satSectors {
		buf, err := c.readSector(id, "SAT")
		if err != nil {
			return err
		}
		c.sat = append(c.sat, sectorIDs(buf)...)
	}
	if len(c.sat) > c.numSectors {
		c.sat = c.sat[:c.numSectors]
	}
	return nil
}

// chain walks a sector chain in table starting at start. limit bounds both
// the valid id range and the chain length. A chain that starts with a
// sentinel is empty; a free or reserved id after the start is an error.
func chain(table []uint32, start uint32, limit int, op string) ([]uint32, error) {
	if start == EndOfChain || start == FreeSector {
		return nil, nil
	}
	if limit > len(table) {
		limit = len(table)
	}

	var ids []uint32
	for id := start; id != EndOfChain; id = table[id] {
		if id > MaxRegularSector {
			return nil, &ReadError{Op: op, Sector: id, Msg: "unallocated sector in the middle of a chain"}
		}
		if int(id) >= limit {
			return nil, &ReadError{Op: op, Sector: id, Msg: fmt.Sprintf("sector id out of range (limit %d)", limit)}
		}
		if len(ids) >= limit {
			return nil, &ReadError{Op: op, Sector: start, Msg: "chain does not terminate"}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// loadDirectory reads the directory chain and flattens the storage tree.
func (c *Container) loadDirectory() error {
	sectors, err := chain(c.sat, c.hdr.FirstDirSector, c.numSectors, "directory")
	if err != nil {
		return err
	}
	if len(sectors) == 0 {
		return &ReadError{Op: "directory", Sector: c.hdr.FirstDirSector, Msg: "empty directory chain"}
	}

	perSector := c.sectorSize / directoryEntrySize
	for _, id := range sectors {
		buf, err := c.readSector(id, "directory")
		if err != nil {
			return err
		}
		for i := 0; i < perSector; i++ {
			entryID := len(c.entries)
			e, err := parseEntry(entryID, buf[i*directoryEntrySize:(i+1)*directoryEntrySize], c.hdr.MajorVersion)
			if err != nil {
				return err
			}
			c.entries = append(c.entries, e)
		}
	}

	c.root = c.entries[0]
	if c.root.Kind != KindRoot {
		return &ReadError{Op: "directory", Sector: sectors[0], Msg: fmt.Sprintf("first entry is %s, want root", c.root.Kind)}
	}
	buildTree(c.entries)
	return nil
}

// loadSSAT reads the mini-SAT and the root entry chain that backs the mini
// stream.
func (c *Container) loadSSAT() error {
	sectors, err := chain(c.sat, c.hdr.FirstSSATSector, c.numSectors, "mini SAT")
	if err != nil {
		return err
	}
	for _, id := range sectors {
		buf, err := c.readSector(id, "mini SAT")
		if err != nil {
			return err
		}
		c.ssat = append(c.ssat, sectorIDs(buf)...)
	}

	c.miniStream, err = chain(c.sat, c.root.StartSector, c.numSectors, "mini stream")
	if err != nil {
		return err
	}
	if need := (c.root.Size + uint64(c.sectorSize) - 1) / uint64(c.sectorSize); uint64(len(c.miniStream)) < need {
		return &ReadError{Op: "mini stream", Sector: c.root.StartSector, Msg: "chain shorter than root entry size"}
	}
	return nil
}

// resolveExtents walks the chain of every stream entry.
func (c *Container) resolveExtents() error {
	miniSectors := int((c.root.Size + uint64(c.miniSectorSize) - 1) / uint64(c.miniSectorSize))
	for _, e := range c.entries {
		if !e.IsStream() {
			continue
		}
		op := "stream " + e.Name
		var err error
		if e.Size < uint64(c.hdr.MiniStreamCutoff) {
			e.mini = true
			e.extent, err = chain(c.ssat, e.StartSector, miniSectors, op)
		} else {
			e.extent, err = chain(c.sat, e.StartSector, c.numSectors, op)
		}
		if err != nil {
			return err
		}

		unit := uint64(c.sectorSize)
		if e.mini {
			unit = uint64(c.miniSectorSize)
		}
		if uint64(len(e.extent))*unit < e.Size {
			return &ReadError{Op: op, Sector: e.StartSector, Msg: "chain shorter than declared size"}
		}
	}
	return nil
}
