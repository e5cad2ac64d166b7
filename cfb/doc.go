// Package cfb reads compound binary files: the sector-allocated container
// (directory tree plus sector-chained streams) used by legacy office formats,
// including HWP 5 documents.
//
// # Opening a Container
//
//	c, err := cfb.OpenBytes(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	header, err := c.ReadStream("FileHeader")
//
// [Open] accepts any io.ReaderAt, so a container can be read directly from an
// *os.File without materializing the whole file. Streams themselves are always
// read fully into memory.
//
// # Structure
//
// The header names the sectors holding the sector allocation table (SAT);
// additional SAT sector ids live in a chain of master-SAT sectors. The SAT
// maps each sector to the next sector of its chain. The directory is a chain
// of 128-byte entries whose sibling links form a binary tree per storage;
// [Container.Children] exposes each storage's children in tree order.
//
// Streams smaller than the mini-stream cutoff (4096 bytes) are stored in
// 64-byte mini sectors inside the root entry's own stream and chained through
// the mini-SAT.
//
// # Errors
//
// Header validation failures are reported as [*DetectError] naming the
// offending field. Structural failures (out-of-range sector ids, chains that
// never terminate, short reads) are [*ReadError]. No partially built
// container is ever returned.
package cfb
