package filters

import (
	"crypto/aes"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrDecryption is wrapped by every DecryptDistributed failure.
var ErrDecryption = errors.New("decryption failed")

const (
	// DistributionBlockSize is the size of the seed block that starts every
	// distributed stream.
	DistributionBlockSize = 256
	distributionKeySize   = 16

	// distributeDocDataTag is the DISTRIBUTE_DOC_DATA record tag.
	distributeDocDataTag = 28
)

// seedRecord returns the payload offset of the record framing the seed
// block, which must be a DISTRIBUTE_DOC_DATA record of exactly
// DistributionBlockSize bytes.
func seedRecord(data []byte) (int, error) {
	if len(data) < 4 {
		return 0, fmt.Errorf("%w: stream too short for a record header", ErrDecryption)
	}
	word := binary.LittleEndian.Uint32(data)
	tag := word & 0x3FF
	size := word >> 20
	n := 4
	if size == 0xFFF {
		if len(data) < 8 {
			return 0, fmt.Errorf("%w: extended record size truncated", ErrDecryption)
		}
		size = binary.LittleEndian.Uint32(data[4:])
		n = 8
	}
	if tag != distributeDocDataTag || size != DistributionBlockSize {
		return 0, fmt.Errorf("%w: expected %d-byte DISTRIBUTE_DOC_DATA record, got tag %d of %d bytes",
			ErrDecryption, DistributionBlockSize, tag, size)
	}
	return n, nil
}

// DistributionMask expands seed into the 256-byte XOR mask: each pair of
// draws yields a mask byte and a repeat count of 1 to 16.
func DistributionMask(seed uint32) [DistributionBlockSize]byte {
	var mask [DistributionBlockSize]byte
	rng := NewRand(seed)
	for i := 0; i < DistributionBlockSize; {
		var value, count uint32
		value, rng = rng.Draw()
		count, rng = rng.Draw()
		n := int(count&0x0F) + 1
		for j := 0; j < n && i < DistributionBlockSize; j++ {
			mask[i] = byte(value & 0xFF)
			i++
		}
	}
	return mask
}

// DistributionKeyOffset returns where the AES key sits inside the decoded
// seed block.
func DistributionKeyOffset(seed uint32) int {
	return int(seed&0x0F) + 4
}

// DecryptDistributed recovers the plaintext of a distributed stream. The
// stream must start with a DISTRIBUTE_DOC_DATA record holding the 256-byte
// seed block; everything after it is AES-128-ECB ciphertext without padding.
func DecryptDistributed(data []byte) ([]byte, error) {
	n, err := seedRecord(data)
	if err != nil {
		return nil, err
	}
	if len(data)-n < DistributionBlockSize {
		return nil, fmt.Errorf("%w: seed block truncated", ErrDecryption)
	}

	var block [DistributionBlockSize]byte
	copy(block[:], data[n:n+DistributionBlockSize])
	seed := binary.LittleEndian.Uint32(block[:4])
	mask := DistributionMask(seed)
	for i := range block {
		block[i] ^= mask[i]
	}
	off := DistributionKeyOffset(seed)
	key := block[off : off+distributionKeySize]

	ciphertext := data[n+DistributionBlockSize:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a multiple of %d",
			ErrDecryption, len(ciphertext), aes.BlockSize)
	}
	cipher, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}

	plain := make([]byte, len(ciphertext))
	for i := 0; i < len(ciphertext); i += aes.BlockSize {
		cipher.Decrypt(plain[i:i+aes.BlockSize], ciphertext[i:i+aes.BlockSize])
	}
	return plain, nil
}
