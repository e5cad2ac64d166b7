package filters

import (
	"bytes"
	"crypto/aes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/tsawler/hwp/record"
)

// TestRandSequence tests the generator against the recurrence
func TestRandSequence(t *testing.T) {
	rng := NewRand(1)
	want := []uint32{41, 18467, 6334, 26500, 19169}
	for i, w := range want {
		var got uint32
		got, rng = rng.Draw()
		if got != w {
			t.Errorf("draw %d: got %d, want %d", i, got, w)
		}
	}
}

// TestRandDeterministic tests that equal seeds give equal sequences
func TestRandDeterministic(t *testing.T) {
	a := NewRand(0xDEADBEEF)
	b := NewRand(0xDEADBEEF)
	for i := 0; i < 100; i++ {
		var x, y uint32
		x, a = a.Draw()
		y, b = b.Draw()
		if x != y {
			t.Fatalf("draw %d diverged: %d != %d", i, x, y)
		}
		if x > 0x7FFF {
			t.Fatalf("draw %d out of range: %d", i, x)
		}
	}
}

// TestRandValueSemantics tests that drawing from a copy leaves the original alone
func TestRandValueSemantics(t *testing.T) {
	r := NewRand(7)
	first, _ := r.Draw()
	again, _ := r.Draw()
	if first != again {
		t.Errorf("drawing from the same value gave %d then %d", first, again)
	}
}

// distribute builds a distributed stream around plain using seed and key.
func distribute(t *testing.T, plain []byte, seed uint32, key []byte) []byte {
	t.Helper()

	var block [DistributionBlockSize]byte
	for i := range block {
		block[i] = byte(i * 31)
	}
	off := DistributionKeyOffset(seed)
	copy(block[off:], key)

	mask := DistributionMask(seed)
	for i := range block {
		block[i] ^= mask[i]
	}
	binary.LittleEndian.PutUint32(block[:4], seed)

	c, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	ciphertext := make([]byte, len(plain))
	for i := 0; i < len(plain); i += aes.BlockSize {
		c.Encrypt(ciphertext[i:i+aes.BlockSize], plain[i:i+aes.BlockSize])
	}

	out := record.Encode(record.TagDistributeDocData, 0, block[:])
	return append(out, ciphertext...)
}

// TestDecryptDistributed tests a full scramble/encrypt round trip
func TestDecryptDistributed(t *testing.T) {
	key := []byte("0123456789ABCDEF")
	plain := bytes.Repeat([]byte("distributed doc!"), 8)

	for _, seed := range []uint32{0, 1, 0x1234567F, 0xFFFFFFFF} {
		got, err := DecryptDistributed(distribute(t, plain, seed, key))
		if err != nil {
			t.Fatalf("seed %#x: DecryptDistributed failed: %v", seed, err)
		}
		if !bytes.Equal(got, plain) {
			t.Errorf("seed %#x: plaintext mismatch", seed)
		}
	}
}

// TestDecryptDistributedErrors tests rejection of malformed streams
func TestDecryptDistributedErrors(t *testing.T) {
	key := []byte("0123456789ABCDEF")
	valid := distribute(t, make([]byte, 32), 5, key)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"wrong tag", record.Encode(record.TagDocData, 0, make([]byte, 256))},
		{"wrong size", record.Encode(record.TagDistributeDocData, 0, make([]byte, 128))},
		{"ragged ciphertext", valid[:len(valid)-3]},
		{"short header", []byte{28, 0}},
		{"truncated extended size", binary.LittleEndian.AppendUint32(nil, 28|0xFFF<<20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecryptDistributed(tt.data)
			if !errors.Is(err, ErrDecryption) {
				t.Errorf("expected ErrDecryption, got %v", err)
			}
		})
	}
}

// TestDecryptDistributedExtendedHeader tests a seed record framed with the
// extended size word
func TestDecryptDistributedExtendedHeader(t *testing.T) {
	plain := bytes.Repeat([]byte("HWP!"), 8)
	valid := distribute(t, plain, 9, []byte("0123456789ABCDEF"))

	ext := binary.LittleEndian.AppendUint32(nil, distributeDocDataTag|0xFFF<<20)
	ext = binary.LittleEndian.AppendUint32(ext, DistributionBlockSize)
	ext = append(ext, valid[4:]...)

	got, err := DecryptDistributed(ext)
	if err != nil {
		t.Fatalf("DecryptDistributed() error = %v", err)
	}
	if !bytes.Equal(got, plain) {
		t.Errorf("DecryptDistributed() = %q, want %q", got, plain)
	}
}

// TestDistributeDocDataTag keeps the local tag in step with the record package
func TestDistributeDocDataTag(t *testing.T) {
	if distributeDocDataTag != int(record.TagDistributeDocData) {
		t.Errorf("distributeDocDataTag = %d, want %d", distributeDocDataTag, record.TagDistributeDocData)
	}
}

// TestDistributionMaskRuns tests that the mask is built from runs of 1-16 bytes
func TestDistributionMaskRuns(t *testing.T) {
	mask := DistributionMask(1)
	rng := NewRand(1)
	i := 0
	for i < DistributionBlockSize {
		var value, count uint32
		value, rng = rng.Draw()
		count, rng = rng.Draw()
		n := int(count&0x0F) + 1
		for j := 0; j < n && i < DistributionBlockSize; j++ {
			if mask[i] != byte(value) {
				t.Fatalf("mask[%d] = %#x, want %#x", i, mask[i], byte(value))
			}
			i++
		}
	}
}
