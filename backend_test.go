package salsa

import (
	"bytes"
	"fmt"
	"math"
	"testing"
)

// newCipherOn builds a cipher pinned to a specific backend, bypassing the
// capability probe.
func newCipherOn(t *testing.T, bk backend, key, nonce []byte, rounds int) *Cipher {
	t.Helper()
	var logical [stateSize]uint32
	if err := setupState(&logical, key, nonce); err != nil {
		t.Fatalf("Failed to build state: %v", err)
	}
	c := &Cipher{rounds: rounds, off: BlockSize, bk: bk}
	bk.seed(&c.state, &logical)
	return c
}

// TestBackendEquivalence verifies the bit-identical-output contract between
// the scalar and lane-oriented backends across round counts, key sizes,
// block counts and seek positions.
func TestBackendEquivalence(t *testing.T) {
	positions := []uint64{0, 1, 1000, math.MaxUint32 - 1, math.MaxUint32, 1 << 40}

	for _, rounds := range []int{Rounds8, Rounds12, Rounds20} {
		for _, keySize := range []int{MinKeySize, KeySize} {
			t.Run(fmt.Sprintf("rounds_%d_key_%d", rounds, keySize), func(t *testing.T) {
				key := randBytes(t, keySize)
				nonce := randBytes(t, NonceSize)

				for _, pos := range positions {
					soft := newCipherOn(t, softBackend{}, key, nonce, rounds)
					wide := newCipherOn(t, wideBackend{}, key, nonce, rounds)
					soft.Seek(pos)
					wide.Seek(pos)

					softStream := make([]byte, 5*BlockSize)
					wideStream := make([]byte, 5*BlockSize)
					soft.KeyStream(softStream)
					wide.KeyStream(wideStream)

					if !bytes.Equal(softStream, wideStream) {
						t.Fatalf("Backends disagree at block position %d", pos)
					}
					if soft.BlockPos() != wide.BlockPos() {
						t.Fatalf("Counters disagree at block position %d: soft=%d wide=%d",
							pos, soft.BlockPos(), wide.BlockPos())
					}
				}
			})
		}
	}
}

// TestBackendCounterRoundTrip checks the layout-specific counter accessors,
// including values that exercise the high word.
func TestBackendCounterRoundTrip(t *testing.T) {
	for _, bk := range []backend{softBackend{}, wideBackend{}} {
		var state [stateSize]uint32
		for _, pos := range []uint64{0, 1, math.MaxUint32, math.MaxUint32 + 1, 1 << 50, math.MaxUint64} {
			bk.setBlockPos(&state, pos)
			if got := bk.blockPos(&state); got != pos {
				t.Errorf("%T: counter round trip of %d returned %d", bk, pos, got)
			}
		}
	}
}

// TestBackendCounterCarry verifies the low-word wrap carries into the high word.
func TestBackendCounterCarry(t *testing.T) {
	key := randBytes(t, KeySize)
	nonce := randBytes(t, NonceSize)

	for _, bk := range []backend{softBackend{}, wideBackend{}} {
		c := newCipherOn(t, bk, key, nonce, Rounds20)
		c.Seek(math.MaxUint32)
		c.KeyStream(make([]byte, 2*BlockSize))
		if got := c.BlockPos(); got != math.MaxUint32+2 {
			t.Errorf("%T: counter after carry = %d, expected %d", bk, got, uint64(math.MaxUint32)+2)
		}
	}
}

// TestWideLayoutTables verifies the diagonal layout tables are inverse
// permutations and park the counter at the documented physical words.
func TestWideLayoutTables(t *testing.T) {
	for phys, logical := range wideOrder {
		if widePos[logical] != phys {
			t.Errorf("widePos[%d] = %d, expected %d", logical, widePos[logical], phys)
		}
	}
	if wideOrder[8] != 8 || wideOrder[5] != 9 {
		t.Errorf("Counter words misplaced: physical 8 holds logical %d, physical 5 holds logical %d",
			wideOrder[8], wideOrder[5])
	}
}

// TestPickBackendNeverNil verifies construction always lands on a backend.
func TestPickBackendNeverNil(t *testing.T) {
	if pickBackend() == nil {
		t.Fatal("pickBackend returned nil")
	}
}

// TestBackendInPlaceXOR verifies dst==src works on both backends for the
// whole-block fast path.
func TestBackendInPlaceXOR(t *testing.T) {
	key := randBytes(t, KeySize)
	nonce := randBytes(t, NonceSize)
	original := randBytes(t, 4*BlockSize)

	for _, bk := range []backend{softBackend{}, wideBackend{}} {
		c := newCipherOn(t, bk, key, nonce, Rounds20)
		separate := make([]byte, len(original))
		c.XORKeyStream(separate, original)

		c = newCipherOn(t, bk, key, nonce, Rounds20)
		inPlace := bytes.Clone(original)
		c.XORKeyStream(inPlace, inPlace)

		if !bytes.Equal(separate, inPlace) {
			t.Errorf("%T: in-place XOR differs from out-of-place XOR", bk)
		}
	}
}
