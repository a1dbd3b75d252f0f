package salsa

import (
	"bytes"
	"testing"

	"golang.org/x/crypto/salsa20/salsa"
)

// TestHSalsa20MatchesReference cross-checks the derivation against the
// x/crypto reference implementation.
func TestHSalsa20MatchesReference(t *testing.T) {
	for i := 0; i < 50; i++ {
		var key [KeySize]byte
		var in [HNonceSize]byte
		copy(key[:], randBytes(t, KeySize))
		copy(in[:], randBytes(t, HNonceSize))

		var got, expected [KeySize]byte
		HSalsa20(&got, &in, &key)

		salsa.HSalsa20(&expected, &in, &key, &salsa.Sigma)

		if got != expected {
			t.Fatalf("HSalsa20 mismatch:\ngot      %x\nexpected %x", got, expected)
		}
	}
}

// TestHSalsaSubkeyFeedsCore verifies the two-stage construction: an
// extended-nonce cipher must equal a base cipher built from the derived
// subkey and the trailing 8 nonce bytes.
func TestHSalsaSubkeyFeedsCore(t *testing.T) {
	for _, rounds := range []int{Rounds8, Rounds12, Rounds20} {
		key := randBytes(t, KeySize)
		nonce := randBytes(t, XNonceSize)

		extended, err := NewCipherWithRounds(key, nonce, rounds)
		if err != nil {
			t.Fatalf("Failed to create extended cipher: %v", err)
		}

		var subkey [KeySize]byte
		hSalsa(rounds, key, nonce[:HNonceSize], &subkey)
		core, err := NewCipherWithRounds(subkey[:], nonce[HNonceSize:], rounds)
		if err != nil {
			t.Fatalf("Failed to create core cipher: %v", err)
		}

		extendedStream := make([]byte, 2*BlockSize)
		coreStream := make([]byte, 2*BlockSize)
		extended.KeyStream(extendedStream)
		core.KeyStream(coreStream)
		if !bytes.Equal(extendedStream, coreStream) {
			t.Errorf("Rounds %d: extended cipher diverged from subkey-built core", rounds)
		}
	}
}

// TestHSalsaKeyLengths verifies the derivation accepts both key lengths and
// separates them.
func TestHSalsaKeyLengths(t *testing.T) {
	short := randBytes(t, MinKeySize)
	long := append(bytes.Clone(short), short...)
	nonce := randBytes(t, HNonceSize)

	var fromShort, fromLong [KeySize]byte
	hSalsa(Rounds20, short, nonce, &fromShort)
	hSalsa(Rounds20, long, nonce, &fromLong)
	if fromShort == fromLong {
		t.Error("16-byte and 32-byte keys derived identical subkeys")
	}
}
