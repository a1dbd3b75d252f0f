package salsa

import (
	"crypto/cipher"
	"encoding/binary"
	"math"
)

const (
	// KeySize is the recommended Salsa key size in bytes.
	KeySize = 32

	// MinKeySize is the reduced 128-bit key size in bytes.
	MinKeySize = 16

	// NonceSize is the base Salsa nonce size in bytes.
	NonceSize = 8

	// XNonceSize is the extended (XSalsa) nonce size in bytes.
	XNonceSize = 24

	// HNonceSize is the HSalsa derivation nonce size in bytes.
	HNonceSize = 16

	// BlockSize is the Salsa keystream block size in bytes.
	BlockSize = 64

	stateSize = 16
)

// Supported round counts. The round count is fixed for the lifetime of a
// Cipher and must be even; the cipher executes it as column/row double rounds.
const (
	Rounds8  = 8
	Rounds12 = 12
	Rounds20 = 20
)

// A Cipher is an instance of the Salsa keystream generator for a particular
// key, nonce and round count. It implements crypto/cipher.Stream.
type Cipher struct {
	state [stateSize]uint32

	// The last BlockSize-off bytes of buf are keystream left over from a
	// previous partial-block XORKeyStream or KeyStream call.
	buf [BlockSize]byte
	off int

	rounds int
	bk     backend
}

var _ cipher.Stream = (*Cipher)(nil)

// expandConstants derives the four domain-separation words, the string
// "expand NN-byte k" as little-endian uint32s, where NN is the two-digit
// ASCII decimal key length. Lengths above 99 clamp to 99 so the constant
// block stays exactly 16 bytes; the only valid lengths are far below that.
func expandConstants(keyLen int) [4]uint32 {
	if keyLen > 99 {
		keyLen = 99
	}
	var c [16]byte
	copy(c[0:7], "expand ")
	c[7] = '0' + byte(keyLen/10)
	c[8] = '0' + byte(keyLen%10)
	copy(c[9:16], "-byte k")
	return [4]uint32{
		binary.LittleEndian.Uint32(c[0:4]),
		binary.LittleEndian.Uint32(c[4:8]),
		binary.LittleEndian.Uint32(c[8:12]),
		binary.LittleEndian.Uint32(c[12:16]),
	}
}

// setupState packs constants, key, nonce and a zero block counter into the
// 16-word logical state. A 16-byte key occupies both key slots.
func setupState(state *[stateSize]uint32, key, nonce []byte) error {
	if len(key) != KeySize && len(key) != MinKeySize {
		return ErrInvalidKeySize
	}
	if len(nonce) != NonceSize {
		return ErrInvalidNonceSize
	}

	c := expandConstants(len(key))
	front := key[:16]
	back := key[len(key)-16:]

	state[0] = c[0]
	state[1] = binary.LittleEndian.Uint32(front[0:4])
	state[2] = binary.LittleEndian.Uint32(front[4:8])
	state[3] = binary.LittleEndian.Uint32(front[8:12])
	state[4] = binary.LittleEndian.Uint32(front[12:16])
	state[5] = c[1]
	state[6] = binary.LittleEndian.Uint32(nonce[0:4])
	state[7] = binary.LittleEndian.Uint32(nonce[4:8])
	state[8] = 0
	state[9] = 0
	state[10] = c[2]
	state[11] = binary.LittleEndian.Uint32(back[0:4])
	state[12] = binary.LittleEndian.Uint32(back[4:8])
	state[13] = binary.LittleEndian.Uint32(back[8:12])
	state[14] = binary.LittleEndian.Uint32(back[12:16])
	state[15] = c[3]
	return nil
}

func validRounds(rounds int) error {
	switch rounds {
	case Rounds8, Rounds12, Rounds20:
		return nil
	}
	return ErrInvalidRounds
}

// NewCipher returns a 20-round Salsa cipher for the given key and nonce.
// The key must be 16 or 32 bytes. An 8-byte nonce selects the base cipher;
// a 24-byte nonce selects the extended-nonce XSalsa construction.
func NewCipher(key, nonce []byte) (*Cipher, error) {
	return NewCipherWithRounds(key, nonce, Rounds20)
}

// NewCipherWithRounds is NewCipher with an explicit round count (8, 12, or 20).
func NewCipherWithRounds(key, nonce []byte, rounds int) (*Cipher, error) {
	if err := validRounds(rounds); err != nil {
		return nil, err
	}

	var logical [stateSize]uint32
	switch len(nonce) {
	case NonceSize:
		if err := setupState(&logical, key, nonce); err != nil {
			return nil, err
		}
	case XNonceSize:
		if len(key) != KeySize && len(key) != MinKeySize {
			return nil, ErrInvalidKeySize
		}
		var subkey [KeySize]byte
		hSalsa(rounds, key, nonce[:HNonceSize], &subkey)
		err := setupState(&logical, subkey[:], nonce[HNonceSize:])
		for i := range subkey {
			subkey[i] = 0
		}
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidNonceSize
	}

	return fromLogical(&logical, rounds), nil
}

// FromRawState builds a Cipher directly from a pre-formed 16-word state in
// logical word order, bypassing the key schedule. It is intended for
// key-derivation constructions (scrypt-style callers) that drive the core
// with their own state; general callers should use NewCipher.
func FromRawState(state [stateSize]uint32, rounds int) (*Cipher, error) {
	if err := validRounds(rounds); err != nil {
		return nil, err
	}
	return fromLogical(&state, rounds), nil
}

// fromLogical seeds a Cipher from a logical-order state and wipes the
// transient copy on the way out.
func fromLogical(logical *[stateSize]uint32, rounds int) *Cipher {
	c := &Cipher{rounds: rounds, off: BlockSize, bk: pickBackend()}
	c.bk.seed(&c.state, logical)
	for i := range logical {
		logical[i] = 0
	}
	return c
}

// XORKeyStream XORs src with the keystream and writes the result to dst,
// advancing the keystream cursor. Dst and src may be the same slice but
// otherwise should not overlap; dst must be at least as long as src.
//
// Multiple calls behave as if the concatenation of the src buffers was
// passed in a single run: no keystream bytes are skipped or repeated
// across chunked calls.
func (c *Cipher) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("salsa: output smaller than input")
	}
	dst = dst[:len(src)]

	for remaining := len(src); remaining > 0; {
		// Whole blocks go straight to dst.
		if c.off == BlockSize {
			if nrBlocks := remaining / BlockSize; nrBlocks > 0 {
				c.generate(dst, src, nrBlocks)
				directBytes := nrBlocks * BlockSize
				remaining -= directBytes
				if remaining == 0 {
					return
				}
				dst = dst[directBytes:]
				src = src[directBytes:]
			}

			// Buffer one block of keystream for the partial tail.
			c.generate(c.buf[:], nil, 1)
			c.off = 0
		}

		toXor := BlockSize - c.off
		if remaining < toXor {
			toXor = remaining
		}
		for i, v := range src[:toXor] {
			dst[i] = v ^ c.buf[c.off+i]
		}
		dst = dst[toXor:]
		src = src[toXor:]
		remaining -= toXor
		c.off += toXor
	}
}

// KeyStream writes raw keystream bytes to dst, advancing the cursor exactly
// as XORKeyStream does.
func (c *Cipher) KeyStream(dst []byte) {
	for remaining := len(dst); remaining > 0; {
		if c.off == BlockSize {
			if nrBlocks := remaining / BlockSize; nrBlocks > 0 {
				c.generate(dst, nil, nrBlocks)
				directBytes := nrBlocks * BlockSize
				remaining -= directBytes
				if remaining == 0 {
					return
				}
				dst = dst[directBytes:]
			}

			c.generate(c.buf[:], nil, 1)
			c.off = 0
		}

		toCopy := BlockSize - c.off
		if remaining < toCopy {
			toCopy = remaining
		}
		copy(dst[:toCopy], c.buf[c.off:c.off+toCopy])
		dst = dst[toCopy:]
		remaining -= toCopy
		c.off += toCopy
	}
}

// generate produces nrBlocks keystream blocks, XORing src into them when src
// is non-nil. Running the counter past 2^64-1 would wrap back to block 0 and
// reuse keystream under the same key and nonce, so that is a hard stop.
func (c *Cipher) generate(dst, src []byte, nrBlocks int) {
	if uint64(nrBlocks) > c.RemainingBlocks() {
		panic("salsa: keystream counter exhausted")
	}
	c.bk.blocks(&c.state, c.rounds, dst, src, nrBlocks)
}

// Seek repositions the keystream to begin at the given block index,
// discarding any buffered keystream. Callers that need a byte offset within
// the block consume and drop the leading bytes of the reached block.
func (c *Cipher) Seek(block uint64) {
	c.bk.setBlockPos(&c.state, block)
	c.off = BlockSize
}

// BlockPos returns the index of the next keystream block to be produced.
func (c *Cipher) BlockPos() uint64 {
	return c.bk.blockPos(&c.state)
}

// RemainingBlocks returns how many keystream blocks can still be produced
// before the 64-bit block counter is exhausted. Callers encrypting very
// large streams should check it before running into the hard limit.
func (c *Cipher) RemainingBlocks() uint64 {
	return math.MaxUint64 - c.BlockPos()
}

// Reset zeros the cipher state and buffered keystream so that key material
// no longer appears in the process's memory. The Cipher must not be used
// afterwards.
func (c *Cipher) Reset() {
	for i := range c.state {
		c.state[i] = 0
	}
	for i := range c.buf {
		c.buf[i] = 0
	}
	c.off = BlockSize
}
